package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair is the credential set returned by the remote token endpoint
// for both the password and refresh grants.
//
// AccessToken is a short-lived JWT attached as a Bearer header to every
// REST call; RefreshToken is the medium-lived credential used to obtain
// the next pair without re-sending the password.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`

	// ExpiresIn is the access-token lifetime in seconds as reported by
	// the server. May be zero; see [TokenPair.ExpiresAt].
	ExpiresIn int64 `json:"expires_in"`

	// User identifies the authenticated account.
	User AuthUser `json:"user"`
}

// AuthUser is the account identity embedded in a token response.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ExpiresAt resolves the absolute expiry of the access token. It prefers
// the server-reported lifetime (now + expires_in); when the server omits
// it, the "exp" claim of the JWT is used. The token signature is NOT
// verified here: the client only schedules refreshes with this value, the
// server remains the authority on validity.
func (t TokenPair) ExpiresAt(now time.Time) time.Time {
	if t.ExpiresIn > 0 {
		return now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, &claims); err == nil {
		if claims.ExpiresAt != nil {
			return claims.ExpiresAt.Time
		}
	}

	// No usable lifetime information: treat the token as already stale so
	// the next call re-authenticates.
	return now
}

// UserID resolves the authenticated user id, falling back to the JWT "sub"
// claim when the response carried no user object.
func (t TokenPair) UserID() string {
	if t.User.ID != "" {
		return t.User.ID
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(t.AccessToken, &claims); err == nil {
		return claims.Subject
	}
	return ""
}
