package service

import (
	"context"
	"sync"
	"time"

	"github.com/cookievault/go-cookie-vault/internal/adapter"
	"github.com/cookievault/go-cookie-vault/internal/config"
	"github.com/cookievault/go-cookie-vault/internal/logger"
	"github.com/cookievault/go-cookie-vault/models"
)

// SessionState is the lifecycle state of an [AuthSession].
type SessionState string

const (
	StateUnauthenticated SessionState = "unauthenticated"
	StateAuthenticating  SessionState = "authenticating"
	StateAuthenticated   SessionState = "authenticated"
	StateRefreshing      SessionState = "refreshing"
	StateExpired         SessionState = "expired"
)

// tokenSafetyMargin is how much remaining lifetime a token must have to be
// handed out without a grant call first.
const tokenSafetyMargin = 60 * time.Second

// authSession is the private implementation of [AuthSession]. The mutex is
// held across the whole grant call, which is the single-flight gate: a
// concurrent caller blocks until the in-flight grant finishes and then
// finds a fresh token instead of issuing a duplicate grant that could
// invalidate the refresh token the first caller just rotated.
type authSession struct {
	transport adapter.AuthTransport
	email     string
	password  string

	mu           sync.Mutex
	state        SessionState
	accessToken  string
	refreshToken string
	userID       string
	expiresAt    time.Time

	now func() time.Time

	logger *logger.Logger
}

// NewAuthSession constructs an [AuthSession] over the given grant
// transport and account credentials. The session starts unauthenticated;
// the first EnsureValid call performs the password grant.
func NewAuthSession(transport adapter.AuthTransport, accountCfg config.Account, log *logger.Logger) AuthSession {
	return &authSession{
		transport: transport,
		email:     accountCfg.Email,
		password:  accountCfg.Password,
		state:     StateUnauthenticated,
		now:       time.Now,
		logger:    log,
	}
}

// EnsureValid implements [AuthSession].
func (a *authSession) EnsureValid(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tokenUsable() {
		return a.accessToken, nil
	}

	if err := a.authenticate(ctx); err != nil {
		return "", err
	}

	return a.accessToken, nil
}

// UserID implements [AuthSession].
func (a *authSession) UserID(ctx context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.tokenUsable() {
		return a.userID, nil
	}

	if err := a.authenticate(ctx); err != nil {
		return "", err
	}

	return a.userID, nil
}

// State implements [AuthSession].
func (a *authSession) State() SessionState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// tokenUsable reports whether the held token still has more than the
// safety margin of lifetime left. Caller holds the mutex.
func (a *authSession) tokenUsable() bool {
	if a.accessToken == "" {
		return false
	}
	if a.now().After(a.expiresAt.Add(-tokenSafetyMargin)) {
		a.state = StateExpired
		return false
	}
	return true
}

// authenticate performs the grant sequence: refresh first when a refresh
// token is held, password grant as the fallback. On refresh failure the
// refresh token is cleared before falling through, so a dead token is
// never retried. Caller holds the mutex.
func (a *authSession) authenticate(ctx context.Context) error {
	if a.refreshToken != "" {
		a.state = StateRefreshing
		pair, err := a.transport.RefreshGrant(ctx, a.refreshToken)
		if err == nil {
			a.storePair(pair)
			return nil
		}

		a.refreshToken = ""
		a.logger.Warn().Err(err).Msg("refresh grant rejected, falling back to password grant")
	}

	a.state = StateAuthenticating
	pair, err := a.transport.PasswordGrant(ctx, a.email, a.password)
	if err != nil {
		a.state = StateUnauthenticated
		a.logger.Error().Int("status", newAuthError(err).Status).Msg("password grant failed")
		return newAuthError(err)
	}

	a.storePair(pair)
	return nil
}

// storePair records a successful grant. Caller holds the mutex.
func (a *authSession) storePair(pair models.TokenPair) {
	now := a.now()
	a.accessToken = pair.AccessToken
	a.refreshToken = pair.RefreshToken
	a.userID = pair.UserID()
	a.expiresAt = pair.ExpiresAt(now)
	a.state = StateAuthenticated

	a.logger.Debug().
		Time("expires_at", a.expiresAt).
		Msg("session authenticated")
}
