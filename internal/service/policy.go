package service

import (
	"strings"

	"github.com/cookievault/go-cookie-vault/models"
)

// authTokenFragments are matched as case-insensitive substrings of the
// cookie name. Deliberately generic: most first-party auth cookies embed
// one of these.
var authTokenFragments = []string{
	"auth",
	"session",
	"token",
	"login",
	"user",
	"csrf",
	"xsrf",
}

// wellKnownAuthCookies are exact cookie names used by major sites whose
// auth cookies don't contain any generic fragment. Matched case-sensitively
// so that short lowercase names like "sid" stay out of the heuristic.
var wellKnownAuthCookies = map[string]struct{}{
	"li_at":        {}, // LinkedIn
	"li_rm":        {},
	"c_user":       {}, // Facebook
	"xs":           {},
	"datr":         {},
	"ct0":          {}, // Twitter/X
	"SID":          {}, // Google
	"HSID":         {},
	"SSID":         {},
	"APISID":       {},
	"SAPISID":      {},
	"sessionid":    {}, // Instagram and many Django apps
	"user_session": {}, // GitHub
	"dotcom_user":  {},
	"JSESSIONID":   {},
	"PHPSESSID":    {},
}

// DefaultAuthCookiePredicate is the stock authentication-class heuristic:
// generic fragment substring match plus the well-known name list.
func DefaultAuthCookiePredicate(c models.Cookie) bool {
	if _, ok := wellKnownAuthCookies[c.Name]; ok {
		return true
	}

	name := strings.ToLower(c.Name)
	for _, fragment := range authTokenFragments {
		if strings.Contains(name, fragment) {
			return true
		}
	}

	return false
}

// InclusionPolicy selects which observed domains get synced. Inclusion is
// decided per domain: once a domain is in, all of its cookies are synced,
// auth-class or not.
type InclusionPolicy struct {
	Mode    models.InclusionMode
	Domains []string

	// IsAuthCookie is the predicate behind ModeAuthOnlyDomains and the
	// per-entry has_auth_cookies flag. Nil falls back to
	// [DefaultAuthCookiePredicate].
	IsAuthCookie AuthCookiePredicate
}

func (p InclusionPolicy) predicate() AuthCookiePredicate {
	if p.IsAuthCookie != nil {
		return p.IsAuthCookie
	}
	return DefaultAuthCookiePredicate
}

// Include reports whether the domain's cookie batch should be synced.
func (p InclusionPolicy) Include(domain string, cookies []models.Cookie) bool {
	if len(cookies) == 0 {
		return false
	}

	switch p.Mode {
	case models.ModeAllDomains:
		return true
	case models.ModeExplicitDomainList:
		for _, configured := range p.Domains {
			if DomainsMatch(domain, configured) {
				return true
			}
		}
		return false
	default: // ModeAuthOnlyDomains
		isAuth := p.predicate()
		for _, c := range cookies {
			if isAuth(c) {
				return true
			}
		}
		return false
	}
}

// HasAuthCookie reports whether any cookie in the batch is
// authentication-class, using the policy's predicate.
func (p InclusionPolicy) HasAuthCookie(cookies []models.Cookie) bool {
	isAuth := p.predicate()
	for _, c := range cookies {
		if isAuth(c) {
			return true
		}
	}
	return false
}

// DomainsMatch implements the bidirectional substring semantic shared by
// the write-side explicit list and the remote's ilike read filter:
// "linkedin.com" matches ".www.linkedin.com" and vice versa. Imprecise on
// purpose ("notlinkedin.com" also matches): existing entries were written
// under this rule, so both sides keep it.
func DomainsMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
