package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cookievault/go-cookie-vault/models"
)

func cookie(name, domain string) models.Cookie {
	return models.Cookie{Name: name, Value: "v", Domain: domain, Path: "/"}
}

func TestDefaultAuthCookiePredicate(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		want   bool
	}{
		{"session substring", "sessionid", true},
		{"token substring", "access_token", true},
		{"csrf substring", "csrftoken", true},
		{"auth substring case-insensitive", "AUTH_KEY", true},
		{"well-known linkedin", "li_at", true},
		{"well-known facebook", "c_user", true},
		{"well-known google uppercase", "SID", true},
		{"well-known java", "JSESSIONID", true},
		{"theme preference", "li_theme", false},
		{"bare sid is not well-known", "sid", false},
		{"lowercase of well-known name", "jsessionid", true}, // contains "session"
		{"plain preference", "pref", false},
		{"language", "lang", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DefaultAuthCookiePredicate(cookie(tt.cookie, "example.com"))
			assert.Equal(t, tt.want, got, "cookie %q", tt.cookie)
		})
	}
}

func TestInclusionPolicy_AuthOnlyDomains(t *testing.T) {
	policy := InclusionPolicy{Mode: models.ModeAuthOnlyDomains, IsAuthCookie: DefaultAuthCookiePredicate}

	withAuth := []models.Cookie{cookie("li_at", "linkedin.com"), cookie("li_theme", "linkedin.com")}
	withoutAuth := []models.Cookie{cookie("li_theme", "linkedin.com"), cookie("lang", "linkedin.com")}

	assert.True(t, policy.Include("linkedin.com", withAuth),
		"a single auth cookie pulls the whole domain in")
	assert.False(t, policy.Include("linkedin.com", withoutAuth))
}

func TestInclusionPolicy_ExplicitDomainList(t *testing.T) {
	policy := InclusionPolicy{
		Mode:         models.ModeExplicitDomainList,
		Domains:      []string{"example.com"},
		IsAuthCookie: DefaultAuthCookiePredicate,
	}

	prefsOnly := []models.Cookie{cookie("pref", "example.com")}

	assert.True(t, policy.Include("example.com", prefsOnly),
		"listed domain is included regardless of cookie names")
	assert.True(t, policy.Include("www.example.com", prefsOnly),
		"substring matching reaches subdomains")
	assert.False(t, policy.Include("other.org", []models.Cookie{cookie("sessionid", "other.org")}),
		"unlisted domain stays out even with auth cookies")
}

func TestInclusionPolicy_ExplicitEmptyListSyncsNothing(t *testing.T) {
	policy := InclusionPolicy{Mode: models.ModeExplicitDomainList, IsAuthCookie: DefaultAuthCookiePredicate}

	assert.False(t, policy.Include("example.com", []models.Cookie{cookie("sessionid", "example.com")}))
}

func TestInclusionPolicy_AllDomains(t *testing.T) {
	policy := InclusionPolicy{Mode: models.ModeAllDomains, IsAuthCookie: DefaultAuthCookiePredicate}

	assert.True(t, policy.Include("anything.example", []models.Cookie{cookie("lang", "anything.example")}))
	assert.False(t, policy.Include("anything.example", nil), "empty observation is still skipped")
}

func TestDomainsMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"linkedin.com", ".linkedin.com", true},
		{".linkedin.com", "linkedin.com", true},
		{"www.example.com", "example.com", true},
		{"example.com", "www.example.com", true},
		{"Example.COM", "example.com", true},
		{"example.com", "other.org", false},
		{"", "example.com", false},
		{"example.com", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DomainsMatch(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
