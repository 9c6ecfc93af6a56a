package models

import "time"

// Cookie is one browser cookie as observed by the collecting runtime.
// Field names follow the browser extension's JSON encoding so that payloads
// encrypted by any runtime decrypt into the same shape everywhere.
//
// Cookies exist in plaintext only in memory; they are never persisted
// unencrypted by this module.
type Cookie struct {
	// Name is the cookie name as sent in the Cookie header.
	Name string `json:"name"`

	// Value is the cookie value. Treated as sensitive.
	Value string `json:"value"`

	// Domain is the cookie's domain attribute (may carry a leading dot).
	Domain string `json:"domain,omitempty"`

	// Path is the cookie's path attribute, usually "/".
	Path string `json:"path,omitempty"`

	// Secure reports whether the cookie is restricted to HTTPS.
	Secure bool `json:"secure,omitempty"`

	// HTTPOnly reports whether the cookie is hidden from page scripts.
	HTTPOnly bool `json:"httpOnly,omitempty"`

	// SameSite is the raw same-site policy string as reported by the
	// browser: "no_restriction", "lax", "strict" or empty.
	SameSite string `json:"sameSite,omitempty"`

	// ExpirationDate is the expiry instant in Unix seconds (fractional),
	// or nil for session cookies. The float encoding matches the browser
	// cookies API.
	ExpirationDate *float64 `json:"expirationDate,omitempty"`
}

// IsSession reports whether the cookie is a session cookie, i.e. has no
// expiration and lives only as long as the browser session.
func (c Cookie) IsSession() bool {
	return c.ExpirationDate == nil
}

// Expiry returns the cookie's expiration as a time.Time and true, or the
// zero time and false for session cookies.
func (c Cookie) Expiry() (time.Time, bool) {
	if c.ExpirationDate == nil {
		return time.Time{}, false
	}
	sec := int64(*c.ExpirationDate)
	nsec := int64((*c.ExpirationDate - float64(sec)) * float64(time.Second))
	return time.Unix(sec, nsec).UTC(), true
}

// AutomationCookie is a cookie normalized for browser-automation injection
// APIs (Playwright/CDP style): SameSite is one of "None", "Lax", "Strict"
// and expiry is Unix seconds.
type AutomationCookie struct {
	Name     string   `json:"name"`
	Value    string   `json:"value"`
	Domain   string   `json:"domain"`
	Path     string   `json:"path"`
	Secure   bool     `json:"secure,omitempty"`
	HTTPOnly bool     `json:"httpOnly,omitempty"`
	SameSite string   `json:"sameSite,omitempty"`
	Expires  *float64 `json:"expires,omitempty"`
}
