package models

import "time"

// Envelope is the (ciphertext, IV, salt) triple produced by the crypto
// envelope. All three fields are base64 (standard encoding) so the values
// survive any JSON/REST transport unchanged. Together with the passphrase
// the envelope is sufficient to recover the plaintext.
type Envelope struct {
	Ciphertext string `json:"encrypted_data"`
	IV         string `json:"iv"`
	Salt       string `json:"salt"`
}

// CookieEntry is one encrypted batch of cookies for a single domain within
// a vault. At most one entry exists per (vault, domain) pair; the write
// path upserts, it never appends.
//
// Only Domain and the summary fields are plaintext; the cookie list itself
// lives in the envelope.
type CookieEntry struct {
	ID            string     `json:"id,omitempty"`
	VaultID       string     `json:"vault_id"`
	UserID        string     `json:"user_id"`
	Domain        string     `json:"domain"`
	EncryptedData string     `json:"encrypted_data"`
	IV            string     `json:"iv"`
	Salt          string     `json:"salt"`
	CookieCount   int        `json:"cookie_count"`
	HasAuth       bool       `json:"has_auth_cookies"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	SyncedAt      time.Time  `json:"synced_at"`
}

// TableName returns the remote REST resource backing the CookieEntry model.
func (e CookieEntry) TableName() string {
	return "cookie_entries"
}

// Envelope extracts the encrypted envelope from the entry.
func (e CookieEntry) Envelope() Envelope {
	return Envelope{Ciphertext: e.EncryptedData, IV: e.IV, Salt: e.Salt}
}

// EntrySummary is the plaintext per-domain summary of a stored entry,
// used for listings that must not decrypt anything.
type EntrySummary struct {
	Domain      string    `json:"domain"`
	CookieCount int       `json:"cookie_count"`
	HasAuth     bool      `json:"has_auth_cookies"`
	SyncedAt    time.Time `json:"synced_at"`
}
