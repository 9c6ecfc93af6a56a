package models

import "time"

// Vault is a named collection of encrypted cookie entries owned by exactly
// one user. The sync engine creates it lazily on first successful sync and
// never deletes it.
type Vault struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	VaultName string    `json:"vault_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultVaultName is used when no vault name is configured.
const DefaultVaultName = "default"

// TableName returns the remote REST resource backing the Vault model.
func (v Vault) TableName() string {
	return "cookie_vaults"
}
