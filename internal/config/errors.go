package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates invalid remote endpoint settings
	// (for example, missing base URL or a zero request timeout).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidSyncConfigs indicates invalid sync engine settings
	// (for example, an unknown inclusion mode or zero interval).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
