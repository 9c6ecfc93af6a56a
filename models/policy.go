package models

import "fmt"

// InclusionMode selects which observed domains get synced.
type InclusionMode string

const (
	// ModeAuthOnlyDomains syncs a domain iff at least one of its cookies
	// looks authentication-class.
	ModeAuthOnlyDomains InclusionMode = "authOnlyDomains"

	// ModeExplicitDomainList syncs a domain iff it matches one of the
	// configured domain strings (bidirectional substring match).
	ModeExplicitDomainList InclusionMode = "explicitDomainList"

	// ModeAllDomains syncs every domain that has at least one cookie.
	ModeAllDomains InclusionMode = "allDomains"
)

// ParseInclusionMode validates s against the known modes. An empty string
// resolves to ModeAuthOnlyDomains.
func ParseInclusionMode(s string) (InclusionMode, error) {
	switch InclusionMode(s) {
	case ModeAuthOnlyDomains, ModeExplicitDomainList, ModeAllDomains:
		return InclusionMode(s), nil
	case "":
		return ModeAuthOnlyDomains, nil
	default:
		return "", fmt.Errorf("unknown inclusion mode %q", s)
	}
}
