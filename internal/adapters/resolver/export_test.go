package resolver

import "go.trai.ch/kiln/internal/core/domain"

// ParseResolveOutput exports parseResolveOutput for testing.
func ParseResolveOutput(out []byte) []domain.Dependency {
	return parseResolveOutput(out)
}
