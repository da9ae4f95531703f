package service

import (
	"context"
	"fmt"

	"github.com/proptoken/chaincore/internal/addr"
)

// ValidationResult reports whether an address hosts a fungible token.
// Produced fresh per call; never cached.
type ValidationResult struct {
	IsValid         bool      `json:"isValid"`
	IsFungibleToken bool      `json:"isFungibleToken"`
	Metadata        *Metadata `json:"metadata,omitempty"`
	Error           string    `json:"error,omitempty"`
}

// ValidateContract checks that address hosts an ERC-20-shaped token.
//
// A malformed address or an unreachable endpoint yields IsValid=false with
// a descriptive error. A reachable address that is not a token — no code,
// or code that answers none of the metadata probes — is an expected outcome,
// not a failure: IsValid stays true and IsFungibleToken is false. The token
// is fungible iff name, symbol and totalSupply all resolve; metadata is
// populated only then, with decimals defaulting to 18.
func (s *Service) ValidateContract(ctx context.Context, address string) *ValidationResult {
	if !addr.IsValidAddress(address) {
		return &ValidationResult{
			IsValid: false,
			Error:   fmt.Sprintf("invalid contract address format: %s", address),
		}
	}

	h, err := s.handle(address)
	if err != nil {
		return &ValidationResult{IsValid: false, Error: err.Error()}
	}

	// Connectivity probe: distinguishes "node unreachable" from "reachable
	// but not a token".
	code, err := s.client.GetCode(ctx, address)
	if err != nil {
		s.log.Warn().Err(err).Str("address", address).Msg("contract validation could not reach endpoint")
		return &ValidationResult{
			IsValid: false,
			Error:   fmt.Sprintf("endpoint check failed: %v", err),
		}
	}
	if code == "" || code == "0x" {
		return &ValidationResult{IsValid: true, IsFungibleToken: false}
	}

	name, symbol, supply, _, decimals := s.probeMetadata(ctx, h, false)
	if !name.ok || !symbol.ok || !supply.ok {
		return &ValidationResult{IsValid: true, IsFungibleToken: false}
	}

	return &ValidationResult{
		IsValid:         true,
		IsFungibleToken: true,
		Metadata: &Metadata{
			Name:        name.value,
			Symbol:      symbol.value,
			Decimals:    decimals,
			TotalSupply: supply.value,
		},
	}
}
