// internal/domain/token/validate.go
package token

import (
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
)

// Validate normalizes a raw request or rejects it with a CreationError
// naming the first failing field. It is pure: no clock, no network.
//
// Rules, in priority order:
//  1. required fields present (name, symbol, requesterAddress)
//  2. name <= 32 bytes (byte lengths throughout, matching the on-chain
//     metadata layout)
//  3. symbol <= 10 bytes (upper-normalized)
//  4. description <= 200 bytes (advisory: truncated with a warning)
//  5. prePurchaseAmount in [0, maxPrePurchase]; a non-positive or
//     oversized cap falls back to MaxMintableWholeUnits so the scaled
//     amount can never overflow
//  6. requesterAddress decodes as a 32-byte base58 public key
func Validate(raw CreationRequest, maxPrePurchase int64) (CreationRequest, []string, error) {
	req := CreationRequest{
		Name:              strings.TrimSpace(raw.Name),
		Symbol:            strings.ToUpper(strings.TrimSpace(raw.Symbol)),
		Description:       strings.TrimSpace(raw.Description),
		PrePurchaseAmount: raw.PrePurchaseAmount,
		RequesterAddress:  strings.TrimSpace(raw.RequesterAddress),
	}

	if req.Name == "" {
		return CreationRequest{}, nil, invalid("name is required")
	}
	if req.Symbol == "" {
		return CreationRequest{}, nil, invalid("symbol is required")
	}
	if req.RequesterAddress == "" {
		return CreationRequest{}, nil, invalid("requesterAddress is required")
	}

	if len(req.Name) > MaxNameLen {
		return CreationRequest{}, nil, invalid(fmt.Sprintf("name must be %d bytes or fewer", MaxNameLen))
	}
	if len(req.Symbol) > MaxSymbolLen {
		return CreationRequest{}, nil, invalid(fmt.Sprintf("symbol must be %d bytes or fewer", MaxSymbolLen))
	}

	var warnings []string
	if len(req.Description) > MaxDescriptionLen {
		req.Description = req.Description[:MaxDescriptionLen]
		warnings = append(warnings, fmt.Sprintf("description truncated to %d characters", MaxDescriptionLen))
	}

	if req.PrePurchaseAmount < 0 {
		return CreationRequest{}, nil, invalid("prePurchaseAmount must be a non-negative integer")
	}
	maxAmount := maxPrePurchase
	if maxAmount <= 0 || maxAmount > MaxMintableWholeUnits {
		maxAmount = MaxMintableWholeUnits
	}
	if req.PrePurchaseAmount > maxAmount {
		return CreationRequest{}, nil, invalid(fmt.Sprintf("prePurchaseAmount exceeds the maximum of %d", maxAmount))
	}

	decoded, err := base58.Decode(req.RequesterAddress)
	if err != nil || len(decoded) != 32 {
		return CreationRequest{}, nil, invalid("requesterAddress is not a well-formed public key")
	}

	return req, warnings, nil
}

func invalid(msg string) *CreationError {
	return NewError(FailureValidation, msg, nil)
}
