// internal/domain/token/entity.go
package token

import "math"

// ------------------------------------------------------
// Entity: CreationRequest (one inbound token-creation call)
// ------------------------------------------------------

// Decimals is the fixed decimal precision of every mint this service
// creates. Whole-unit amounts are scaled by 10^Decimals on-chain.
const Decimals = 9

// BaseUnitsPerToken is 10^Decimals.
const BaseUnitsPerToken = 1_000_000_000

// MaxMintableWholeUnits is the largest whole-unit amount whose
// base-unit scaling still fits in a uint64. The amount bound never
// exceeds it, whatever cap is configured.
const MaxMintableWholeUnits = int64(math.MaxUint64 / BaseUnitsPerToken)

// Field limits enforced by Validate, in bytes: the on-chain metadata
// account layout measures bytes, not runes, so multibyte names spend
// the limit faster.
const (
	MaxNameLen        = 32
	MaxSymbolLen      = 10
	MaxDescriptionLen = 200
)

// CreationRequest is a token-creation request. A raw request becomes
// trustworthy only after it has passed Validate; everything downstream
// of the validator assumes a normalized request.
type CreationRequest struct {
	Name              string `json:"name"`
	Symbol            string `json:"symbol"`
	Description       string `json:"description,omitempty"`
	PrePurchaseAmount int64  `json:"prePurchaseAmount"`
	RequesterAddress  string `json:"requesterAddress"`
}
