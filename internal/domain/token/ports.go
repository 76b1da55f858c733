// internal/domain/token/ports.go
package token

import "context"

// ChainResult is what the chain-side creator hands back for a request
// whose create phase confirmed.
type ChainResult struct {
	MintAddress          string
	Signature            string
	SecondPhaseSignature string
	FundedAccountAddress string

	// PartialFailure is set when the mint was created and confirmed but
	// the funding phase did not reach a confirmed state. The mint exists
	// on-chain either way; no compensating transaction is attempted.
	PartialFailure *CreationError
}

// CreatorPort is the usecase's view of the chain: plan, sign, submit and
// confirm the transactions for one validated creation request.
//
// The returned error is a *CreationError when the request never produced
// a confirmed mint. A ChainResult with PartialFailure set means the mint
// confirmed but funding did not.
type CreatorPort interface {
	CreateToken(ctx context.Context, req CreationRequest) (*ChainResult, error)
}
