// internal/infra/solana/classify.go
package solana

import (
	"errors"

	tokendom "mintforge/internal/domain/token"
)

// Classify maps a submission-layer failure onto the closed taxonomy.
// Matching works on the tagged sentinel variants this package produces,
// never on error text. Already-classified errors pass through untouched.
func Classify(err error) *tokendom.CreationError {
	if err == nil {
		return nil
	}

	var ce *tokendom.CreationError
	if errors.As(err, &ce) {
		return ce
	}

	switch {
	case errors.Is(err, ErrInsufficientFunds):
		return tokendom.NewError(tokendom.FailureInsufficientFunds,
			"backend wallet balance is too low to fund the mint account", err)
	case errors.Is(err, ErrPlanTooLarge):
		return tokendom.NewError(tokendom.FailureTransactionTooLarge,
			"token data does not fit within a single transaction", err)
	case errors.Is(err, ErrBlockhashExpired):
		return tokendom.NewError(tokendom.FailureBlockhashExpired,
			"the transaction expired before it was confirmed; please retry", err)
	case errors.Is(err, ErrRPCUnavailable):
		return tokendom.NewError(tokendom.FailureNetwork,
			"the chain RPC endpoint is unreachable; please retry", err)
	default:
		// ErrTxRejected and anything else: surfaced verbatim.
		return tokendom.NewError(tokendom.FailureUnclassified, err.Error(), err)
	}
}
