// internal/infra/solana/creator.go
package solana

import (
	"context"
	"errors"
	"fmt"
	"log"

	spltoken "github.com/blocto/solana-go-sdk/program/token"
	"github.com/blocto/solana-go-sdk/types"

	tokendom "mintforge/internal/domain/token"
)

// ErrInsufficientFunds tags a custodial balance below the rent-exempt
// minimum for the mint account plus the configured fee buffer.
var ErrInsufficientFunds = errors.New("token_creator: custodial balance below rent plus fee buffer")

// TokenCreator is the chain-side implementation of the creation flow:
// pre-flight funds check, fresh mint identity, planning, then phased
// submission. One sequential control flow per request; concurrent
// requests race only on the shared custodial balance.
type TokenCreator struct {
	rpc       ChainRPC
	custodial *CustodialSigner
	planner   *Planner
	orch      *Orchestrator
	feeBuffer uint64
}

var _ tokendom.CreatorPort = (*TokenCreator)(nil)

func NewTokenCreator(rpc ChainRPC, custodial *CustodialSigner, planner *Planner, orch *Orchestrator, feeBufferLamports uint64) *TokenCreator {
	return &TokenCreator{
		rpc:       rpc,
		custodial: custodial,
		planner:   planner,
		orch:      orch,
		feeBuffer: feeBufferLamports,
	}
}

// CreateToken implements tokendom.CreatorPort for a validated request.
func (c *TokenCreator) CreateToken(ctx context.Context, req tokendom.CreationRequest) (*tokendom.ChainResult, error) {
	// Funds pre-flight runs before a single instruction is built.
	rent, err := c.rpc.MinimumBalanceForRentExemption(ctx, spltoken.MintAccountSize)
	if err != nil {
		return nil, Classify(err)
	}
	balance, err := c.rpc.Balance(ctx, c.custodial.Address())
	if err != nil {
		return nil, Classify(err)
	}
	required := rent + c.feeBuffer
	if balance < required {
		return nil, Classify(fmt.Errorf("%w: balance=%d required=%d", ErrInsufficientFunds, balance, required))
	}

	// Fresh single-use identity; two identical requests always produce
	// two distinct mints.
	mint := types.NewAccount()

	set, err := c.planner.BuildPlanSet(req, mint, rent)
	if err != nil {
		return nil, Classify(err)
	}

	log.Printf("[token-creator] planned mint=%s phases=%d requester=%s amount=%d",
		maskShort(set.MintAddress), len(set.Plans), maskShort(req.RequesterAddress), req.PrePurchaseAmount)

	outcomes, execErr := c.orch.Execute(ctx, set)

	if len(outcomes) == 0 || outcomes[0].State != StateConfirmed {
		if execErr == nil {
			execErr = errors.New("token_creator: create phase produced no outcome")
		}
		return nil, Classify(execErr)
	}

	res := &tokendom.ChainResult{
		MintAddress: set.MintAddress,
		Signature:   outcomes[0].Signature,
	}

	if set.HasSecondPhase {
		if len(outcomes) > 1 && outcomes[1].State == StateConfirmed {
			res.SecondPhaseSignature = outcomes[1].Signature
			res.FundedAccountAddress = set.FundedAccount
		} else {
			// Mint confirmed, funding did not: defined partial success.
			if execErr == nil {
				execErr = errors.New("token_creator: funding phase did not confirm")
			}
			res.PartialFailure = Classify(execErr)
			log.Printf("[token-creator] partial success mint=%s: %v", maskShort(set.MintAddress), execErr)
		}
	}

	return res, nil
}
