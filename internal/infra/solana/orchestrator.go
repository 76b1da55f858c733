// internal/infra/solana/orchestrator.go
package solana

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// ErrBlockhashExpired tags a phase whose blockhash validity window
// elapsed (or whose context ended) before confirmation. The transaction
// may or may not have landed; chain state is the source of truth.
var ErrBlockhashExpired = errors.New("orchestrator: blockhash validity window elapsed before confirmation")

// SubmissionOutcome is the terminal record of one phase.
type SubmissionOutcome struct {
	Label     string
	Signature string
	State     PhaseState
	Err       error
}

// defaultConfirmWindow is the wall-clock bound on one phase's
// confirmation wait. Sized past the worst-case blockhash validity span
// (~150 blocks), so the height check normally expires a phase first;
// the wall clock only fires when the chain cannot be queried at all.
const defaultConfirmWindow = 90 * time.Second

// Orchestrator drives each plan of a PlanSet through
// sign -> submit -> confirm, one phase at a time. A phase must reach
// StateConfirmed before the next one is attempted.
type Orchestrator struct {
	rpc           ChainRPC
	feePayer      common.PublicKey
	settleDelay   time.Duration
	pollInterval  time.Duration
	confirmWindow time.Duration
}

func NewOrchestrator(rpc ChainRPC, custodial *CustodialSigner, settleDelay, pollInterval, confirmWindow time.Duration) *Orchestrator {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	if confirmWindow <= 0 {
		confirmWindow = defaultConfirmWindow
	}
	return &Orchestrator{
		rpc:           rpc,
		feePayer:      custodial.Account.PublicKey,
		settleDelay:   settleDelay,
		pollInterval:  pollInterval,
		confirmWindow: confirmWindow,
	}
}

// Execute runs the plans in order and halts on the first phase that ends
// in a non-confirmed terminal state. It returns the outcomes produced so
// far together with the halting phase's error. A failed second phase
// after a confirmed first one is a defined partial state; no
// compensating transaction is attempted.
func (o *Orchestrator) Execute(ctx context.Context, set *PlanSet) ([]SubmissionOutcome, error) {
	outcomes := make([]SubmissionOutcome, 0, len(set.Plans))

	for i, plan := range set.Plans {
		if i > 0 {
			// Settling delay so the accounts created by the previous
			// phase are visible on the validating nodes. Tunable, not a
			// correctness guarantee.
			if err := o.settle(ctx); err != nil {
				out := SubmissionOutcome{Label: plan.Label, State: StateExpired, Err: err}
				outcomes = append(outcomes, out)
				return outcomes, err
			}
		}

		out := o.executePhase(ctx, plan)
		outcomes = append(outcomes, out)
		if out.State != StateConfirmed {
			return outcomes, out.Err
		}
	}

	return outcomes, nil
}

// executePhase: fetch a finality reference, sign with the plan's
// signers, submit, then await confirmation against the same reference.
// Forward-only: Planned -> SizeChecked -> Signed -> Submitted ->
// {Confirmed | Rejected | Expired}.
func (o *Orchestrator) executePhase(ctx context.Context, plan *TransactionPlan) SubmissionOutcome {
	out := SubmissionOutcome{Label: plan.Label, State: StateSizeChecked}

	ref, err := o.rpc.LatestBlockhash(ctx)
	if err != nil {
		out.State = StateRejected
		out.Err = fmt.Errorf("orchestrator: fetch blockhash for %s: %w", plan.Label, err)
		return out
	}

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: plan.Signers,
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        o.feePayer,
			RecentBlockhash: ref.Hash,
			Instructions:    plan.Instructions,
		}),
	})
	if err != nil {
		out.State = StateRejected
		out.Err = fmt.Errorf("orchestrator: sign %s: %w", plan.Label, err)
		return out
	}
	out.State = StateSigned

	sig, err := o.rpc.SendTransaction(ctx, tx)
	if err != nil {
		out.State = StateRejected
		out.Err = fmt.Errorf("orchestrator: submit %s: %w", plan.Label, err)
		return out
	}
	out.Signature = sig
	out.State = StateSubmitted

	log.Printf("[orchestrator] submitted phase=%s sig=%s size=%d lastValidHeight=%d",
		plan.Label, maskShort(sig), plan.Size, ref.LastValidBlockHeight)

	return o.awaitConfirmation(ctx, out, ref)
}

func (o *Orchestrator) awaitConfirmation(ctx context.Context, out SubmissionOutcome, ref Blockhash) SubmissionOutcome {
	ticker := time.NewTicker(o.pollInterval)
	defer ticker.Stop()

	// Wall-clock bound: the height check below needs a working RPC to
	// close the window, so a full outage would otherwise poll forever.
	deadline := time.NewTimer(o.confirmWindow)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			out.State = StateExpired
			out.Err = fmt.Errorf("%w: phase=%s: %v", ErrBlockhashExpired, out.Label, ctx.Err())
			return out
		case <-deadline.C:
			out.State = StateExpired
			out.Err = fmt.Errorf("%w: phase=%s: no confirmation within %s", ErrBlockhashExpired, out.Label, o.confirmWindow)
			return out
		case <-ticker.C:
		}

		st, err := o.rpc.SignatureStatus(ctx, out.Signature)
		if err != nil {
			// Transient poll failure: keep polling until the validity
			// window closes.
			log.Printf("[orchestrator] status poll failed phase=%s: %v", out.Label, err)
		} else {
			if st.Failed {
				out.State = StateRejected
				out.Err = fmt.Errorf("%w: phase=%s: %s", ErrTxRejected, out.Label, st.FailMsg)
				return out
			}
			if st.Confirmed {
				out.State = StateConfirmed
				log.Printf("[orchestrator] confirmed phase=%s sig=%s", out.Label, maskShort(out.Signature))
				return out
			}
		}

		height, err := o.rpc.BlockHeight(ctx)
		if err != nil {
			log.Printf("[orchestrator] height poll failed phase=%s: %v", out.Label, err)
			continue
		}
		if height > ref.LastValidBlockHeight {
			out.State = StateExpired
			out.Err = fmt.Errorf("%w: phase=%s height=%d lastValidHeight=%d",
				ErrBlockhashExpired, out.Label, height, ref.LastValidBlockHeight)
			return out
		}
	}
}

func (o *Orchestrator) settle(ctx context.Context) error {
	if o.settleDelay <= 0 {
		return nil
	}
	t := time.NewTimer(o.settleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("%w: settling interrupted: %v", ErrBlockhashExpired, ctx.Err())
	case <-t.C:
		return nil
	}
}
