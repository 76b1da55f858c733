// internal/infra/solana/planner.go
package solana

import (
	"errors"
	"fmt"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"

	tokendom "mintforge/internal/domain/token"
)

// MaxTransactionSize is the hard wire-format ceiling for one serialized
// transaction (the protocol packet data size).
const MaxTransactionSize = 1232

// Compute-unit budgets per phase. The create phase carries the metadata
// instruction and gets the larger budget; the funding phase is a small,
// fixed instruction set.
const (
	createPhaseComputeUnits uint32 = 300_000
	fundPhaseComputeUnits   uint32 = 120_000
)

// Phase labels.
const (
	PhaseCreate = "create"
	PhaseFund   = "fund"
)

// ErrPlanTooLarge tags a plan whose serialized form exceeds
// MaxTransactionSize. Such a plan is rejected pre-flight and never
// reaches the submission path.
var ErrPlanTooLarge = errors.New("planner: serialized transaction exceeds size ceiling")

// PhaseState is the per-phase lifecycle. A phase only moves forward.
type PhaseState string

const (
	StatePlanned     PhaseState = "planned"
	StateSizeChecked PhaseState = "size_checked"
	StateSigned      PhaseState = "signed"
	StateSubmitted   PhaseState = "submitted"
	StateConfirmed   PhaseState = "confirmed"
	StateRejected    PhaseState = "rejected"
	StateExpired     PhaseState = "expired"
)

// TransactionPlan is one phase: an ordered instruction list, the signers
// it requires, its compute budget and its measured serialized size.
type TransactionPlan struct {
	Label        string
	Instructions []types.Instruction
	Signers      []types.Account
	ComputeUnits uint32
	Size         int
}

// PlanSet is the ordered plans for one creation request. Plans[1], when
// present, depends on Plans[0] having confirmed.
type PlanSet struct {
	Plans          []*TransactionPlan
	HasSecondPhase bool

	MintAddress   string
	FundedAccount string
}

// Planner groups instructions into size-checked phases. It is pure given
// the rent amount; it never talks to the network.
type Planner struct {
	custodial   *CustodialSigner
	priorityFee uint64 // micro-lamports per compute unit; 0 = no price instruction
}

func NewPlanner(custodial *CustodialSigner, priorityFeeMicroLamports uint64) *Planner {
	return &Planner{custodial: custodial, priorityFee: priorityFeeMicroLamports}
}

// BuildPlanSet plans the create phase (compute budget, mint account,
// mint init, metadata) and, when a pre-purchase was requested, the
// funding phase (compute budget, associated account, mint-to).
//
// Splitting by dependency keeps the unpredictably-sized element (the
// metadata) away from the fixed-size funding instructions, so one
// oversized field cannot sink the whole request.
func (p *Planner) BuildPlanSet(req tokendom.CreationRequest, mint types.Account, mintRentLamports uint64) (*PlanSet, error) {
	payer := p.custodial.Account.PublicKey

	metadata, err := DeriveMetadataAddress(mint.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("planner: derive metadata address: %w", err)
	}

	createIns := p.budgetInstructions(createPhaseComputeUnits)
	createIns = append(createIns,
		CreateMintAccountInstruction(payer, mint.PublicKey, mintRentLamports),
		InitializeMintInstruction(mint.PublicKey, payer),
		CreateMetadataInstruction(metadata, mint.PublicKey, payer, req.Name, req.Symbol, ""),
	)

	createPlan := &TransactionPlan{
		Label:        PhaseCreate,
		Instructions: createIns,
		Signers:      []types.Account{p.custodial.Account, mint},
		ComputeUnits: createPhaseComputeUnits,
	}
	if err := p.sizeCheck(createPlan); err != nil {
		return nil, err
	}

	set := &PlanSet{
		Plans:       []*TransactionPlan{createPlan},
		MintAddress: mint.PublicKey.ToBase58(),
	}

	if req.PrePurchaseAmount > 0 {
		owner := common.PublicKeyFromString(req.RequesterAddress)
		ata, err := DeriveAssociatedAccount(owner, mint.PublicKey)
		if err != nil {
			return nil, fmt.Errorf("planner: derive associated account: %w", err)
		}

		fundIns := p.budgetInstructions(fundPhaseComputeUnits)
		fundIns = append(fundIns,
			CreateAssociatedAccountInstruction(payer, owner, mint.PublicKey, ata),
			MintToInstruction(mint.PublicKey, ata, payer, req.PrePurchaseAmount),
		)

		fundPlan := &TransactionPlan{
			Label:        PhaseFund,
			Instructions: fundIns,
			Signers:      []types.Account{p.custodial.Account},
			ComputeUnits: fundPhaseComputeUnits,
		}
		if err := p.sizeCheck(fundPlan); err != nil {
			return nil, err
		}

		set.Plans = append(set.Plans, fundPlan)
		set.HasSecondPhase = true
		set.FundedAccount = ata.ToBase58()
	}

	return set, nil
}

func (p *Planner) budgetInstructions(units uint32) []types.Instruction {
	ins := []types.Instruction{ComputeUnitLimitInstruction(units)}
	if p.priorityFee > 0 {
		ins = append(ins, ComputeUnitPriceInstruction(p.priorityFee))
	}
	return ins
}

// sizeCheck provisionally signs the plan against a placeholder blockhash
// and records the serialized byte length. The blockhash value does not
// change the length, so the plan can be sized without network access.
func (p *Planner) sizeCheck(plan *TransactionPlan) error {
	placeholder := common.PublicKey{}.ToBase58()

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Signers: plan.Signers,
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        p.custodial.Account.PublicKey,
			RecentBlockhash: placeholder,
			Instructions:    plan.Instructions,
		}),
	})
	if err != nil {
		return fmt.Errorf("planner: provisional sign %s: %w", plan.Label, err)
	}

	raw, err := tx.Serialize()
	if err != nil {
		return fmt.Errorf("planner: serialize %s: %w", plan.Label, err)
	}

	plan.Size = len(raw)
	if plan.Size > MaxTransactionSize {
		return fmt.Errorf("%w: phase=%s size=%d limit=%d", ErrPlanTooLarge, plan.Label, plan.Size, MaxTransactionSize)
	}
	return nil
}
