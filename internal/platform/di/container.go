// internal/platform/di/container.go
package di

import (
	"context"
	"fmt"

	httpin "mintforge/internal/adapters/in/http"
	usecase "mintforge/internal/application/usecase"
	"mintforge/internal/infra/config"
	solanainfra "mintforge/internal/infra/solana"
)

// Container is the bundle of dependencies main.go needs. Its purpose is
// to keep main.go as thin as possible.
type Container struct {
	Config *config.Config

	Signer  *solanainfra.CustodialSigner
	TokenUC *usecase.TokenCreationUsecase
}

// NewContainer wires config -> signer -> RPC -> planner/orchestrator ->
// creator -> usecase. A missing or malformed custodial key is fatal: the
// service cannot serve any request without it.
func NewContainer(ctx context.Context) (*Container, error) {
	cfg := config.Load()

	signer, err := solanainfra.LoadCustodialSigner(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("di: load custodial signer: %w", err)
	}

	rpc := solanainfra.NewBloctoRPC(cfg.RPCEndpoint)
	planner := solanainfra.NewPlanner(signer, cfg.PriorityFeeMicroLamports)
	orch := solanainfra.NewOrchestrator(rpc, signer, cfg.SettleDelay, cfg.ConfirmPollInterval, cfg.ConfirmWindow)
	creator := solanainfra.NewTokenCreator(rpc, signer, planner, orch, cfg.FeeBufferLamports)

	return &Container{
		Config:  cfg,
		Signer:  signer,
		TokenUC: usecase.NewTokenCreationUsecase(creator, cfg.MaxPrePurchase),
	}, nil
}

// RouterDeps exposes the handler dependencies for httpin.NewRouter.
func (c *Container) RouterDeps() httpin.RouterDeps {
	return httpin.RouterDeps{TokenUC: c.TokenUC}
}

// Close releases held resources. Nothing long-lived is open today; kept
// so main.go can defer it unconditionally.
func (c *Container) Close() {}
