// internal/infra/solana/rpc.go
package solana

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
)

const defaultDevnetRPC = "https://api.devnet.solana.com"

// Tagged failure variants. Callers classify submission failures by
// matching these with errors.Is, never by inspecting error text: the
// underlying transport surfaces heterogeneous failure shapes.
var (
	// ErrRPCUnavailable tags transport-level failures (connection, HTTP,
	// malformed response). Retryable.
	ErrRPCUnavailable = errors.New("solana rpc: request failed")

	// ErrTxRejected tags a node-side rejection of a submitted transaction.
	ErrTxRejected = errors.New("solana rpc: transaction rejected")
)

// Blockhash is a finality reference: a recent blockhash plus the last
// block height at which a transaction anchored to it is still valid.
type Blockhash struct {
	Hash                 string
	LastValidBlockHeight uint64
}

// SignatureStatus is the node-reported state of a submitted transaction.
// The zero value means "not yet visible".
type SignatureStatus struct {
	Confirmed bool
	Failed    bool
	FailMsg   string
}

// ChainRPC is the minimal chain capability the engine needs. Tests
// substitute a fake; production wires BloctoRPC.
type ChainRPC interface {
	Balance(ctx context.Context, address string) (uint64, error)
	MinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error)
	LatestBlockhash(ctx context.Context) (Blockhash, error)
	BlockHeight(ctx context.Context) (uint64, error)
	SendTransaction(ctx context.Context, tx types.Transaction) (string, error)
	SignatureStatus(ctx context.Context, signature string) (SignatureStatus, error)
}

// BloctoRPC implements ChainRPC on top of the SDK JSON-RPC client.
type BloctoRPC struct {
	c *client.Client
}

var _ ChainRPC = (*BloctoRPC)(nil)

// NewBloctoRPC builds the adapter. An empty endpoint falls back to the
// public devnet node.
func NewBloctoRPC(endpoint string) *BloctoRPC {
	u := strings.TrimSpace(endpoint)
	if u == "" {
		u = defaultDevnetRPC
	}
	return &BloctoRPC{c: client.NewClient(u)}
}

func (a *BloctoRPC) Balance(ctx context.Context, address string) (uint64, error) {
	bal, err := a.c.GetBalance(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("%w: getBalance: %v", ErrRPCUnavailable, err)
	}
	return bal, nil
}

func (a *BloctoRPC) MinimumBalanceForRentExemption(ctx context.Context, dataSize uint64) (uint64, error) {
	rent, err := a.c.GetMinimumBalanceForRentExemption(ctx, dataSize)
	if err != nil {
		return 0, fmt.Errorf("%w: getMinimumBalanceForRentExemption: %v", ErrRPCUnavailable, err)
	}
	return rent, nil
}

func (a *BloctoRPC) LatestBlockhash(ctx context.Context) (Blockhash, error) {
	latest, err := a.c.GetLatestBlockhash(ctx)
	if err != nil {
		return Blockhash{}, fmt.Errorf("%w: getLatestBlockhash: %v", ErrRPCUnavailable, err)
	}
	return Blockhash{
		Hash:                 latest.Blockhash,
		LastValidBlockHeight: latest.LatestValidBlockHeight,
	}, nil
}

func (a *BloctoRPC) BlockHeight(ctx context.Context) (uint64, error) {
	// The convenience client does not wrap getBlockHeight; go through the
	// raw JSON-RPC client and unwrap the envelope ourselves.
	res, err := a.c.RpcClient.GetBlockHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: getBlockHeight: %v", ErrRPCUnavailable, err)
	}
	if err := res.GetError(); err != nil {
		return 0, fmt.Errorf("%w: getBlockHeight: %v", ErrRPCUnavailable, err)
	}
	return res.GetResult(), nil
}

func (a *BloctoRPC) SendTransaction(ctx context.Context, tx types.Transaction) (string, error) {
	sig, err := a.c.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTxRejected, err)
	}
	return sig, nil
}

func (a *BloctoRPC) SignatureStatus(ctx context.Context, signature string) (SignatureStatus, error) {
	st, err := a.c.GetSignatureStatus(ctx, signature)
	if err != nil {
		return SignatureStatus{}, fmt.Errorf("%w: getSignatureStatuses: %v", ErrRPCUnavailable, err)
	}
	if st == nil {
		// not visible yet
		return SignatureStatus{}, nil
	}
	if st.Err != nil {
		return SignatureStatus{Failed: true, FailMsg: fmt.Sprintf("%v", st.Err)}, nil
	}
	if st.ConfirmationStatus != nil &&
		(*st.ConfirmationStatus == rpc.CommitmentConfirmed || *st.ConfirmationStatus == rpc.CommitmentFinalized) {
		return SignatureStatus{Confirmed: true}, nil
	}
	return SignatureStatus{}, nil
}

func maskShort(s string) string {
	t := strings.TrimSpace(s)
	if len(t) <= 10 {
		return t
	}
	return t[:4] + "***" + t[len(t)-4:]
}
