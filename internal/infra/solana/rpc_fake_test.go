package solana

import (
	"context"
	"fmt"
	"sync"

	"github.com/blocto/solana-go-sdk/types"
)

// fakeRPC is an in-memory ChainRPC for tests. Signatures are "sig-1",
// "sig-2", ... in submission order.
type fakeRPC struct {
	mu sync.Mutex

	balance uint64
	rent    uint64
	hash    Blockhash

	height     uint64
	heightStep uint64 // added on every BlockHeight call
	heightErr  error  // returned by every BlockHeight call when set

	sendErrAt map[int]error // submission index (0-based) -> error
	sent      []types.Transaction

	confirmAfter int   // status polls per signature before Confirmed; -1 = never
	statusErr    error // returned by every SignatureStatus call when set
	failMsg      string
	polls        map[string]int
}

var _ ChainRPC = (*fakeRPC)(nil)

func newFakeRPC() *fakeRPC {
	return &fakeRPC{
		balance: 1_000_000_000,
		rent:    1_461_600,
		hash: Blockhash{
			Hash:                 types.NewAccount().PublicKey.ToBase58(),
			LastValidBlockHeight: 1_000,
		},
		height:    100,
		sendErrAt: map[int]error{},
		polls:     map[string]int{},
	}
}

func (f *fakeRPC) Balance(context.Context, string) (uint64, error) {
	return f.balance, nil
}

func (f *fakeRPC) MinimumBalanceForRentExemption(context.Context, uint64) (uint64, error) {
	return f.rent, nil
}

func (f *fakeRPC) LatestBlockhash(context.Context) (Blockhash, error) {
	return f.hash, nil
}

func (f *fakeRPC) BlockHeight(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.heightErr != nil {
		return 0, f.heightErr
	}
	f.height += f.heightStep
	return f.height, nil
}

func (f *fakeRPC) SendTransaction(_ context.Context, tx types.Transaction) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx := len(f.sent)
	if err := f.sendErrAt[idx]; err != nil {
		return "", err
	}
	f.sent = append(f.sent, tx)
	return fmt.Sprintf("sig-%d", len(f.sent)), nil
}

func (f *fakeRPC) SignatureStatus(_ context.Context, sig string) (SignatureStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.polls[sig]++
	if f.statusErr != nil {
		return SignatureStatus{}, f.statusErr
	}
	if f.failMsg != "" {
		return SignatureStatus{Failed: true, FailMsg: f.failMsg}, nil
	}
	if f.confirmAfter >= 0 && f.polls[sig] > f.confirmAfter {
		return SignatureStatus{Confirmed: true}, nil
	}
	return SignatureStatus{}, nil
}

func (f *fakeRPC) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
