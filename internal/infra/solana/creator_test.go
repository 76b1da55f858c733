package solana

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokendom "mintforge/internal/domain/token"
)

func newTestCreator(rpc ChainRPC, signer *CustodialSigner, feeBuffer uint64) *TokenCreator {
	planner := NewPlanner(signer, 0)
	orch := NewOrchestrator(rpc, signer, time.Millisecond, time.Millisecond, 250*time.Millisecond)
	return NewTokenCreator(rpc, signer, planner, orch, feeBuffer)
}

func TestCreateTokenFull(t *testing.T) {
	signer := testSigner()
	rpc := newFakeRPC()
	c := newTestCreator(rpc, signer, 10_000_000)

	res, err := c.CreateToken(context.Background(), plannerRequest(1000))
	require.NoError(t, err)

	assert.NotEmpty(t, res.MintAddress)
	assert.Equal(t, "sig-1", res.Signature)
	assert.Equal(t, "sig-2", res.SecondPhaseSignature)
	assert.NotEmpty(t, res.FundedAccountAddress)
	assert.Nil(t, res.PartialFailure)
	assert.Equal(t, 2, rpc.sentCount())
}

func TestCreateTokenNoPrePurchase(t *testing.T) {
	signer := testSigner()
	rpc := newFakeRPC()
	c := newTestCreator(rpc, signer, 10_000_000)

	res, err := c.CreateToken(context.Background(), plannerRequest(0))
	require.NoError(t, err)

	assert.NotEmpty(t, res.MintAddress)
	assert.Equal(t, "sig-1", res.Signature)
	assert.Empty(t, res.SecondPhaseSignature)
	assert.Empty(t, res.FundedAccountAddress)
	assert.Equal(t, 1, rpc.sentCount())
}

func TestCreateTokenDistinctMints(t *testing.T) {
	signer := testSigner()
	rpc := newFakeRPC()
	c := newTestCreator(rpc, signer, 10_000_000)

	req := plannerRequest(0)
	first, err := c.CreateToken(context.Background(), req)
	require.NoError(t, err)
	second, err := c.CreateToken(context.Background(), req)
	require.NoError(t, err)

	// identical requests are not idempotent: a fresh mint identity is
	// generated every time
	assert.NotEqual(t, first.MintAddress, second.MintAddress)
}

func TestCreateTokenInsufficientFunds(t *testing.T) {
	signer := testSigner()
	rpc := newFakeRPC()
	rpc.balance = rpc.rent // below rent + buffer
	c := newTestCreator(rpc, signer, 10_000_000)

	res, err := c.CreateToken(context.Background(), plannerRequest(1000))
	require.Error(t, err)
	assert.Nil(t, res)

	var ce *tokendom.CreationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, tokendom.FailureInsufficientFunds, ce.Kind)

	// pre-flight failed: nothing was ever submitted
	assert.Equal(t, 0, rpc.sentCount())
}

func TestCreateTokenOversizedPlanNeverSubmitted(t *testing.T) {
	signer := testSigner()
	rpc := newFakeRPC()
	c := newTestCreator(rpc, signer, 10_000_000)

	req := plannerRequest(0)
	req.Name = strings.Repeat("x", 2_000)

	res, err := c.CreateToken(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, res)

	var ce *tokendom.CreationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, tokendom.FailureTransactionTooLarge, ce.Kind)
	assert.Equal(t, 0, rpc.sentCount())
}

func TestCreateTokenPartialSuccess(t *testing.T) {
	signer := testSigner()
	rpc := newFakeRPC()
	rpc.sendErrAt[1] = ErrTxRejected // funding submission fails
	c := newTestCreator(rpc, signer, 10_000_000)

	res, err := c.CreateToken(context.Background(), plannerRequest(1000))
	require.NoError(t, err)
	require.NotNil(t, res)

	// the confirmed create phase is still reported
	assert.NotEmpty(t, res.MintAddress)
	assert.Equal(t, "sig-1", res.Signature)
	assert.Empty(t, res.SecondPhaseSignature)
	assert.Empty(t, res.FundedAccountAddress)
	require.NotNil(t, res.PartialFailure)
	assert.Equal(t, tokendom.FailureUnclassified, res.PartialFailure.Kind)
}

func TestCreateTokenExpiredCreatePhase(t *testing.T) {
	signer := testSigner()
	rpc := newFakeRPC()
	rpc.confirmAfter = -1
	rpc.hash.LastValidBlockHeight = 110
	rpc.heightStep = 20
	c := newTestCreator(rpc, signer, 10_000_000)

	res, err := c.CreateToken(context.Background(), plannerRequest(0))
	require.Error(t, err)
	assert.Nil(t, res)

	var ce *tokendom.CreationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, tokendom.FailureBlockhashExpired, ce.Kind)
	assert.True(t, ce.Kind.Retryable())
}
