package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// system program id: a well-formed 32-byte base58 key
const testRequester = "11111111111111111111111111111111"

func validRequest() CreationRequest {
	return CreationRequest{
		Name:              "Test Token",
		Symbol:            "TEST",
		Description:       "a test token",
		PrePurchaseAmount: 1000,
		RequesterAddress:  testRequester,
	}
}

func TestValidateNormalizes(t *testing.T) {
	raw := validRequest()
	raw.Name = "  Test Token  "
	raw.Symbol = " test "

	req, warnings, err := Validate(raw, 1_000_000)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Test Token", req.Name)
	assert.Equal(t, "TEST", req.Symbol)
	assert.Equal(t, int64(1000), req.PrePurchaseAmount)
}

func TestValidateRequiredFields(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*CreationRequest)
	}{
		{"missing name", func(r *CreationRequest) { r.Name = "" }},
		{"missing symbol", func(r *CreationRequest) { r.Symbol = "   " }},
		{"missing requester", func(r *CreationRequest) { r.RequesterAddress = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRequest()
			tc.mutate(&raw)
			_, _, err := Validate(raw, 0)
			require.Error(t, err)
			var ce *CreationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, FailureValidation, ce.Kind)
		})
	}
}

func TestValidateNameTooLong(t *testing.T) {
	raw := validRequest()
	raw.Name = strings.Repeat("n", MaxNameLen+1)
	_, _, err := Validate(raw, 0)
	requireValidationError(t, err, "name")
}

func TestValidateSymbolTooLong(t *testing.T) {
	raw := validRequest()
	raw.Symbol = "TOOLONGTICKER" // 13 chars
	_, _, err := Validate(raw, 0)
	requireValidationError(t, err, "symbol")
}

func TestValidateLimitsCountBytes(t *testing.T) {
	// 15 runes but 45 bytes: over the 32-byte name limit
	raw := validRequest()
	raw.Name = strings.Repeat("ト", 15)
	_, _, err := Validate(raw, 0)
	requireValidationError(t, err, "name")

	// 10 runes in 30 bytes still fits the name limit
	raw = validRequest()
	raw.Name = strings.Repeat("ト", 10)
	_, _, err = Validate(raw, 0)
	require.NoError(t, err)
}

func TestValidateDescriptionTruncatedWithWarning(t *testing.T) {
	raw := validRequest()
	raw.Description = strings.Repeat("d", MaxDescriptionLen+50)

	req, warnings, err := Validate(raw, 0)
	require.NoError(t, err)
	assert.Len(t, req.Description, MaxDescriptionLen)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "truncated")
}

func TestValidateAmountBounds(t *testing.T) {
	raw := validRequest()
	raw.PrePurchaseAmount = -1
	_, _, err := Validate(raw, 0)
	requireValidationError(t, err, "prePurchaseAmount")

	raw = validRequest()
	raw.PrePurchaseAmount = 101
	_, _, err = Validate(raw, 100)
	requireValidationError(t, err, "prePurchaseAmount")

	raw.PrePurchaseAmount = 100
	_, _, err = Validate(raw, 100)
	require.NoError(t, err)

	raw.PrePurchaseAmount = 0
	_, _, err = Validate(raw, 100)
	require.NoError(t, err)
}

func TestValidateAmountOverflowCeiling(t *testing.T) {
	// A non-positive cap falls back to the overflow ceiling, never to
	// "unbounded": scaling must always fit in a uint64.
	raw := validRequest()
	raw.PrePurchaseAmount = MaxMintableWholeUnits + 1
	_, _, err := Validate(raw, 0)
	requireValidationError(t, err, "prePurchaseAmount")

	raw.PrePurchaseAmount = MaxMintableWholeUnits
	_, _, err = Validate(raw, 0)
	require.NoError(t, err)

	// A configured cap above the ceiling is clamped to it
	raw.PrePurchaseAmount = MaxMintableWholeUnits + 1
	_, _, err = Validate(raw, MaxMintableWholeUnits+100)
	requireValidationError(t, err, "prePurchaseAmount")
}

func TestValidateRequesterAddress(t *testing.T) {
	raw := validRequest()
	raw.RequesterAddress = "not-base58-0OIl"
	_, _, err := Validate(raw, 0)
	requireValidationError(t, err, "requesterAddress")

	// valid base58 but wrong byte length
	raw.RequesterAddress = "abc"
	_, _, err = Validate(raw, 0)
	requireValidationError(t, err, "requesterAddress")
}

func TestRetryableKinds(t *testing.T) {
	assert.True(t, FailureBlockhashExpired.Retryable())
	assert.True(t, FailureNetwork.Retryable())
	assert.False(t, FailureValidation.Retryable())
	assert.False(t, FailureInsufficientFunds.Retryable())
	assert.False(t, FailureTransactionTooLarge.Retryable())
	assert.False(t, FailureUnclassified.Retryable())
}

func requireValidationError(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var ce *CreationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, FailureValidation, ce.Kind)
	assert.Contains(t, ce.Message, field)
}
