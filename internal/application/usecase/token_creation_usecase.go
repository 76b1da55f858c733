// internal/application/usecase/token_creation_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"

	tokendom "mintforge/internal/domain/token"
)

// ============================================================
// TokenCreationUsecase
// ============================================================

// CreateTokenResponse is the composed result of one creation request,
// success or failure. It maps 1:1 onto the HTTP response body.
type CreateTokenResponse struct {
	Success              bool     `json:"success"`
	MintAddress          string   `json:"mintAddress,omitempty"`
	Signature            string   `json:"signature,omitempty"`
	SecondPhaseSignature string   `json:"secondPhaseSignature,omitempty"`
	FundedAccountAddress string   `json:"fundedAccountAddress,omitempty"`
	Warnings             []string `json:"warnings,omitempty"`
	Error                string   `json:"error,omitempty"`
	ErrorKind            string   `json:"errorKind,omitempty"`
	Retryable            bool     `json:"retryable,omitempty"`
}

// TokenCreationUsecase validates a raw request, hands it to the chain
// creator and composes the response. It never exposes a raw transport
// error to the caller.
type TokenCreationUsecase struct {
	creator        tokendom.CreatorPort
	maxPrePurchase int64
}

func NewTokenCreationUsecase(creator tokendom.CreatorPort, maxPrePurchase int64) *TokenCreationUsecase {
	return &TokenCreationUsecase{
		creator:        creator,
		maxPrePurchase: maxPrePurchase,
	}
}

// CreateToken runs the full flow for one request. The returned response
// is never nil.
func (u *TokenCreationUsecase) CreateToken(ctx context.Context, raw tokendom.CreationRequest) *CreateTokenResponse {
	if u == nil || u.creator == nil {
		return failureResponse(tokendom.NewError(tokendom.FailureUnclassified,
			"token creation is not configured", nil), nil)
	}

	req, warnings, err := tokendom.Validate(raw, u.maxPrePurchase)
	if err != nil {
		return failureResponse(asCreationError(err), warnings)
	}

	res, err := u.creator.CreateToken(ctx, req)
	if err != nil {
		ce := asCreationError(err)
		log.Printf("[token-usecase] creation failed kind=%s: %v", ce.Kind, errors.Unwrap(ce))
		return failureResponse(ce, warnings)
	}

	resp := &CreateTokenResponse{
		Success:              res.PartialFailure == nil,
		MintAddress:          res.MintAddress,
		Signature:            res.Signature,
		SecondPhaseSignature: res.SecondPhaseSignature,
		FundedAccountAddress: res.FundedAccountAddress,
		Warnings:             warnings,
	}
	if res.PartialFailure != nil {
		// The mint exists on-chain; only the funding phase failed. The
		// caller must not retry blindly: a retry creates a new mint.
		resp.Error = res.PartialFailure.Message + " (the mint was created but not funded)"
		resp.ErrorKind = string(res.PartialFailure.Kind)
	}
	return resp
}

func failureResponse(ce *tokendom.CreationError, warnings []string) *CreateTokenResponse {
	return &CreateTokenResponse{
		Success:   false,
		Warnings:  warnings,
		Error:     ce.Message,
		ErrorKind: string(ce.Kind),
		Retryable: ce.Kind.Retryable(),
	}
}

func asCreationError(err error) *tokendom.CreationError {
	var ce *tokendom.CreationError
	if errors.As(err, &ce) {
		return ce
	}
	return tokendom.NewError(tokendom.FailureUnclassified, err.Error(), err)
}
