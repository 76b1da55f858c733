// internal/adapters/in/http/handler/token_handler.go
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	usecase "mintforge/internal/application/usecase"
	tokendom "mintforge/internal/domain/token"
)

// TokenHandler serves the /tokens endpoint.
type TokenHandler struct {
	uc *usecase.TokenCreationUsecase
}

func NewTokenHandler(uc *usecase.TokenCreationUsecase) http.Handler {
	return &TokenHandler{uc: uc}
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.TrimSuffix(r.URL.Path, "/")

	switch {
	// POST /tokens
	case r.Method == http.MethodPost && path == "/tokens":
		h.create(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "not_found"})
	}
}

func (h *TokenHandler) create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.uc == nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "token usecase not configured"})
		return
	}

	var in tokendom.CreationRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, &usecase.CreateTokenResponse{
			Success:   false,
			Error:     "invalid request body: " + err.Error(),
			ErrorKind: string(tokendom.FailureValidation),
		})
		return
	}

	resp := h.uc.CreateToken(r.Context(), in)
	writeJSON(w, statusFor(resp), resp)
}

func statusFor(resp *usecase.CreateTokenResponse) int {
	switch {
	case resp.Success:
		return http.StatusOK
	case resp.ErrorKind == string(tokendom.FailureValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
