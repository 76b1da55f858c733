package httpin

import (
	"net/http"

	"mintforge/internal/adapters/in/http/handler"
	"mintforge/internal/adapters/in/http/middleware"
	usecase "mintforge/internal/application/usecase"
)

// RouterDeps collects the usecases injected from main.go.
type RouterDeps struct {
	TokenUC *usecase.TokenCreationUsecase
}

// NewRouter sets up HTTP routing for all endpoints.
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	// Health check (always on)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if deps.TokenUC != nil {
		th := handler.NewTokenHandler(deps.TokenUC)
		mux.Handle("/tokens", th)
		mux.Handle("/tokens/", th)
	}

	return middleware.Recover(mux)
}
