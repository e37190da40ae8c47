package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RPCHandler handles worklog method dispatch.
type RPCHandler interface {
	Handle(ctx context.Context, ownerID, method string, params json.RawMessage) (any, error)
}

// Server wires HTTP handlers.
type Server struct {
	handler RPCHandler
}

// NewServer creates an HTTP router with middleware.
func NewServer(handler RPCHandler, ownerMiddleware func(http.Handler) http.Handler) *chi.Mux {
	r := chi.NewRouter()

	if ownerMiddleware != nil {
		r.Use(ownerMiddleware)
	}

	srv := &Server{handler: handler}

	r.Post("/rpc", srv.handleRPC)
	r.Get("/health", srv.handleHealth)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r.Body)
	if err != nil {
		WriteError(w, nil, ErrInvalidReq, "invalid request", nil)
		return
	}

	ownerID, ok := OwnerFromContext(r.Context())
	if !ok || ownerID == "" {
		http.Error(w, "missing owner", http.StatusUnauthorized)
		return
	}

	result, err := s.handler.Handle(r.Context(), ownerID, req.Method, req.Params)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		WriteError(w, req.ID, ErrInternal, err.Error(), nil)
		return
	}

	WriteResult(w, req.ID, result)
}
