package main

import (
	"context"
	"net/http"
)

const URI_HEALTH = "/healthz"

func (s *Server) routes(ctx context.Context) {
	s.router = s.GameServer.Router(ctx)
	s.router.HandleFunc("GET", URI_HEALTH, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
