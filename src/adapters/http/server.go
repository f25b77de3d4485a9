package http

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"time"

	"shepardviz/src/repositories"
	"shepardviz/src/services/synthesis"
)

// Server representa o servidor HTTP da API
type Server struct {
	logger           *slog.Logger
	server           *http.Server
	mux              *http.ServeMux
	port             int
	synthesisService *synthesis.SynthesisService
	cachedSource     *repositories.CachedSourceRepository
}

// NewServer cria uma nova instância do servidor
func NewServer(
	logger *slog.Logger,
	port int,
	synthesisService *synthesis.SynthesisService,
	cachedSource *repositories.CachedSourceRepository,
) *Server {
	server := &Server{
		mux:              http.NewServeMux(),
		port:             port,
		logger:           logger,
		synthesisService: synthesisService,
		cachedSource:     cachedSource,
	}

	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      server.mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Rotas de Leitura
	server.mux.HandleFunc("GET /v1/forest", server.GetForest)
	server.mux.HandleFunc("GET /v1/graph", server.GetGraph)

	// Rotas administrativas
	server.mux.HandleFunc("POST /v1/cache/collections/{id}/invalidate", server.InvalidateCollectionCache)

	return server
}

// Start inicia o servidor HTTP
func (s *Server) Start() error {
	s.logger.Info("Server started", "port", s.port)

	return s.server.ListenAndServe()
}

// Shutdown encerra o servidor HTTP de forma graciosa
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down server...")
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
