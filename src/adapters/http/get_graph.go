package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"shepardviz/src/domain"
)

func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	result, err := s.synthesisService.Synthesize(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			s.logger.Error("Source unavailable while synthesizing graph", "error", err)
			http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusBadGateway)
			return
		}

		s.logger.Error("Failed to synthesize graph", "error", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	response := GraphDTO{
		Nodes: result.Nodes,
		Edges: result.Edges,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}
