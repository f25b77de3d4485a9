package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"shepardviz/src/domain"
)

func (s *Server) GetForest(w http.ResponseWriter, r *http.Request) {
	forest, err := s.synthesisService.BuildForest(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrSourceUnavailable) {
			s.logger.Error("Source unavailable while building forest", "error", err)
			http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusBadGateway)
			return
		}

		s.logger.Error("Failed to build forest", "error", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	response := MapForestToResponse(forest)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		s.logger.Error("Failed to write JSON response", "error", err)
	}
}
