package http

import (
	"net/http"

	"shepardviz/src/domain"
)

func (s *Server) InvalidateCollectionCache(w http.ResponseWriter, r *http.Request) {
	collectionID := r.PathValue("id")
	if collectionID == "" {
		http.Error(w, "Collection ID is required", http.StatusBadRequest)
		return
	}

	if s.cachedSource == nil {
		http.Error(w, "Cache is not configured", http.StatusConflict)
		return
	}

	if err := s.cachedSource.InvalidateCollection(r.Context(), collectionID); err != nil {
		s.logger.Error("Failed to invalidate collection cache",
			"collection_id", collectionID,
			"error", err)
		http.Error(w, domain.ErrUnavailableServer.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
