package synthesis

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"shepardviz/src/domain/entities"
)

const (
	// Limite fixo de requests em voo por collection.
	referenceFetchWorkers = 10

	// Teto por request quando a fonte não impõe deadline próprio.
	referenceFetchTimeout = 30 * time.Second
)

// fetchReferences busca as arestas de saída de cada entity com fan-out
// limitado. Falha individual vira lista vazia e um warning; o lote sempre
// retorna com todas as chaves presentes.
func (s *SynthesisService) fetchReferences(ctx context.Context, collectionID string, entityIDs []string) map[string][]entities.Reference {
	results := make(map[string][]entities.Reference, len(entityIDs))

	var mu sync.Mutex
	var group errgroup.Group
	group.SetLimit(referenceFetchWorkers)

	for _, entityID := range entityIDs {
		group.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(ctx, referenceFetchTimeout)
			defer cancel()

			references, err := s.source.ListReferences(fetchCtx, collectionID, entityID)
			if err != nil {
				// Sem retry: a falha é final para este build.
				s.logger.Warn("Reference fetch failed",
					"collection_id", collectionID,
					"entity_id", entityID,
					"error", err)
				references = []entities.Reference{}
			}

			mu.Lock()
			results[entityID] = references
			mu.Unlock()

			return nil
		})
	}

	// Os workers nunca retornam erro; Wait só sincroniza o fan-in.
	group.Wait()

	return results
}
