package repositories

import (
	"context"
	"fmt"

	"shepardviz/src/domain/entities"
	"shepardviz/src/infra/shepard"
)

// SourceRepository expõe a fonte remota para os serviços com o contrato
// mínimo de leitura que a síntese precisa.
type SourceRepository struct {
	client *shepard.ShepardClient
}

func NewSourceRepository(client *shepard.ShepardClient) *SourceRepository {
	return &SourceRepository{
		client: client,
	}
}

func (r *SourceRepository) ListCollections(ctx context.Context) ([]entities.Collection, error) {
	collections, err := r.client.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("SourceRepository.ListCollections - %w", err)
	}

	return collections, nil
}

func (r *SourceRepository) ListEntities(ctx context.Context, collectionID string) ([]entities.Entity, error) {
	result, err := r.client.ListEntities(ctx, collectionID)
	if err != nil {
		return nil, fmt.Errorf("SourceRepository.ListEntities - %w", err)
	}

	return result, nil
}

func (r *SourceRepository) ListReferences(ctx context.Context, collectionID, entityID string) ([]entities.Reference, error) {
	references, err := r.client.ListReferences(ctx, collectionID, entityID)
	if err != nil {
		return nil, fmt.Errorf("SourceRepository.ListReferences - %w", err)
	}

	return references, nil
}
