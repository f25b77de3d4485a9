package shepard

import (
	"context"
	"fmt"
	"net/http"

	"shepardviz/src/domain/entities"
)

// ListEntities retorna a lista plana de data objects da collection, na
// ordem devolvida pela fonte. Lista vazia é um resultado válido.
func (c *ShepardClient) ListEntities(ctx context.Context, collectionID string) ([]entities.Entity, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var result []entities.Entity
	if err := c.do(ctx, http.MethodGet, collectionPath(collectionID)+"/dataObjects", nil, &result); err != nil {
		return nil, fmt.Errorf("ShepardClient.ListEntities - %w", err)
	}

	return result, nil
}

func (c *ShepardClient) GetEntity(ctx context.Context, collectionID, entityID string) (entities.Entity, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var entity entities.Entity
	if err := c.do(ctx, http.MethodGet, entityPath(collectionID, entityID), nil, &entity); err != nil {
		return entities.Entity{}, fmt.Errorf("ShepardClient.GetEntity - %w", err)
	}

	return entity, nil
}

func (c *ShepardClient) CreateEntity(ctx context.Context, collectionID string, entity entities.Entity) (entities.Entity, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var created entities.Entity
	if err := c.do(ctx, http.MethodPost, collectionPath(collectionID)+"/dataObjects", entity, &created); err != nil {
		return entities.Entity{}, fmt.Errorf("ShepardClient.CreateEntity - %w", err)
	}

	return created, nil
}

func (c *ShepardClient) UpdateEntity(ctx context.Context, collectionID string, entity entities.Entity) (entities.Entity, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var updated entities.Entity
	if err := c.do(ctx, http.MethodPut, entityPath(collectionID, entity.ID), entity, &updated); err != nil {
		return entities.Entity{}, fmt.Errorf("ShepardClient.UpdateEntity - %w", err)
	}

	return updated, nil
}

func (c *ShepardClient) DeleteEntity(ctx context.Context, collectionID, entityID string) error {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	if err := c.do(ctx, http.MethodDelete, entityPath(collectionID, entityID), nil, nil); err != nil {
		return fmt.Errorf("ShepardClient.DeleteEntity - %w", err)
	}

	return nil
}

// ListReferences retorna as arestas de saída de uma entity. A chamada é
// individual por entity; o fan-out concorrente fica no serviço de síntese.
func (c *ShepardClient) ListReferences(ctx context.Context, collectionID, entityID string) ([]entities.Reference, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var references []entities.Reference
	if err := c.do(ctx, http.MethodGet, entityPath(collectionID, entityID)+"/references", nil, &references); err != nil {
		return nil, fmt.Errorf("ShepardClient.ListReferences - %w", err)
	}

	return references, nil
}
