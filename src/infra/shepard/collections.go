package shepard

import (
	"context"
	"fmt"
	"net/http"

	"shepardviz/src/domain/entities"
)

// ListCollections retorna todas as collections visíveis para o token atual.
func (c *ShepardClient) ListCollections(ctx context.Context) ([]entities.Collection, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var collections []entities.Collection
	if err := c.do(ctx, http.MethodGet, "/collections", nil, &collections); err != nil {
		return nil, fmt.Errorf("ShepardClient.ListCollections - %w", err)
	}

	return collections, nil
}

func (c *ShepardClient) GetCollection(ctx context.Context, collectionID string) (entities.Collection, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var collection entities.Collection
	if err := c.do(ctx, http.MethodGet, collectionPath(collectionID), nil, &collection); err != nil {
		return entities.Collection{}, fmt.Errorf("ShepardClient.GetCollection - %w", err)
	}

	return collection, nil
}

func (c *ShepardClient) CreateCollection(ctx context.Context, collection entities.Collection) (entities.Collection, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var created entities.Collection
	if err := c.do(ctx, http.MethodPost, "/collections", collection, &created); err != nil {
		return entities.Collection{}, fmt.Errorf("ShepardClient.CreateCollection - %w", err)
	}

	return created, nil
}

func (c *ShepardClient) UpdateCollection(ctx context.Context, collection entities.Collection) (entities.Collection, error) {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	var updated entities.Collection
	if err := c.do(ctx, http.MethodPut, collectionPath(collection.ID), collection, &updated); err != nil {
		return entities.Collection{}, fmt.Errorf("ShepardClient.UpdateCollection - %w", err)
	}

	return updated, nil
}

func (c *ShepardClient) DeleteCollection(ctx context.Context, collectionID string) error {
	ctx, cancel := withDeadline(ctx)
	defer cancel()

	if err := c.do(ctx, http.MethodDelete, collectionPath(collectionID), nil, nil); err != nil {
		return fmt.Errorf("ShepardClient.DeleteCollection - %w", err)
	}

	return nil
}
