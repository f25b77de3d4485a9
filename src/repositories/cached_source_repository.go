package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"shepardviz/src/domain/entities"
)

// Source é o contrato de leitura da fonte remota consumido pela camada de cache.
type Source interface {
	ListCollections(ctx context.Context) ([]entities.Collection, error)
	ListEntities(ctx context.Context, collectionID string) ([]entities.Entity, error)
	ListReferences(ctx context.Context, collectionID, entityID string) ([]entities.Reference, error)
}

// cacheStore é o subconjunto do RedisClient que o repositório usa.
type cacheStore interface {
	GetKey(ctx context.Context, key string) (string, bool, error)
	SetKey(ctx context.Context, key string, value string) error
	SetWithRegistry(ctx context.Context, cacheKey string, cacheValue string, registryKeys []string) error
	InvalidateRegistry(ctx context.Context, registryKey string) error
	InvalidateKeys(ctx context.Context, keys []string) error
}

// CachedSourceRepository aplica cache-aside sobre as leituras remotas.
// Falha de cache nunca falha a leitura: loga e segue para a fonte.
type CachedSourceRepository struct {
	source Source
	cache  cacheStore
}

func NewCachedSourceRepository(source Source, cache cacheStore) *CachedSourceRepository {
	return &CachedSourceRepository{
		source: source,
		cache:  cache,
	}
}

const collectionsCacheKey = "shepard:collections"

func entitiesCacheKey(collectionID string) string {
	return "shepard:entities:" + collectionID
}

func referencesCacheKey(collectionID, entityID string) string {
	return "shepard:references:" + collectionID + ":" + entityID
}

func registryKey(collectionID string) string {
	return "shepard:registry:" + collectionID
}

func (r *CachedSourceRepository) ListCollections(ctx context.Context) ([]entities.Collection, error) {
	var cached []entities.Collection
	if r.getFromCache(ctx, collectionsCacheKey, &cached) {
		return cached, nil
	}

	collections, err := r.source.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	r.setInCache(collectionsCacheKey, "", collections)

	return collections, nil
}

func (r *CachedSourceRepository) ListEntities(ctx context.Context, collectionID string) ([]entities.Entity, error) {
	cacheKey := entitiesCacheKey(collectionID)

	var cached []entities.Entity
	if r.getFromCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	result, err := r.source.ListEntities(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	r.setInCache(cacheKey, registryKey(collectionID), result)

	return result, nil
}

func (r *CachedSourceRepository) ListReferences(ctx context.Context, collectionID, entityID string) ([]entities.Reference, error) {
	cacheKey := referencesCacheKey(collectionID, entityID)

	var cached []entities.Reference
	if r.getFromCache(ctx, cacheKey, &cached) {
		return cached, nil
	}

	references, err := r.source.ListReferences(ctx, collectionID, entityID)
	if err != nil {
		return nil, err
	}

	r.setInCache(cacheKey, registryKey(collectionID), references)

	return references, nil
}

// InvalidateCollection derruba tudo que foi cacheado para a collection,
// mais a listagem de collections.
func (r *CachedSourceRepository) InvalidateCollection(ctx context.Context, collectionID string) error {
	if r.cache == nil {
		return nil
	}

	if err := r.cache.InvalidateRegistry(ctx, registryKey(collectionID)); err != nil {
		return fmt.Errorf("CachedSourceRepository.InvalidateCollection - %w", err)
	}

	if err := r.cache.InvalidateKeys(ctx, []string{collectionsCacheKey}); err != nil {
		return fmt.Errorf("CachedSourceRepository.InvalidateCollection - %w", err)
	}

	return nil
}

func (r *CachedSourceRepository) getFromCache(ctx context.Context, cacheKey string, out any) bool {
	if r.cache == nil {
		return false
	}

	cachedJSON, found, err := r.cache.GetKey(ctx, cacheKey)
	if err != nil {
		// Log erro de cache mas continua com a fonte remota
		log.Printf("Cache error for key %s: %v", cacheKey, err)
		return false
	}
	if !found {
		return false
	}

	if err := json.Unmarshal([]byte(cachedJSON), out); err != nil {
		log.Printf("Failed to unmarshal cached data for key %s: %v", cacheKey, err)
		return false
	}

	return true
}

func (r *CachedSourceRepository) setInCache(cacheKey string, registry string, value any) {
	if r.cache == nil {
		return
	}

	dataJSON, err := json.Marshal(value)
	if err != nil {
		log.Printf("Failed to marshal cache data for key %s: %v", cacheKey, err)
		return
	}

	// Escrita de cache é best-effort e não bloqueia a resposta.
	go func() {
		ctxWithTimeout, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var setErr error
		if registry == "" {
			setErr = r.cache.SetKey(ctxWithTimeout, cacheKey, string(dataJSON))
		} else {
			setErr = r.cache.SetWithRegistry(ctxWithTimeout, cacheKey, string(dataJSON), []string{registry})
		}

		if setErr != nil {
			log.Printf("Failed to set cache for key %s: %v", cacheKey, setErr)
		}
	}()
}
