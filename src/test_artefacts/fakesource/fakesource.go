package fakesource

import (
	"context"
	"sync"
	"time"

	"shepardviz/src/domain/entities"
)

// FakeSource é uma fonte em memória com falhas programáveis, usada nos
// testes no lugar do ShepardDB real. Também contabiliza a concorrência
// observada nas buscas de references.
type FakeSource struct {
	mu sync.Mutex

	Collections          []entities.Collection
	EntitiesByCollection map[string][]entities.Entity
	ReferencesByEntity   map[string][]entities.Reference

	CollectionsErr error
	EntitiesErr    map[string]error
	ReferencesErr  map[string]error

	// ReferenceDelay simula a latência por request da fonte.
	ReferenceDelay time.Duration

	referenceCalls int
	inFlight       int
	maxInFlight    int
}

func New() *FakeSource {
	return &FakeSource{
		EntitiesByCollection: make(map[string][]entities.Entity),
		ReferencesByEntity:   make(map[string][]entities.Reference),
		EntitiesErr:          make(map[string]error),
		ReferencesErr:        make(map[string]error),
	}
}

func (f *FakeSource) AddCollection(collection entities.Collection, collectionEntities ...entities.Entity) {
	f.Collections = append(f.Collections, collection)
	f.EntitiesByCollection[collection.ID] = collectionEntities
}

func (f *FakeSource) AddReferences(entityID string, references ...entities.Reference) {
	f.ReferencesByEntity[entityID] = append(f.ReferencesByEntity[entityID], references...)
}

func (f *FakeSource) ListCollections(ctx context.Context) ([]entities.Collection, error) {
	if f.CollectionsErr != nil {
		return nil, f.CollectionsErr
	}

	return f.Collections, nil
}

func (f *FakeSource) ListEntities(ctx context.Context, collectionID string) ([]entities.Entity, error) {
	if err := f.EntitiesErr[collectionID]; err != nil {
		return nil, err
	}

	return f.EntitiesByCollection[collectionID], nil
}

func (f *FakeSource) ListReferences(ctx context.Context, collectionID, entityID string) ([]entities.Reference, error) {
	f.mu.Lock()
	f.referenceCalls++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	if f.ReferenceDelay > 0 {
		time.Sleep(f.ReferenceDelay)
	}

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if err := f.ReferencesErr[entityID]; err != nil {
		return nil, err
	}

	return f.ReferencesByEntity[entityID], nil
}

// ReferenceCalls devolve quantas buscas de references a fonte recebeu.
func (f *FakeSource) ReferenceCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.referenceCalls
}

// MaxInFlight devolve o pico de buscas simultâneas observado.
func (f *FakeSource) MaxInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}
