package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"shepardviz/src/domain/entities"
	"shepardviz/src/test_artefacts/fakesource"
	"shepardviz/src/test_artefacts/stubs"
)

// fakeCacheStore implementa cacheStore em memória, com falha programável
// na leitura.
type fakeCacheStore struct {
	mu sync.Mutex

	data       map[string]string
	registries map[string][]string

	GetErr error
}

func newFakeCacheStore() *fakeCacheStore {
	return &fakeCacheStore{
		data:       make(map[string]string),
		registries: make(map[string][]string),
	}
}

func (f *fakeCacheStore) GetKey(ctx context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.GetErr != nil {
		return "", false, f.GetErr
	}

	value, found := f.data[key]
	return value, found, nil
}

func (f *fakeCacheStore) SetKey(ctx context.Context, key string, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[key] = value
	return nil
}

func (f *fakeCacheStore) SetWithRegistry(ctx context.Context, cacheKey string, cacheValue string, registryKeys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.data[cacheKey] = cacheValue
	for _, registry := range registryKeys {
		f.registries[registry] = append(f.registries[registry], cacheKey)
	}

	return nil
}

func (f *fakeCacheStore) InvalidateRegistry(ctx context.Context, registryKey string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, cacheKey := range f.registries[registryKey] {
		delete(f.data, cacheKey)
	}
	delete(f.registries, registryKey)

	return nil
}

func (f *fakeCacheStore) InvalidateKeys(ctx context.Context, keys []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, key := range keys {
		delete(f.data, key)
	}

	return nil
}

func (f *fakeCacheStore) get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, found := f.data[key]
	return value, found
}

func (f *fakeCacheStore) seed(key string, value any) {
	dataJSON, err := json.Marshal(value)
	Expect(err).NotTo(HaveOccurred())

	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = string(dataJSON)
}

var _ = Describe("CachedSourceRepository", func() {
	var (
		source     *fakesource.FakeSource
		cache      *fakeCacheStore
		repository *CachedSourceRepository
		ctx        context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		source = fakesource.New()
		cache = newFakeCacheStore()
		repository = NewCachedSourceRepository(source, cache)
	})

	Context("cache miss", func() {
		It("should read from the source and populate the cache", func() {
			// ARRANGE
			collection := stubs.NewCollectionStub().WithID("col-1").Get()
			source.AddCollection(collection, stubs.NewEntityStub().WithID("e-1").Get())

			// ACT
			result, err := repository.ListEntities(ctx, "col-1")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal("e-1"))

			// A escrita de cache é assíncrona.
			Eventually(func() bool {
				_, found := cache.get(entitiesCacheKey("col-1"))
				return found
			}).WithTimeout(2 * time.Second).Should(BeTrue())
		})

		It("should propagate source errors without caching", func() {
			// ARRANGE
			source.EntitiesErr["col-1"] = errors.New("boom")

			// ACT
			_, err := repository.ListEntities(ctx, "col-1")

			// ASSERT
			Expect(err).To(MatchError("boom"))
			Consistently(func() bool {
				_, found := cache.get(entitiesCacheKey("col-1"))
				return found
			}).WithTimeout(100 * time.Millisecond).Should(BeFalse())
		})
	})

	Context("cache hit", func() {
		It("should serve cached data without touching the source", func() {
			// ARRANGE
			cached := []entities.Collection{stubs.NewCollectionStub().WithID("cached-col").Get()}
			cache.seed(collectionsCacheKey, cached)
			source.CollectionsErr = errors.New("source must not be called")

			// ACT
			result, err := repository.ListCollections(ctx)

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal("cached-col"))
		})

		It("should serve cached references keyed by collection and entity", func() {
			// ARRANGE
			cached := []entities.Reference{stubs.NewReferenceStub().WithSourceID("e-1").Get()}
			cache.seed(referencesCacheKey("col-1", "e-1"), cached)

			// ACT
			result, err := repository.ListReferences(ctx, "col-1", "e-1")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(source.ReferenceCalls()).To(BeZero())
		})
	})

	Context("cache degradation", func() {
		When("the cache read fails", func() {
			It("should fall back to the source", func() {
				// ARRANGE
				cache.GetErr = errors.New("redis: connection pool timeout")
				source.AddCollection(stubs.NewCollectionStub().WithID("col-1").Get())

				// ACT
				result, err := repository.ListCollections(ctx)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(HaveLen(1))
			})
		})

		When("no cache is configured", func() {
			It("should behave as a pass-through", func() {
				// ARRANGE
				repository = NewCachedSourceRepository(source, nil)
				source.AddCollection(stubs.NewCollectionStub().WithID("col-1").Get())

				// ACT
				result, err := repository.ListCollections(ctx)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result).To(HaveLen(1))
				Expect(repository.InvalidateCollection(ctx, "col-1")).To(Succeed())
			})
		})
	})

	Context("invalidation", func() {
		It("should drop every key registered for the collection plus the collections listing", func() {
			// ARRANGE
			cache.seed(collectionsCacheKey, []entities.Collection{})
			Expect(cache.SetWithRegistry(ctx, entitiesCacheKey("col-1"), "[]", []string{registryKey("col-1")})).To(Succeed())
			Expect(cache.SetWithRegistry(ctx, referencesCacheKey("col-1", "e-1"), "[]", []string{registryKey("col-1")})).To(Succeed())
			Expect(cache.SetWithRegistry(ctx, entitiesCacheKey("col-2"), "[]", []string{registryKey("col-2")})).To(Succeed())

			// ACT
			err := repository.InvalidateCollection(ctx, "col-1")

			// ASSERT
			Expect(err).NotTo(HaveOccurred())

			_, found := cache.get(entitiesCacheKey("col-1"))
			Expect(found).To(BeFalse())
			_, found = cache.get(referencesCacheKey("col-1", "e-1"))
			Expect(found).To(BeFalse())
			_, found = cache.get(collectionsCacheKey)
			Expect(found).To(BeFalse())

			// Outras collections não são afetadas.
			_, found = cache.get(entitiesCacheKey("col-2"))
			Expect(found).To(BeTrue())
		})
	})
})
