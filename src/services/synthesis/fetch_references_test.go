package synthesis_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"shepardviz/src/domain"
	"shepardviz/src/domain/entities"
	"shepardviz/src/services/synthesis"
	"shepardviz/src/test_artefacts/fakesource"
	"shepardviz/src/test_artefacts/stubs"
)

// O fetcher é exercitado através do BuildForest: cada entity da collection
// dispara uma busca de references com fan-out limitado.
var _ = Describe("Reference fetcher", func() {
	var (
		source  *fakesource.FakeSource
		service *synthesis.SynthesisService
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		source = fakesource.New()
		service = newTestService(source, nil)
	})

	Context("partial failure", func() {
		When("3 of 10 fetches fail", func() {
			It("should finish the batch with empty lists for the failed entities, without raising", func() {
				// ARRANGE
				collection := stubs.NewCollectionStub().Get()
				batch := make([]entities.Entity, 0, 10)
				for i := 0; i < 10; i++ {
					entity := stubs.NewEntityStub().WithID(fmt.Sprintf("entity-%d", i)).Get()
					batch = append(batch, entity)
					source.AddReferences(entity.ID, stubs.NewReferenceStub().WithSourceID(entity.ID).Get())
				}
				source.AddCollection(collection, batch...)

				source.ReferencesErr["entity-2"] = fmt.Errorf("%w: timeout", domain.ErrSourceUnavailable)
				source.ReferencesErr["entity-5"] = fmt.Errorf("%w: timeout", domain.ErrSourceUnavailable)
				source.ReferencesErr["entity-8"] = fmt.Errorf("%w: timeout", domain.ErrSourceUnavailable)

				// ACT
				forest, err := service.BuildForest(ctx)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(forest[0].Children).To(HaveLen(10))

				failed := map[string]bool{"entity-2": true, "entity-5": true, "entity-8": true}
				for _, node := range forest[0].Children {
					if failed[node.ID] {
						Expect(node.References).To(BeEmpty(), "entity %s should have an empty reference list", node.ID)
					} else {
						Expect(node.References).To(HaveLen(1), "entity %s should keep its reference", node.ID)
						Expect(node.References[0].SourceID).To(Equal(node.ID))
					}
				}
			})
		})
	})

	Context("bounded concurrency", func() {
		When("the collection has three times more entities than workers", func() {
			It("should never exceed 10 in-flight fetches and still fetch every entity", func() {
				// ARRANGE
				collection := stubs.NewCollectionStub().Get()
				batch := make([]entities.Entity, 0, 30)
				for i := 0; i < 30; i++ {
					batch = append(batch, stubs.NewEntityStub().WithID(fmt.Sprintf("entity-%d", i)).Get())
				}
				source.AddCollection(collection, batch...)
				source.ReferenceDelay = 10 * time.Millisecond

				// ACT
				_, err := service.BuildForest(ctx)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(source.ReferenceCalls()).To(Equal(30))
				Expect(source.MaxInFlight()).To(BeNumerically("<=", 10))
			})
		})
	})
})
