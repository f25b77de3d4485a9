package synthesis_test

import (
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"shepardviz/src/domain"
	"shepardviz/src/services/synthesis"
	"shepardviz/src/test_artefacts/comparer"
	"shepardviz/src/test_artefacts/fakesource"
	"shepardviz/src/test_artefacts/stubs"
)

type capturingPublisher struct {
	published []domain.ForestSynthesizedEvent
}

func (p *capturingPublisher) PublishForestSynthesized(ctx context.Context, event domain.ForestSynthesizedEvent) error {
	p.published = append(p.published, event)
	return nil
}

var _ = Describe("SynthesisService", func() {
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

	Context("source failures", func() {
		When("the collection listing is unavailable", func() {
			It("should fail the whole build", func() {
				// ARRANGE
				source.CollectionsErr = fmt.Errorf("%w: connection refused", domain.ErrSourceUnavailable)

				// ACT
				forest, err := service.BuildForest(ctx)

				// ASSERT
				Expect(err).To(MatchError(domain.ErrSourceUnavailable))
				Expect(forest).To(BeNil())
			})
		})

		When("one collection's entity listing fails", func() {
			It("should drop only the affected collection", func() {
				// ARRANGE
				broken := stubs.NewCollectionStub().WithID("broken").Get()
				healthy := stubs.NewCollectionStub().WithID("healthy").Get()
				source.AddCollection(broken)
				source.AddCollection(healthy, stubs.NewEntityStub().Get())
				source.EntitiesErr["broken"] = fmt.Errorf("%w: status 503", domain.ErrSourceUnavailable)

				// ACT
				forest, err := service.BuildForest(ctx)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(forest).To(HaveLen(1))
				Expect(forest[0].ID).To(Equal("healthy"))
			})
		})
	})

	Context("synthesize", func() {
		When("the build succeeds", func() {
			It("should publish one event with the build counters", func() {
				// ARRANGE
				publisher := &capturingPublisher{}
				service = newTestService(source, publisher)

				collection := stubs.NewCollectionStub().Get()
				root := stubs.NewEntityStub().WithID("r").Get()
				child := stubs.NewEntityStub().WithID("c").WithParentID("r").Get()
				source.AddCollection(collection, root, child)
				source.AddReferences("c", stubs.NewReferenceStub().WithSourceID("c").WithTargetID("r").Get())

				// ACT
				result, err := service.Synthesize(ctx)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Forest).To(HaveLen(1))
				Expect(result.Nodes).To(HaveLen(3))
				// 2 arestas estruturais + 1 referencial
				Expect(result.Edges).To(HaveLen(3))

				Expect(publisher.published).To(HaveLen(1))
				Expect(publisher.published[0]).To(BeComparableTo(domain.ForestSynthesizedEvent{
					Collections:   1,
					TreeNodes:     3,
					GraphNodes:    3,
					GraphEdges:    3,
					SynthesizedAt: time.Now().UTC(),
				}, comparer.TimeWithinTolerance(200)))
			})
		})

		When("no publisher is configured", func() {
			It("should still return the full result", func() {
				// ARRANGE
				collection := stubs.NewCollectionStub().Get()
				source.AddCollection(collection, stubs.NewEntityStub().Get())

				// ACT
				result, err := service.Synthesize(ctx)

				// ASSERT
				Expect(err).NotTo(HaveOccurred())
				Expect(result.Nodes).To(HaveLen(2))
			})
		})
	})
})
