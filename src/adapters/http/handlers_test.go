package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"shepardviz/src/domain"
	"shepardviz/src/helper/colorhash"
	"shepardviz/src/repositories"
	"shepardviz/src/services/synthesis"
	"shepardviz/src/test_artefacts/fakesource"
	"shepardviz/src/test_artefacts/stubs"
)

var _ = Describe("Server", func() {
	var (
		source *fakesource.FakeSource
		server *Server
	)

	newTestServer := func(cachedSource *repositories.CachedSourceRepository) *Server {
		logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
		service := synthesis.NewSynthesisService(logger, source, colorhash.NewAssigner(), nil)
		return NewServer(logger, 0, service, cachedSource)
	}

	serve := func(method, target string) *httptest.ResponseRecorder {
		recorder := httptest.NewRecorder()
		server.mux.ServeHTTP(recorder, httptest.NewRequest(method, target, nil))
		return recorder
	}

	BeforeEach(func() {
		source = fakesource.New()
		server = newTestServer(repositories.NewCachedSourceRepository(source, nil))
	})

	Context("GET /v1/forest", func() {
		It("should return the forest as JSON", func() {
			// ARRANGE
			collection := stubs.NewCollectionStub().WithID("col-1").WithName("Experiments").Get()
			root := stubs.NewEntityStub().WithID("r").WithName("Root").Get()
			child := stubs.NewEntityStub().WithID("c").WithParentID("r").Get()
			source.AddCollection(collection, root, child)

			// ACT
			recorder := serve(http.MethodGet, "/v1/forest")

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusOK))
			Expect(recorder.Header().Get("Content-Type")).To(Equal("application/json"))

			var forest []*TreeNodeDTO
			Expect(json.Unmarshal(recorder.Body.Bytes(), &forest)).To(Succeed())
			Expect(forest).To(HaveLen(1))
			Expect(forest[0].ID).To(Equal("col-1"))
			Expect(forest[0].Children).To(HaveLen(1))
			Expect(forest[0].Children[0].ID).To(Equal("r"))
			Expect(forest[0].Children[0].Children[0].ID).To(Equal("c"))
		})

		When("the source is unavailable", func() {
			It("should answer 502 with the generic error message", func() {
				// ARRANGE
				source.CollectionsErr = fmt.Errorf("%w: status 503", domain.ErrSourceUnavailable)

				// ACT
				recorder := serve(http.MethodGet, "/v1/forest")

				// ASSERT
				Expect(recorder.Code).To(Equal(http.StatusBadGateway))
				Expect(recorder.Body.String()).To(ContainSubstring(domain.ErrUnavailableServer.Error()))
			})
		})
	})

	Context("GET /v1/graph", func() {
		It("should return nodes and edges", func() {
			// ARRANGE
			collection := stubs.NewCollectionStub().WithID("col-1").Get()
			root := stubs.NewEntityStub().WithID("r").Get()
			source.AddCollection(collection, root)
			source.AddReferences("r", stubs.NewReferenceStub().WithSourceID("r").WithTargetID("r").Get())

			// ACT
			recorder := serve(http.MethodGet, "/v1/graph")

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusOK))

			var graph GraphDTO
			Expect(json.Unmarshal(recorder.Body.Bytes(), &graph)).To(Succeed())
			Expect(graph.Nodes).To(HaveLen(2))
			// Estrutural col-1→r + auto-referência r→r
			Expect(graph.Edges).To(HaveLen(2))
		})

		When("the source is unavailable", func() {
			It("should answer 502", func() {
				// ARRANGE
				source.CollectionsErr = fmt.Errorf("%w: connection refused", domain.ErrSourceUnavailable)

				// ACT
				recorder := serve(http.MethodGet, "/v1/graph")

				// ASSERT
				Expect(recorder.Code).To(Equal(http.StatusBadGateway))
			})
		})
	})

	Context("POST /v1/cache/collections/{id}/invalidate", func() {
		It("should answer 204 when the invalidation succeeds", func() {
			// ACT
			recorder := serve(http.MethodPost, "/v1/cache/collections/col-1/invalidate")

			// ASSERT
			Expect(recorder.Code).To(Equal(http.StatusNoContent))
		})

		When("no cached repository is wired", func() {
			It("should answer 409", func() {
				// ARRANGE
				server = newTestServer(nil)

				// ACT
				recorder := serve(http.MethodPost, "/v1/cache/collections/col-1/invalidate")

				// ASSERT
				Expect(recorder.Code).To(Equal(http.StatusConflict))
			})
		})
	})
})
