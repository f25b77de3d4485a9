package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shepardviz/src/domain"
	"shepardviz/src/helper/colorhash"
	"shepardviz/src/repositories"
)

// EventPublisher recebe o evento de domínio emitido após cada síntese completa.
type EventPublisher interface {
	PublishForestSynthesized(ctx context.Context, event domain.ForestSynthesizedEvent) error
}

// SynthesisService transforma os registros planos da fonte remota na
// floresta de navegação e na projeção nó/aresta para visualização.
type SynthesisService struct {
	logger    *slog.Logger
	source    repositories.Source
	colors    *colorhash.Assigner
	publisher EventPublisher
}

// NewSynthesisService monta o serviço. publisher pode ser nil quando não
// há broker configurado.
func NewSynthesisService(
	logger *slog.Logger,
	source repositories.Source,
	colors *colorhash.Assigner,
	publisher EventPublisher,
) *SynthesisService {
	return &SynthesisService{
		logger:    logger,
		source:    source,
		colors:    colors,
		publisher: publisher,
	}
}

// Result agrupa os dois artefatos derivados de um build.
type Result struct {
	Forest []*domain.TreeNode
	Nodes  []domain.GraphNode
	Edges  []domain.GraphEdge
}

// BuildForest lista as collections e monta uma árvore por collection.
// Falha na listagem de collections é fatal; falha na listagem de entities
// derruba apenas a collection afetada (logada e omitida da floresta).
func (s *SynthesisService) BuildForest(ctx context.Context) ([]*domain.TreeNode, error) {
	collections, err := s.source.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("SynthesisService.BuildForest - failed to list collections: %w", err)
	}

	forest := make([]*domain.TreeNode, 0, len(collections))

	for _, collection := range collections {
		collectionEntities, err := s.source.ListEntities(ctx, collection.ID)
		if err != nil {
			s.logger.Error("Skipping collection: entity listing failed",
				"collection_id", collection.ID,
				"collection_name", collection.Name,
				"error", err)
			continue
		}

		forest = append(forest, s.buildTree(ctx, collection, collectionEntities))
	}

	return forest, nil
}

// Synthesize executa o build completo (floresta + projeção) e publica o
// evento de domínio. Publicação é best-effort.
func (s *SynthesisService) Synthesize(ctx context.Context) (Result, error) {
	forest, err := s.BuildForest(ctx)
	if err != nil {
		return Result{}, err
	}

	nodes, edges := s.ProjectGraph(forest)

	result := Result{
		Forest: forest,
		Nodes:  nodes,
		Edges:  edges,
	}

	if s.publisher != nil {
		event := domain.ForestSynthesizedEvent{
			Collections:   len(forest),
			TreeNodes:     countTreeNodes(forest),
			GraphNodes:    len(nodes),
			GraphEdges:    len(edges),
			SynthesizedAt: time.Now().UTC(),
		}

		if err := s.publisher.PublishForestSynthesized(ctx, event); err != nil {
			s.logger.Warn("Failed to publish forest synthesized event", "error", err)
		}
	}

	return result, nil
}

func countTreeNodes(forest []*domain.TreeNode) int {
	total := 0

	stack := make([]*domain.TreeNode, len(forest))
	copy(stack, forest)

	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		total++
		stack = append(stack, node.Children...)
	}

	return total
}
