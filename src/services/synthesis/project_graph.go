package synthesis

import (
	"shepardviz/src/domain"
)

const (
	// Cor fixa das arestas estruturais (pai→filho).
	structuralEdgeColor = "#a5abb6"
	// Cor fixa das arestas referenciais.
	referenceEdgeColor = "#f36924"

	categoryAttribute  = "category"
	edgeLabelAttribute = "edgeLabel"
)

// ProjectGraph achata a floresta em listas de nós e arestas para a
// visualização force-directed. Mesma estratégia de pilha explícita do
// buildTree; filhos são visitados na ordem armazenada, então saídas de
// builds repetidos sobre o mesmo input são idênticas.
func (s *SynthesisService) ProjectGraph(forest []*domain.TreeNode) ([]domain.GraphNode, []domain.GraphEdge) {
	nodes := make([]domain.GraphNode, 0)
	edges := make([]domain.GraphEdge, 0)

	type stackEntry struct {
		node     *domain.TreeNode
		parentID string
	}

	stack := make([]stackEntry, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, stackEntry{node: forest[i]})
	}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := entry.node

		nodes = append(nodes, domain.GraphNode{
			ID:      node.ID,
			Caption: node.Label,
			Color:   s.colors.ColorFor(node.Attributes[categoryAttribute]),
		})

		if entry.parentID != "" {
			edges = append(edges, domain.GraphEdge{
				Source:  entry.parentID,
				Target:  node.ID,
				Caption: node.Attributes[edgeLabelAttribute],
				Color:   structuralEdgeColor,
			})
		}

		// Alvos fora do conjunto emitido (dangling) passam adiante mesmo
		// assim; filtrar é problema de quem renderiza.
		for _, reference := range node.References {
			edges = append(edges, domain.GraphEdge{
				Source:  reference.SourceID,
				Target:  reference.TargetID,
				Caption: reference.Relationship,
				Color:   referenceEdgeColor,
			})
		}

		for i := len(node.Children) - 1; i >= 0; i-- {
			stack = append(stack, stackEntry{
				node:     node.Children[i],
				parentID: node.ID,
			})
		}
	}

	return nodes, edges
}
