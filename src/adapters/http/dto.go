package http

import (
	"shepardviz/src/domain"
	"shepardviz/src/domain/entities"
)

type TreeNodeDTO struct {
	ID         string               `json:"id"`
	Label      string               `json:"label"`
	Kind       domain.NodeKind      `json:"kind"`
	Path       string               `json:"path"`
	Children   []*TreeNodeDTO       `json:"children"`
	References []entities.Reference `json:"references,omitempty"`
	Attributes map[string]string    `json:"attributes,omitempty"`
}

type GraphDTO struct {
	Nodes []domain.GraphNode `json:"nodes"`
	Edges []domain.GraphEdge `json:"edges"`
}

// MapForestToResponse converte a floresta de domínio em DTOs. Travessia
// com pilha explícita, como no serviço: árvores podem ser arbitrariamente
// profundas.
func MapForestToResponse(forest []*domain.TreeNode) []*TreeNodeDTO {
	response := make([]*TreeNodeDTO, 0, len(forest))

	type stackEntry struct {
		node     *domain.TreeNode
		siblings *[]*TreeNodeDTO
	}

	stack := make([]stackEntry, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, stackEntry{node: forest[i], siblings: &response})
	}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dto := &TreeNodeDTO{
			ID:         entry.node.ID,
			Label:      entry.node.Label,
			Kind:       entry.node.Kind,
			Path:       entry.node.Path,
			Children:   make([]*TreeNodeDTO, 0, len(entry.node.Children)),
			References: entry.node.References,
			Attributes: entry.node.Attributes,
		}

		*entry.siblings = append(*entry.siblings, dto)

		for i := len(entry.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, stackEntry{node: entry.node.Children[i], siblings: &dto.Children})
		}
	}

	return response
}
