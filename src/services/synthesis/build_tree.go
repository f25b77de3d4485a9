package synthesis

import (
	"context"

	"shepardviz/src/domain"
	"shepardviz/src/domain/entities"
)

// PathSeparator une os labels dos ancestrais no breadcrumb de cada nó.
const PathSeparator = " → "

// Sentinela do índice de pais para entities sem ParentID.
const noParent = ""

// buildTree monta a árvore de uma collection a partir da lista plana de
// entities. A travessia usa pilha explícita: profundidade ilimitada sem
// crescer a call stack.
//
// Entities cujo ParentID aponta para um id inexistente ficam presas em um
// balde do índice que nunca é visitado e somem da árvore silenciosamente.
func (s *SynthesisService) buildTree(ctx context.Context, collection entities.Collection, collectionEntities []entities.Entity) *domain.TreeNode {
	root := &domain.TreeNode{
		ID:         collection.ID,
		Label:      collection.Name,
		Kind:       domain.KindCollection,
		Path:       collection.Name,
		Children:   []*domain.TreeNode{},
		Attributes: collection.Attributes,
	}

	if len(collectionEntities) == 0 {
		return root
	}

	// Índice pai → filhos em uma única passada, preservando a ordem da fonte.
	byParent := make(map[string][]entities.Entity)
	entityIDs := make([]string, 0, len(collectionEntities))

	for _, entity := range collectionEntities {
		parent := noParent
		if entity.ParentID != nil {
			parent = *entity.ParentID
		}

		byParent[parent] = append(byParent[parent], entity)
		entityIDs = append(entityIDs, entity.ID)
	}

	references := s.fetchReferences(ctx, collection.ID, entityIDs)

	type stackEntry struct {
		entity     entities.Entity
		parentPath string
		siblings   *[]*domain.TreeNode
	}

	// Empilha em ordem reversa: a pilha é LIFO, então o pop reproduz a
	// ordem original dos irmãos.
	roots := byParent[noParent]
	stack := make([]stackEntry, 0, len(collectionEntities))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, stackEntry{
			entity:     roots[i],
			parentPath: collection.Name,
			siblings:   &root.Children,
		})
	}

	for len(stack) > 0 {
		entry := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		path := entry.entity.Name
		if entry.parentPath != "" {
			path = entry.parentPath + PathSeparator + entry.entity.Name
		}

		node := &domain.TreeNode{
			ID:         entry.entity.ID,
			Label:      entry.entity.Name,
			Kind:       domain.KindEntity,
			Path:       path,
			Children:   []*domain.TreeNode{},
			References: references[entry.entity.ID],
			Attributes: entry.entity.Attributes,
		}

		*entry.siblings = append(*entry.siblings, node)

		children := byParent[entry.entity.ID]
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, stackEntry{
				entity:     children[i],
				parentPath: path,
				siblings:   &node.Children,
			})
		}
	}

	return root
}
