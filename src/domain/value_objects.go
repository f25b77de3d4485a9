package domain

import (
	"errors"
	"time"

	"shepardviz/src/domain/entities"
)

var (
	ErrSourceUnavailable = errors.New("shepard source unavailable")

	ErrNotFound = errors.New("resource not found")

	ErrUnavailableServer = errors.New("Oops, something unexpected happened. Please try again later.")
)

// ############################################################
// ############ PROCESSO DE SÍNTESE DA ÁRVORE #################
// ############################################################

type NodeKind string

const (
	KindCollection NodeKind = "collection"
	KindEntity     NodeKind = "entity"
)

// TreeNode é o nó derivado da síntese. Construído uma vez por build,
// imutável depois de montado, descartado no build seguinte.
type TreeNode struct {
	ID    string   `json:"id"`
	Label string   `json:"label"`
	Kind  NodeKind `json:"kind"`
	// Path é o breadcrumb legível: labels dos ancestrais unidos pelo
	// separador, terminando no label deste nó.
	Path       string               `json:"path"`
	Children   []*TreeNode          `json:"children"`
	References []entities.Reference `json:"references,omitempty"`
	Attributes map[string]string    `json:"attributes,omitempty"`
}

// ############################################################
// ########### PROCESSO DE PROJEÇÃO DO GRAFO ##################
// ############################################################

// GraphNode é a projeção 1:1 de um TreeNode para visualização force-directed.
type GraphNode struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
	Color   string `json:"color"`
}

// GraphEdge liga dois GraphNodes. Arestas estruturais (pai→filho) usam a
// cor neutra; arestas referenciais usam a cor de destaque. Duplicatas são
// legais e preservadas.
type GraphEdge struct {
	Source  string `json:"source"`
	Target  string `json:"target"`
	Caption string `json:"caption,omitempty"`
	Color   string `json:"color"`
}

// ############################################################
// ################# EVENTOS DE DOMÍNIO #######################
// ############################################################

// ForestSynthesizedEvent é publicado após cada build completo com sucesso.
type ForestSynthesizedEvent struct {
	Collections   int       `json:"collections"`
	TreeNodes     int       `json:"tree_nodes"`
	GraphNodes    int       `json:"graph_nodes"`
	GraphEdges    int       `json:"graph_edges"`
	SynthesizedAt time.Time `json:"synthesized_at"`
}
