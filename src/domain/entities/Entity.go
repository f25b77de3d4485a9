package entities

import (
	"time"
)

// É o registro hierárquico do ShepardDB (data object).
type Entity struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	// ParentID aponta para outra Entity da MESMA collection.
	// nil significa que o registro é raiz dentro da sua collection.
	ParentID *string `json:"parent_id,omitempty"`
	// Atributos livres vindos da fonte (incluindo "category", usado na coloração).
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
