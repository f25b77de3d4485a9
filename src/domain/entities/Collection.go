package entities

import (
	"time"
)

// Agrupamento de topo do ShepardDB. Toda Entity pertence a exatamente uma Collection.
type Collection struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}
