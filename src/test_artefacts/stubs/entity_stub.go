package stubs

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"shepardviz/src/domain/entities"
)

type EntityStub struct {
	entity entities.Entity
}

func NewEntityStub() EntityStub {
	now := time.Now().UTC()

	entity := entities.Entity{
		ID:   gofakeit.UUID(),
		Name: gofakeit.ProductName(),
		Attributes: map[string]string{
			"category": gofakeit.BuzzWord(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return EntityStub{entity: entity}
}

func (es EntityStub) WithID(id string) EntityStub {
	es.entity.ID = id
	return es
}

func (es EntityStub) WithName(name string) EntityStub {
	es.entity.Name = name
	return es
}

func (es EntityStub) WithParentID(parentID string) EntityStub {
	es.entity.ParentID = &parentID
	return es
}

func (es EntityStub) WithAttributes(attributes map[string]string) EntityStub {
	es.entity.Attributes = attributes
	return es
}

func (es EntityStub) Get() entities.Entity {
	return es.entity
}
