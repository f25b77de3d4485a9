package stubs

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"shepardviz/src/domain/entities"
)

type CollectionStub struct {
	collection entities.Collection
}

func NewCollectionStub() CollectionStub {
	now := time.Now().UTC()

	collection := entities.Collection{
		ID:   gofakeit.UUID(),
		Name: gofakeit.AppName(),
		Attributes: map[string]string{
			"category": "Collection",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	return CollectionStub{collection: collection}
}

func (cs CollectionStub) WithID(id string) CollectionStub {
	cs.collection.ID = id
	return cs
}

func (cs CollectionStub) WithName(name string) CollectionStub {
	cs.collection.Name = name
	return cs
}

func (cs CollectionStub) WithAttributes(attributes map[string]string) CollectionStub {
	cs.collection.Attributes = attributes
	return cs
}

func (cs CollectionStub) Get() entities.Collection {
	return cs.collection
}
