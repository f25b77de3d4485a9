package stubs

import (
	"github.com/brianvoe/gofakeit/v6"

	"shepardviz/src/domain/entities"
)

type ReferenceStub struct {
	reference entities.Reference
}

func NewReferenceStub() ReferenceStub {
	reference := entities.Reference{
		SourceID:     gofakeit.UUID(),
		TargetID:     gofakeit.UUID(),
		Relationship: gofakeit.Verb(),
	}

	return ReferenceStub{reference: reference}
}

func (rs ReferenceStub) WithSourceID(sourceID string) ReferenceStub {
	rs.reference.SourceID = sourceID
	return rs
}

func (rs ReferenceStub) WithTargetID(targetID string) ReferenceStub {
	rs.reference.TargetID = targetID
	return rs
}

func (rs ReferenceStub) WithRelationship(relationship string) ReferenceStub {
	rs.reference.Relationship = relationship
	return rs
}

func (rs ReferenceStub) Get() entities.Reference {
	return rs.reference
}
