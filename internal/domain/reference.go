package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type ReferenceKind string

const (
	ReferenceKindNone       ReferenceKind = ""
	ReferenceKindAssignment ReferenceKind = "Assignment"
	ReferenceKindOther      ReferenceKind = "Other"
)

// Reference points a reminder at the record it is about. The zero value
// means the reminder stands on its own.
type Reference struct {
	kind ReferenceKind
	id   uuid.UUID
}

func AssignmentReference(id AssignmentID) Reference {
	return Reference{kind: ReferenceKindAssignment, id: id.UUID()}
}

func OtherReference(id uuid.UUID) Reference {
	return Reference{kind: ReferenceKindOther, id: id}
}

// NewReference rebuilds a reference from its stored kind/id pair.
func NewReference(kind string, id string) (Reference, error) {
	if kind == "" && id == "" {
		return Reference{}, nil
	}

	parsed, err := uuid.Parse(id)
	if err != nil || parsed == uuid.Nil {
		return Reference{}, fmt.Errorf("%w: id %q", ErrInvalidReference, id)
	}

	switch ReferenceKind(kind) {
	case ReferenceKindAssignment, ReferenceKindOther:
		return Reference{kind: ReferenceKind(kind), id: parsed}, nil
	default:
		return Reference{}, fmt.Errorf("%w: kind %q", ErrInvalidReference, kind)
	}
}

func (r Reference) Kind() ReferenceKind {
	return r.kind
}

func (r Reference) ID() uuid.UUID {
	return r.id
}

func (r Reference) IsZero() bool {
	return r.kind == ReferenceKindNone
}

func (r Reference) AssignmentID() (AssignmentID, bool) {
	if r.kind != ReferenceKindAssignment {
		return AssignmentID{}, false
	}

	return AssignmentID{value: r.id}, true
}

func (r Reference) String() string {
	if r.IsZero() {
		return ""
	}

	return string(r.kind) + ":" + r.id.String()
}

func (r Reference) Equals(other Reference) bool {
	return r.kind == other.kind && r.id == other.id
}
