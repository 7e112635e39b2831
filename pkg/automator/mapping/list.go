// Package mapping implements the ordered, user-editable collection of
// column-to-cell mappings and its on-disk definition format.
//
// Every operation returns a new List and leaves the receiver untouched.
// Source and target references are opaque text and are never validated.
package mapping

import (
	"slices"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"github.com/google/uuid"
)

// Field names an editable field of a Mapping.
type Field string

const (
	// FieldSourceColumn selects Mapping.SourceColumn.
	FieldSourceColumn Field = "sourceColumn"
	// FieldTargetCell selects Mapping.TargetCell.
	FieldTargetCell Field = "targetCell"
)

// maxIDAttempts bounds calls to a caller-supplied IDGenerator before Append
// switches to NewID.
const maxIDAttempts = 8

// IDGenerator returns a fresh opaque mapping id.
type IDGenerator func() string

// NewID returns a random UUIDv4 string (122 random bits).
func NewID() string {
	return uuid.NewString()
}

// List is an ordered collection of mappings with pairwise-unique ids.
type List []models.Mapping

// Append returns a copy of l with a new empty mapping at the end, and the new
// mapping itself. Ids already present in l are never reused; a generator that
// keeps repeating taken ids is replaced by NewID.
func (l List) Append(gen IDGenerator) (List, models.Mapping) {
	if gen == nil {
		gen = NewID
	}

	id := gen()
	for attempt := 1; id == "" || l.Contains(id); attempt++ {
		if attempt >= maxIDAttempts {
			gen = NewID
		}
		id = gen()
	}

	m := models.Mapping{ID: id}
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	return append(out, m), m
}

// Remove returns a copy of l without the mapping identified by id.
// An unknown id leaves the contents unchanged.
func (l List) Remove(id string) List {
	out := make(List, 0, len(l))
	for _, m := range l {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return out
}

// Update returns a copy of l with the named field of the mapping identified by
// id set to value. An unknown id or field leaves the contents unchanged.
func (l List) Update(id string, field Field, value string) List {
	out := slices.Clone(l)
	if out == nil {
		out = List{}
	}
	for i := range out {
		if out[i].ID != id {
			continue
		}
		switch field {
		case FieldSourceColumn:
			out[i].SourceColumn = value
		case FieldTargetCell:
			out[i].TargetCell = value
		}
	}
	return out
}

// Contains reports whether a mapping with the given id exists.
func (l List) Contains(id string) bool {
	return slices.ContainsFunc(l, func(m models.Mapping) bool { return m.ID == id })
}

// Find returns the mapping with the given id.
func (l List) Find(id string) (models.Mapping, bool) {
	i := slices.IndexFunc(l, func(m models.Mapping) bool { return m.ID == id })
	if i < 0 {
		return models.Mapping{}, false
	}
	return l[i], true
}

// ParseField maps user input ("source", "sourceColumn", "target", ...) to a Field.
func ParseField(s string) (Field, bool) {
	switch s {
	case "source", "sourceColumn", "source_column":
		return FieldSourceColumn, true
	case "target", "targetCell", "target_cell":
		return FieldTargetCell, true
	}
	return "", false
}
