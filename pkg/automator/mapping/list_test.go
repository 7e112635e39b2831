package mapping

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/SergiySvirkov/excel-pdf-automator/pkg/automator/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequence(ids ...string) IDGenerator {
	i := 0
	return func() string {
		id := ids[i%len(ids)]
		i++
		return id
	}
}

func TestAppend(t *testing.T) {
	base := DefaultList()

	got, m := base.Append(sequence("new"))

	require.Len(t, got, 3)
	assert.Equal(t, models.Mapping{ID: "new"}, m)
	assert.Equal(t, m, got[2])
	assert.Len(t, base, 2, "receiver must not change")
}

func TestAppendSkipsCollidingIDs(t *testing.T) {
	base := DefaultList()

	got, m := base.Append(sequence("1", "", "2", "3"))

	assert.Equal(t, "3", m.ID)
	assert.Equal(t, []string{"1", "2", "3"}, ids(got))
}

func TestAppendStuckGeneratorFallsBackToNewID(t *testing.T) {
	base := DefaultList()
	calls := 0
	stuck := func() string {
		calls++
		return "1"
	}

	got, m := base.Append(stuck)

	require.Len(t, got, 3)
	assert.NotEqual(t, "1", m.ID)
	assert.NotEmpty(t, m.ID)
	assert.Equal(t, maxIDAttempts, calls)
	assertUnique(t, got)
}

func TestAppendDefaultGenerator(t *testing.T) {
	var l List
	for i := 0; i < 50; i++ {
		l, _ = l.Append(nil)
	}
	assertUnique(t, l)
}

func TestRemove(t *testing.T) {
	base := List{{ID: "a"}, {ID: "b", SourceColumn: "B"}, {ID: "c"}}

	got := base.Remove("b")

	assert.Equal(t, []string{"a", "c"}, ids(got))
	assert.Equal(t, []string{"a", "b", "c"}, ids(base))
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	base := DefaultList()

	assert.Equal(t, base, base.Remove("missing"))
}

func TestUpdate(t *testing.T) {
	base := DefaultList()

	tests := []struct {
		name     string
		id       string
		field    Field
		value    string
		expected List
	}{
		{
			name:  "source column",
			id:    "1",
			field: FieldSourceColumn,
			value: "D",
			expected: List{
				{ID: "1", SourceColumn: "D", TargetCell: "C5"},
				{ID: "2", SourceColumn: "C", TargetCell: "C6"},
			},
		},
		{
			name:  "target cell accepts malformed reference",
			id:    "2",
			field: FieldTargetCell,
			value: "not a cell!",
			expected: List{
				{ID: "1", SourceColumn: "B", TargetCell: "C5"},
				{ID: "2", SourceColumn: "C", TargetCell: "not a cell!"},
			},
		},
		{name: "unknown id", id: "9", field: FieldTargetCell, value: "Z9", expected: DefaultList()},
		{name: "unknown field", id: "1", field: Field("id"), value: "x", expected: DefaultList()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, base.Update(tt.id, tt.field, tt.value))
			assert.Equal(t, DefaultList(), base, "receiver must not change")
		})
	}
}

func TestRandomOperationsKeepIDsUniqueAndOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	counter := 0
	gen := func() string {
		counter++
		// Deliberately collide every third id with an earlier one.
		if counter%3 == 0 {
			return fmt.Sprintf("id-%d", counter/3)
		}
		return fmt.Sprintf("id-%d", counter)
	}

	l := DefaultList()
	for step := 0; step < 500; step++ {
		before := l
		switch rng.Intn(3) {
		case 0:
			l, _ = l.Append(gen)
		case 1:
			if len(l) > 0 {
				victim := l[rng.Intn(len(l))].ID
				l = l.Remove(victim)
				assert.Equal(t, without(ids(before), victim), ids(l))
			}
		case 2:
			if len(l) > 0 {
				target := l[rng.Intn(len(l))].ID
				l = l.Update(target, FieldTargetCell, fmt.Sprintf("C%d", step))
				assert.Equal(t, ids(before), ids(l))
			}
		}
		assertUnique(t, l)
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		input    string
		expected Field
		ok       bool
	}{
		{"source", FieldSourceColumn, true},
		{"sourceColumn", FieldSourceColumn, true},
		{"target_cell", FieldTargetCell, true},
		{"target", FieldTargetCell, true},
		{"id", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseField(tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
		assert.Equal(t, tt.ok, ok, tt.input)
	}
}

func ids(l List) []string {
	out := make([]string, 0, len(l))
	for _, m := range l {
		out = append(out, m.ID)
	}
	return out
}

func without(list []string, drop string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}

func assertUnique(t *testing.T, l List) {
	t.Helper()
	seen := make(map[string]bool, len(l))
	for _, m := range l {
		require.False(t, seen[m.ID], "duplicate id %q", m.ID)
		seen[m.ID] = true
	}
}
