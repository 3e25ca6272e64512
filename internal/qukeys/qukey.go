package qukeys

import (
	"fmt"

	"github.com/dshills/qukeys/internal/key"
)

// AllLayers makes a qukey definition apply regardless of the active layer.
const AllLayers int8 = -1

// Qukey assigns an alternate keycode to a key position, optionally scoped
// to a single layer. Immutable after the table is built.
type Qukey struct {
	// Layer the definition applies on, or AllLayers.
	Layer int8

	// Pos is the physical key position.
	Pos key.Pos

	// Alternate is the hold-role keycode. The tap role is whatever the
	// layer maps the position to.
	Alternate key.Code
}

// String returns a readable form for logs.
func (q Qukey) String() string {
	if q.Layer == AllLayers {
		return fmt.Sprintf("%s(*)->%s", q.Pos, q.Alternate)
	}
	return fmt.Sprintf("%s(L%d)->%s", q.Pos, q.Layer, q.Alternate)
}

// Role is the resolved meaning of a qukey press.
type Role uint8

const (
	// RoleUndetermined means the press is still queued and undecided.
	RoleUndetermined Role = iota
	// RolePrimary is the tap meaning: the layer-mapped keycode.
	RolePrimary
	// RoleAlternate is the hold meaning: the definition's alternate keycode.
	RoleAlternate
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleAlternate:
		return "alternate"
	default:
		return "undetermined"
	}
}

// notFound is the sentinel index for table and queue misses.
const notFound = -1

// Table is the static qukey definition list plus each definition's current
// resolved role. The definitions never change after Build; the roles do.
type Table struct {
	defs  []Qukey
	roles []Role
}

// NewTable builds a table from a definition list. The list is copied.
func NewTable(defs []Qukey) *Table {
	t := &Table{
		defs:  make([]Qukey, len(defs)),
		roles: make([]Role, len(defs)),
	}
	copy(t.defs, defs)
	return t
}

// Len returns the number of definitions.
func (t *Table) Len() int {
	return len(t.defs)
}

// Def returns the definition at index i.
func (t *Table) Def(i int) Qukey {
	return t.defs[i]
}

// Lookup returns the index of the definition covering pos on the given
// active layer, or notFound. Linear scan; tables are small and fixed.
func (t *Table) Lookup(pos key.Pos, activeLayer int) int {
	if pos == key.InvalidPos {
		return notFound
	}
	for i, q := range t.defs {
		if q.Pos != pos {
			continue
		}
		if q.Layer == AllLayers || int(q.Layer) == activeLayer {
			return i
		}
	}
	return notFound
}

// Role returns the resolved role of definition i.
func (t *Table) Role(i int) Role {
	return t.roles[i]
}

// SetRole records the resolved role of definition i.
func (t *Table) SetRole(i int, r Role) {
	t.roles[i] = r
}
