package qukeys

import (
	"testing"

	"github.com/dshills/qukeys/internal/key"
)

func TestTableLookupAllLayers(t *testing.T) {
	tbl := NewTable([]Qukey{
		{Layer: AllLayers, Pos: key.NewPos(0, 0), Alternate: key.LeftShift},
		{Layer: 1, Pos: key.NewPos(0, 1), Alternate: key.LeftControl},
	})

	if got := tbl.Lookup(key.NewPos(0, 0), 0); got != 0 {
		t.Errorf("Lookup on layer 0 = %d, want 0", got)
	}
	if got := tbl.Lookup(key.NewPos(0, 0), 3); got != 0 {
		t.Errorf("all-layers qukey should match layer 3, got %d", got)
	}
}

func TestTableLookupLayerScoped(t *testing.T) {
	tbl := NewTable([]Qukey{
		{Layer: 1, Pos: key.NewPos(0, 1), Alternate: key.LeftControl},
	})

	if got := tbl.Lookup(key.NewPos(0, 1), 0); got != notFound {
		t.Errorf("layer-1 qukey matched on layer 0: %d", got)
	}
	if got := tbl.Lookup(key.NewPos(0, 1), 1); got != 0 {
		t.Errorf("Lookup on layer 1 = %d, want 0", got)
	}
}

func TestTableLookupMisses(t *testing.T) {
	tbl := NewTable([]Qukey{
		{Layer: AllLayers, Pos: key.NewPos(2, 2), Alternate: key.LeftAlt},
	})

	if got := tbl.Lookup(key.NewPos(3, 3), 0); got != notFound {
		t.Errorf("unconfigured position matched: %d", got)
	}
	if got := tbl.Lookup(key.InvalidPos, 0); got != notFound {
		t.Errorf("invalid position matched: %d", got)
	}
}

func TestTableRoles(t *testing.T) {
	tbl := NewTable([]Qukey{
		{Layer: AllLayers, Pos: key.NewPos(0, 0), Alternate: key.LeftShift},
	})

	if got := tbl.Role(0); got != RoleUndetermined {
		t.Errorf("fresh role = %s, want undetermined", got)
	}
	tbl.SetRole(0, RoleAlternate)
	if got := tbl.Role(0); got != RoleAlternate {
		t.Errorf("role = %s, want alternate", got)
	}
}

func TestTableCopiesDefs(t *testing.T) {
	defs := []Qukey{{Layer: AllLayers, Pos: key.NewPos(0, 0), Alternate: key.LeftShift}}
	tbl := NewTable(defs)
	defs[0].Alternate = key.RightGUI
	if tbl.Def(0).Alternate != key.LeftShift {
		t.Error("table should copy the definition slice")
	}
}

func TestQukeyString(t *testing.T) {
	q := Qukey{Layer: AllLayers, Pos: key.NewPos(1, 2), Alternate: key.LeftShift}
	if got := q.String(); got != "r1c2(*)->LeftShift" {
		t.Errorf("String() = %q", got)
	}
	q.Layer = 2
	if got := q.String(); got != "r1c2(L2)->LeftShift" {
		t.Errorf("String() = %q", got)
	}
}

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleUndetermined, "undetermined"},
		{RolePrimary, "primary"},
		{RoleAlternate, "alternate"},
	}
	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Errorf("Role(%d).String() = %q, want %q", tt.role, got, tt.want)
		}
	}
}
