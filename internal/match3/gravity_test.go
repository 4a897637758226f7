package match3

import "testing"

func TestApplyGravityPreservesOrderAndIDs(t *testing.T) {
	// Single column, top to bottom: [E, T1, E, T2]
	g := MustParseGrid(".", "R", ".", "G")
	t1 := g.At(P(1, 0))
	t2 := g.At(P(3, 0))

	drops := ApplyGravity(g)

	if got := g.String(); got != ".\n.\nR\nG" {
		t.Errorf("after gravity got\n%s\nwant\n.\n.\nR\nG", got)
	}
	if g.At(P(2, 0)) != t1 {
		t.Errorf("T1 should land on row 2 with its ID, got %+v", g.At(P(2, 0)))
	}
	if g.At(P(3, 0)) != t2 {
		t.Errorf("T2 should stay on row 3, got %+v", g.At(P(3, 0)))
	}

	if len(drops) != 1 {
		t.Fatalf("expected 1 drop, got %d", len(drops))
	}
	want := Drop{ID: t1.ID, From: P(1, 0), To: P(2, 0)}
	if drops[0] != want {
		t.Errorf("drop = %+v, want %+v", drops[0], want)
	}
}

func TestApplyGravityColumnsIndependent(t *testing.T) {
	g := MustParseGrid(
		"RGB",
		".Y.",
		"P..",
		"..O",
	)

	ApplyGravity(g)

	expected := "...\n...\nRGB\nPYO"
	if got := g.String(); got != expected {
		t.Errorf("after gravity got\n%s\nwant\n%s", got, expected)
	}
}

func TestApplyGravityFullGridNoop(t *testing.T) {
	g := MustParseGrid("RGB", "GBR", "BRG")
	before := g.Clone()

	if drops := ApplyGravity(g); len(drops) != 0 {
		t.Errorf("full grid should not drop, got %d drops", len(drops))
	}
	if !g.Equal(before) {
		t.Error("full grid changed under gravity")
	}
}

func TestRefillFillsEveryEmptyCell(t *testing.T) {
	g := MustParseGrid(
		"....",
		"R...",
		"GB..",
		"RGBY",
	)
	p, err := NewPicker(6, NewSource(7))
	if err != nil {
		t.Fatalf("NewPicker() failed: %v", err)
	}
	maxID := TokenID(0)
	for _, c := range g.Cells {
		if c.ID > maxID {
			maxID = c.ID
		}
	}

	spawned := Refill(g, p)

	if len(spawned) != 9 {
		t.Errorf("spawned %d cells, want 9", len(spawned))
	}
	if g.EmptyCount() != 0 {
		t.Errorf("%d cells still empty after refill", g.EmptyCount())
	}
	if HasMatch(g) {
		t.Errorf("refill created a run:\n%s", g)
	}

	// Columns fill bottom-up, left to right
	if spawned[0] != P(0, 0) || spawned[1] != P(1, 1) || spawned[2] != P(0, 1) {
		t.Errorf("unexpected fill order: %v", spawned[:3])
	}

	// New tokens get fresh, increasing IDs
	last := maxID
	for _, pos := range spawned {
		id := g.At(pos).ID
		if id <= last {
			t.Errorf("token at %v has ID %d, want > %d", pos, id, last)
		}
		last = id
	}
}
