package match3

import (
	"errors"
	"testing"
)

func TestParseGridRoundTrip(t *testing.T) {
	g, err := ParseGrid("RG.", "BYP")
	if err != nil {
		t.Fatalf("ParseGrid() failed: %v", err)
	}

	if g.W != 3 || g.H != 2 {
		t.Errorf("expected 3x2 grid, got %dx%d", g.W, g.H)
	}
	if got := g.String(); got != "RG.\nBYP" {
		t.Errorf("String() = %q, want %q", got, "RG.\nBYP")
	}
	if g.EmptyCount() != 1 {
		t.Errorf("EmptyCount() = %d, want 1", g.EmptyCount())
	}

	// IDs are assigned row-major and skip empty cells
	if id := g.At(P(1, 0)).ID; id != 3 {
		t.Errorf("ID at (1,0) = %d, want 3", id)
	}
}

func TestParseGridErrors(t *testing.T) {
	if _, err := ParseGrid(); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("ParseGrid() with no rows: err = %v, want ErrInvalidSize", err)
	}
	if _, err := ParseGrid("RG", "R"); err == nil {
		t.Error("ParseGrid() should reject ragged rows")
	}
	if _, err := ParseGrid("RZ"); err == nil {
		t.Error("ParseGrid() should reject unknown colors")
	}
}

func TestGridBounds(t *testing.T) {
	g := NewEmptyGrid(4, 3)

	tests := []struct {
		pos      Position
		expected bool
	}{
		{P(0, 0), true},
		{P(2, 3), true},
		{P(3, 0), false},
		{P(0, 4), false},
		{P(-1, 0), false},
	}

	for _, tc := range tests {
		if got := g.InBounds(tc.pos); got != tc.expected {
			t.Errorf("InBounds(%v) = %v, want %v", tc.pos, got, tc.expected)
		}
	}

	if !g.At(P(9, 9)).IsEmpty() {
		t.Error("out-of-bounds At should read as empty")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := MustParseGrid("RGB", "GBR")
	c := g.Clone()

	c.Swap(P(0, 0), P(0, 1))

	if g.Equal(c) {
		t.Error("mutating a clone should not affect the original")
	}
	if g.String() != "RGB\nGBR" {
		t.Errorf("original changed: %q", g.String())
	}

	// New tokens continue the original ID sequence
	c.Clear(P(0, 0))
	spawned := c.Spawn(P(0, 0), 1)
	if spawned.ID != 7 {
		t.Errorf("spawned ID = %d, want 7", spawned.ID)
	}
}

func TestPositionAdjacent(t *testing.T) {
	tests := []struct {
		a, b     Position
		expected bool
	}{
		{P(0, 0), P(0, 1), true},
		{P(0, 0), P(1, 0), true},
		{P(0, 0), P(1, 1), false},
		{P(0, 0), P(0, 0), false},
		{P(2, 2), P(2, 4), false},
	}

	for _, tc := range tests {
		if got := tc.a.Adjacent(tc.b); got != tc.expected {
			t.Errorf("%v.Adjacent(%v) = %v, want %v", tc.a, tc.b, got, tc.expected)
		}
	}
}
