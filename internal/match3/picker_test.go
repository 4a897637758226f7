package match3

import (
	"errors"
	"testing"
)

// scriptedSource replays a fixed sequence of draws, wrapping around.
type scriptedSource struct {
	draws []int
	pos   int
}

func (s *scriptedSource) Intn(n int) int {
	v := s.draws[s.pos%len(s.draws)] % n
	s.pos++
	return v
}

func TestNewPickerRejectsSmallPalette(t *testing.T) {
	if _, err := NewPicker(2, nil); !errors.Is(err, ErrPaletteTooSmall) {
		t.Errorf("NewPicker(2) err = %v, want ErrPaletteTooSmall", err)
	}
	if _, err := NewPicker(MaxColors+1, nil); !errors.Is(err, ErrPaletteTooSmall) {
		t.Errorf("NewPicker(%d) err = %v, want ErrPaletteTooSmall", MaxColors+1, err)
	}
}

func TestPickColorRejectsCompletingColor(t *testing.T) {
	// Two reds to the left: red must be re-drawn.
	g := MustParseGrid("RR.", "GBG")
	src := &scriptedSource{draws: []int{0, 0, 2}} // R, R, B
	p, err := NewPicker(3, src)
	if err != nil {
		t.Fatalf("NewPicker() failed: %v", err)
	}

	if got := p.PickColor(g, 0, 2); got != 3 {
		t.Errorf("PickColor() = %c, want B", got.Letter())
	}
}

func TestPickColorChecksBothSides(t *testing.T) {
	// Red on each side of the gap would make R R R.
	g := MustParseGrid("R.R", "GBG")
	src := &scriptedSource{draws: []int{0, 1}}
	p, _ := NewPicker(3, src)

	if got := p.PickColor(g, 0, 1); got == 1 {
		t.Errorf("PickColor() chose R between two reds")
	}
}

func TestPickColorFallsBackAfterCap(t *testing.T) {
	// The source always proposes red, which is forbidden.
	g := MustParseGrid("RR.")
	src := &scriptedSource{draws: []int{0}}
	p, _ := NewPicker(3, src)

	got := p.PickColor(g, 0, 2)
	if got == 1 {
		t.Error("PickColor() should fall back to an allowed color")
	}
}

func TestPickColorRelaxesWhenBothSidesBlocked(t *testing.T) {
	// Three colors, each forbidden by some neighbor pair:
	// left RR forbids R, right GG forbids G, above BB forbids B.
	g := MustParseGrid(
		"..B...",
		"..B...",
		"RR.GG.",
	)
	p, _ := NewPicker(3, NewSource(3))

	got := p.PickColor(g, 2, 2)
	// Only left and above count now: R and B stay forbidden, G is allowed.
	if got != 2 {
		t.Errorf("PickColor() = %c, want G", got.Letter())
	}
}

func TestNewGridHasNoMatches(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		g, err := NewGrid(8, 8, 6, seed)
		if err != nil {
			t.Fatalf("NewGrid() failed: %v", err)
		}
		if HasMatch(g) {
			t.Fatalf("seed %d produced a run:\n%s", seed, g)
		}
		if g.EmptyCount() != 0 {
			t.Fatalf("seed %d left %d empty cells", seed, g.EmptyCount())
		}
	}
}

func TestNewGridSmallPalette(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		g, err := NewGrid(6, 6, 3, seed)
		if err != nil {
			t.Fatalf("NewGrid() failed: %v", err)
		}
		if HasMatch(g) {
			t.Fatalf("seed %d produced a run with 3 colors:\n%s", seed, g)
		}
	}
}

func TestNewGridDeterministic(t *testing.T) {
	a, _ := NewGrid(8, 8, 6, 42)
	b, _ := NewGrid(8, 8, 6, 42)

	if !a.Equal(b) {
		t.Errorf("same seed should produce the same grid:\n%s\nvs\n%s", a, b)
	}
}

func TestNewGridRejectsBadConfig(t *testing.T) {
	if _, err := NewGrid(2, 8, 6, 1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("NewGrid(2x8) err = %v, want ErrInvalidSize", err)
	}
	if _, err := NewGrid(8, 8, 2, 1); !errors.Is(err, ErrPaletteTooSmall) {
		t.Errorf("NewGrid(2 colors) err = %v, want ErrPaletteTooSmall", err)
	}
}
