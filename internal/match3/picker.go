package match3

import (
	"fmt"
	"math/rand"
)

// MinColors is the smallest palette that always admits a non-matching color.
const MinColors = 3

// maxPickAttempts caps rejection sampling before the picker falls back to
// enumerating the allowed colors.
const maxPickAttempts = 16

// ColorSource is the slice of a random generator the engine needs.
// *rand.Rand satisfies it; tests may inject a scripted source.
type ColorSource interface {
	Intn(n int) int
}

// NewSource returns a seeded ColorSource.
func NewSource(seed int64) ColorSource {
	return rand.New(rand.NewSource(seed))
}

// Picker chooses colors for new tokens so that placing them does not
// complete a run with the tokens already on the grid.
type Picker struct {
	colors int
	src    ColorSource
}

// NewPicker creates a picker over colors 1..colors.
func NewPicker(colors int, src ColorSource) (*Picker, error) {
	if colors < MinColors || colors > MaxColors {
		return nil, fmt.Errorf("match3: %d colors (want %d..%d): %w", colors, MinColors, MaxColors, ErrPaletteTooSmall)
	}
	if src == nil {
		src = NewSource(1)
	}
	return &Picker{colors: colors, src: src}, nil
}

// PickColor chooses a color for the empty cell at (row, col).
//
// Colors are drawn uniformly and re-drawn when they would complete a run of
// MinRun through (row, col) with already-placed neighbors on either side.
// Empty neighbors never count. If no color survives that check the picker
// only considers neighbors to the left and above, which always leaves at
// least one color for a palette of MinColors or more.
func (p *Picker) PickColor(g *Grid, row, col int) ColorID {
	for range maxPickAttempts {
		c := ColorID(p.src.Intn(p.colors) + 1)
		if !completesRun(g, row, col, c, true) {
			return c
		}
	}

	if allowed := p.allowed(g, row, col, true); len(allowed) > 0 {
		return allowed[p.src.Intn(len(allowed))]
	}
	allowed := p.allowed(g, row, col, false)
	if len(allowed) == 0 {
		// Unreachable with MinColors colors: left and above forbid two at most.
		return ColorID(p.src.Intn(p.colors) + 1)
	}
	return allowed[p.src.Intn(len(allowed))]
}

func (p *Picker) allowed(g *Grid, row, col int, bothSides bool) []ColorID {
	out := make([]ColorID, 0, p.colors)
	for c := 1; c <= p.colors; c++ {
		if !completesRun(g, row, col, ColorID(c), bothSides) {
			out = append(out, ColorID(c))
		}
	}
	return out
}

// completesRun reports whether a token of color c at (row, col) would sit in
// a run of MinRun or more. With bothSides false only left and upper
// neighbors are considered.
func completesRun(g *Grid, row, col int, c ColorID, bothSides bool) bool {
	h := 1 + runLength(g, row, col, 0, -1, c)
	v := 1 + runLength(g, row, col, -1, 0, c)
	if bothSides {
		h += runLength(g, row, col, 0, 1, c)
		v += runLength(g, row, col, 1, 0, c)
	}
	return h >= MinRun || v >= MinRun
}

// runLength counts consecutive cells of color c starting next to (row, col)
// and walking along (dr, dc).
func runLength(g *Grid, row, col, dr, dc int, c ColorID) int {
	n := 0
	for r, k := row+dr, col+dc; g.ColorAt(r, k) == c; r, k = r+dr, k+dc {
		n++
	}
	return n
}
