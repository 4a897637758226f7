// Package match3 implements the match-cascade engine behind Crystal Match.
// It is a pure, deterministic grid-state machine: it validates swaps, finds
// runs, resolves chained removals under gravity, refills the grid and scores
// combos. It has no timers and no rendering; callers play back the returned
// cascade steps at their own pace.
package match3

import (
	"fmt"
	"strings"
)

// ColorID identifies a token color. Zero is reserved for empty cells.
type ColorID uint8

// NoColor marks an empty cell. No real token has it.
const NoColor ColorID = 0

// MaxColors is the largest palette the engine accepts.
const MaxColors = 8

// colorLetters maps colors to the letters used by ParseGrid and String.
const colorLetters = ".RGBYPOCW"

// Letter returns the single-letter name of the color ('.' for empty).
func (c ColorID) Letter() byte {
	if int(c) >= len(colorLetters) {
		return '?'
	}
	return colorLetters[c]
}

// TokenID identifies a token for the lifetime of a grid.
// It only lets renderers animate a specific token; it never affects matching.
type TokenID uint32

// Cell is a single grid slot. A cell with NoColor is empty.
type Cell struct {
	Color ColorID
	ID    TokenID
}

// IsEmpty reports whether the cell holds no token.
func (c Cell) IsEmpty() bool {
	return c.Color == NoColor
}

// Position addresses a cell. Row 0 is the top row.
type Position struct {
	Row int
	Col int
}

// P is a convenience constructor for Position.
func P(row, col int) Position {
	return Position{Row: row, Col: col}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	dr := p.Row - other.Row
	dc := p.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr + dc
}

// Adjacent reports whether two positions share an edge.
func (p Position) Adjacent(other Position) bool {
	return p.Manhattan(other) == 1
}

// Grid is the token board. Cells are stored row-major: index = row*W + col.
type Grid struct {
	W     int
	H     int
	Cells []Cell

	nextID TokenID
}

// NewEmptyGrid creates a grid with every cell empty.
func NewEmptyGrid(w, h int) *Grid {
	return &Grid{
		W:      w,
		H:      h,
		Cells:  make([]Cell, w*h),
		nextID: 1,
	}
}

func (g *Grid) index(p Position) int {
	return p.Row*g.W + p.Col
}

// InBounds returns true if the position lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.H && p.Col >= 0 && p.Col < g.W
}

// At returns the cell at p. Out-of-bounds positions read as empty.
func (g *Grid) At(p Position) Cell {
	if !g.InBounds(p) {
		return Cell{}
	}
	return g.Cells[g.index(p)]
}

// ColorAt returns the color at (row, col), or NoColor when out of bounds or empty.
func (g *Grid) ColorAt(row, col int) ColorID {
	return g.At(Position{Row: row, Col: col}).Color
}

// Set stores a cell at p. Out-of-bounds positions are ignored.
func (g *Grid) Set(p Position, c Cell) {
	if g.InBounds(p) {
		g.Cells[g.index(p)] = c
	}
}

// Clear empties the cell at p.
func (g *Grid) Clear(p Position) {
	g.Set(p, Cell{})
}

// Swap exchanges the contents of two cells. Both positions must be in bounds.
func (g *Grid) Swap(a, b Position) {
	ia, ib := g.index(a), g.index(b)
	g.Cells[ia], g.Cells[ib] = g.Cells[ib], g.Cells[ia]
}

// Spawn places a brand-new token of the given color at p and returns it.
func (g *Grid) Spawn(p Position, color ColorID) Cell {
	if g.nextID == 0 {
		g.nextID = 1
	}
	c := Cell{Color: color, ID: g.nextID}
	g.nextID++
	g.Set(p, c)
	return c
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.IsEmpty() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid, including its ID counter.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:      g.W,
		H:      g.H,
		Cells:  cells,
		nextID: g.nextID,
	}
}

// Equal returns true if two grids have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, c := range g.Cells {
		if c != other.Cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid as rows of color letters, one row per line.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.W + 1) * g.H)
	for r := 0; r < g.H; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.W; c++ {
			sb.WriteByte(g.ColorAt(r, c).Letter())
		}
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of color letters (see ColorID.Letter).
// '.' denotes an empty cell. Tokens receive IDs in row-major order.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("match3: parse grid: %w", ErrInvalidSize)
	}
	g := NewEmptyGrid(len(rows[0]), len(rows))
	for r, row := range rows {
		if len(row) != g.W {
			return nil, fmt.Errorf("match3: parse grid: row %d has width %d, want %d", r, len(row), g.W)
		}
		for c := 0; c < len(row); c++ {
			idx := strings.IndexByte(colorLetters, row[c])
			if idx < 0 {
				return nil, fmt.Errorf("match3: parse grid: unknown color %q at %v", row[c], P(r, c))
			}
			if idx == 0 {
				continue
			}
			g.Spawn(P(r, c), ColorID(idx))
		}
	}
	return g, nil
}

// MustParseGrid is like ParseGrid but panics on error. Intended for fixtures.
func MustParseGrid(rows ...string) *Grid {
	g, err := ParseGrid(rows...)
	if err != nil {
		panic(err)
	}
	return g
}
