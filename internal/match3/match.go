package match3

import "sort"

// MinRun is the shortest run that counts as a match.
const MinRun = 3

// Axis is the direction of a match.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// String returns the axis name.
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Match is a maximal run of at least MinRun same-colored tokens on one axis.
// Positions are ordered left to right or top to bottom.
type Match struct {
	Color     ColorID
	Axis      Axis
	Positions []Position
}

// Len returns the number of cells in the match.
func (m Match) Len() int {
	return len(m.Positions)
}

// FindMatches scans g and returns every maximal run of MinRun or more.
// Rows are scanned first, then columns. Runs crossing at a shared cell
// (L, T and plus shapes) are reported as separate matches.
func FindMatches(g *Grid) []Match {
	var matches []Match

	for r := 0; r < g.H; r++ {
		start := 0
		for c := 1; c <= g.W; c++ {
			if c < g.W && sameToken(g.ColorAt(r, c), g.ColorAt(r, start)) {
				continue
			}
			if c-start >= MinRun && g.ColorAt(r, start) != NoColor {
				m := Match{Color: g.ColorAt(r, start), Axis: Horizontal}
				for k := start; k < c; k++ {
					m.Positions = append(m.Positions, P(r, k))
				}
				matches = append(matches, m)
			}
			start = c
		}
	}

	for c := 0; c < g.W; c++ {
		start := 0
		for r := 1; r <= g.H; r++ {
			if r < g.H && sameToken(g.ColorAt(r, c), g.ColorAt(start, c)) {
				continue
			}
			if r-start >= MinRun && g.ColorAt(start, c) != NoColor {
				m := Match{Color: g.ColorAt(start, c), Axis: Vertical}
				for k := start; k < r; k++ {
					m.Positions = append(m.Positions, P(k, c))
				}
				matches = append(matches, m)
			}
			start = r
		}
	}

	return matches
}

// HasMatch reports whether g contains any run of MinRun or more.
// It stops at the first run found.
func HasMatch(g *Grid) bool {
	for r := 0; r < g.H; r++ {
		for c := 0; c+MinRun <= g.W; c++ {
			if runAt(g, r, c, 0, 1) {
				return true
			}
		}
	}
	for c := 0; c < g.W; c++ {
		for r := 0; r+MinRun <= g.H; r++ {
			if runAt(g, r, c, 1, 0) {
				return true
			}
		}
	}
	return false
}

// runAt reports whether MinRun cells starting at (r, c) along (dr, dc) share a color.
func runAt(g *Grid, r, c, dr, dc int) bool {
	first := g.ColorAt(r, c)
	if first == NoColor {
		return false
	}
	for k := 1; k < MinRun; k++ {
		if g.ColorAt(r+k*dr, c+k*dc) != first {
			return false
		}
	}
	return true
}

// sameToken compares two colors for run purposes. Empty never matches.
func sameToken(a, b ColorID) bool {
	return a != NoColor && a == b
}

// MatchedPositions returns the distinct positions covered by matches,
// in row-major order.
func MatchedPositions(matches []Match) []Position {
	seen := make(map[Position]bool)
	var out []Position
	for _, m := range matches {
		for _, p := range m.Positions {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	sortPositions(out)
	return out
}

// matchedCellCount counts each cell once per match it belongs to.
// Overlap cells of an L or T shape therefore count twice.
func matchedCellCount(matches []Match) int {
	n := 0
	for _, m := range matches {
		n += m.Len()
	}
	return n
}

func sortPositions(ps []Position) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Row != ps[j].Row {
			return ps[i].Row < ps[j].Row
		}
		return ps[i].Col < ps[j].Col
	})
}
