package match3

// HasValidMove reports whether any single adjacent swap on g would create a match.
func HasValidMove(g *Grid) bool {
	_, ok := FindValidMove(g)
	return ok
}

// FindValidMove returns the first adjacent swap that creates a match.
// Horizontal pairs are tried row by row, then vertical pairs. Each candidate
// is swapped in place, checked and reverted, so g is unchanged on return.
func FindValidMove(g *Grid) (SwapRequest, bool) {
	for r := 0; r < g.H; r++ {
		for c := 0; c+1 < g.W; c++ {
			if req := (SwapRequest{A: P(r, c), B: P(r, c+1)}); swapMatches(g, req) {
				return req, true
			}
		}
	}
	for r := 0; r+1 < g.H; r++ {
		for c := 0; c < g.W; c++ {
			if req := (SwapRequest{A: P(r, c), B: P(r+1, c)}); swapMatches(g, req) {
				return req, true
			}
		}
	}
	return SwapRequest{}, false
}

// swapMatches performs a trial swap and always reverts it.
func swapMatches(g *Grid, req SwapRequest) bool {
	g.Swap(req.A, req.B)
	found := HasMatch(g)
	g.Swap(req.A, req.B)
	return found
}
