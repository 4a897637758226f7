package match3

import "fmt"

// SwapRequest asks to exchange two grid-adjacent cells. Order does not matter.
type SwapRequest struct {
	A Position
	B Position
}

// String returns a string representation of the request.
func (s SwapRequest) String() string {
	return fmt.Sprintf("%v<->%v", s.A, s.B)
}

// SwapResult is the outcome of TrySwap.
type SwapResult struct {
	Accepted bool
	Matches  []Match
}

// ValidateSwap checks that both positions are on the grid and adjacent.
func ValidateSwap(g *Grid, req SwapRequest) error {
	if !g.InBounds(req.A) {
		return fmt.Errorf("match3: %v out of range for %dx%d grid: %w", req.A, g.W, g.H, ErrInvalidRequest)
	}
	if !g.InBounds(req.B) {
		return fmt.Errorf("match3: %v out of range for %dx%d grid: %w", req.B, g.W, g.H, ErrInvalidRequest)
	}
	if !req.A.Adjacent(req.B) {
		return fmt.Errorf("match3: %v and %v are not adjacent: %w", req.A, req.B, ErrInvalidRequest)
	}
	return nil
}

// TrySwap swaps the two cells and keeps the swap only if it creates a match.
// A rejected swap is reverted before returning, leaving g unchanged.
// Invalid requests fail with ErrInvalidRequest and never touch g.
func TrySwap(g *Grid, req SwapRequest) (SwapResult, error) {
	if err := ValidateSwap(g, req); err != nil {
		return SwapResult{}, err
	}

	g.Swap(req.A, req.B)
	matches := FindMatches(g)
	if len(matches) == 0 {
		g.Swap(req.A, req.B)
		return SwapResult{Accepted: false}, nil
	}

	return SwapResult{Accepted: true, Matches: matches}, nil
}
