package match3

import "errors"

var (
	// ErrInvalidRequest is returned for out-of-range or non-adjacent swaps.
	// The grid is left untouched.
	ErrInvalidRequest = errors.New("invalid swap request")

	// ErrInconsistentGrid signals a broken internal invariant after a cascade.
	// It indicates a bug, not a recoverable runtime condition.
	ErrInconsistentGrid = errors.New("inconsistent grid")

	// ErrPaletteTooSmall is returned when fewer than MinColors colors are configured.
	ErrPaletteTooSmall = errors.New("palette too small")

	// ErrInvalidSize is returned for grids smaller than 3x3 or with mismatched dimensions.
	ErrInvalidSize = errors.New("invalid grid size")

	// ErrNoMoves is returned when a swap is requested while the engine waits
	// for a reshuffle.
	ErrNoMoves = errors.New("no valid moves")
)
