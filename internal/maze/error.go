package maze

import "errors"

// AssertionError reports a broken internal invariant. Correct generator and
// solver code never produces one; seeing it means a caller bug upstream.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

var (
	ErrSameCell    = AssertionError{"no direction between a cell and itself"}
	ErrNotAdjacent = AssertionError{"cells do not share a wall"}
)

var (
	ErrInvalidDimension   = errors.New("invalid maze dimension")
	ErrOutOfBounds        = errors.New("point is out of bounds")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrGenerationStarted  = errors.New("generation already started")
)
