package placement

import "errors"

var (
	// ErrInvalidParams wraps every precondition violation on Params.
	ErrInvalidParams = errors.New("placement: invalid parameters")
	// ErrOutOfBounds is returned by Grid.Insert for points outside the grid.
	// The sampler treats it as a rejection.
	ErrOutOfBounds = errors.New("placement: point outside grid bounds")
	// ErrCellOccupied is returned by Grid.Insert when the cell already holds a
	// point. A separation-checked point never triggers it.
	ErrCellOccupied = errors.New("placement: grid cell already occupied")
)
