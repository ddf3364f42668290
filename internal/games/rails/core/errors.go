package core

import "errors"

// Command errors. Callers match them with errors.Is.
var (
	ErrInvalidPlacement   = errors.New("invalid placement")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrUnreachable        = errors.New("no path between cells")
	ErrJunction           = errors.New("rail would form a junction")
	ErrOccupied           = errors.New("cell already has a train")
	ErrOutOfBounds        = errors.New("cell out of bounds")
	ErrUnknownStation     = errors.New("unknown station")
	ErrUnknownTrain       = errors.New("unknown train")
	ErrMaxWagons          = errors.New("train has maximum wagons")
	ErrGameOver           = errors.New("game is over")
)
