package apperror

import "errors"

var (
	ErrDuplicateHandle  = errors.New("connection handle already registered")
	ErrMatchFinished    = errors.New("match is already finished")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrConnectionClosed = errors.New("connection is closed")
)
