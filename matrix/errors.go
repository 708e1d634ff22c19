package matrix

import "errors"

var (
	ErrIndexOutOfRange   = errors.New("matrix: index out of range")
	ErrBadShape          = errors.New("matrix: non-positive dimension not allowed")
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
	ErrLengthMismatch    = errors.New("matrix: indices and values length mismatch")
)
