package chess

import "errors"

var (
	ErrInvalidFEN   = errors.New("invalid FEN")
	ErrInvalidCoord = errors.New("invalid coordinate")
	ErrKeyFile      = errors.New("malformed position key file")
)
