package renderer

import "errors"

var (
	ErrInvalidFrame = errors.New("renderer: invalid frame configuration")
	ErrInterrupted  = errors.New("renderer: render interrupted")
)
