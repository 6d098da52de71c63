package geometry

import "errors"

var (
	ErrInvalidScene = errors.New("geometry: scene requires at least one primitive")
)
