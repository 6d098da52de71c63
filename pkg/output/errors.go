package output

import "errors"

var (
	ErrUnsupportedFormat = errors.New("output: unsupported image format")
	ErrNoUploader        = errors.New("output: no upload bucket configured")
)
