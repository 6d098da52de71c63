package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Format is an image encoding
type Format int

const (
	FormatPNG Format = iota
	FormatPPM
)

// ParseFormat maps a format name ("png", "ppm") to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "ppm":
		return FormatPPM, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

func (f Format) String() string {
	if f == FormatPPM {
		return "ppm"
	}
	return "png"
}

// ContentType returns the MIME type of the encoding
func (f Format) ContentType() string {
	if f == FormatPPM {
		return "image/x-portable-pixmap"
	}
	return "image/png"
}

// Encode writes img to w in format f
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatPPM:
		return WritePPM(w, img)
	}
	return fmt.Errorf("%w: %d", ErrUnsupportedFormat, int(f))
}

// EncodeBytes encodes img into memory, for upload or HTTP responses
func EncodeBytes(img image.Image, f Format) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveImage writes img to path, creating parent directories as needed.
// The format follows the file extension.
func SaveImage(path string, img image.Image) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := Encode(file, img, f); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}
