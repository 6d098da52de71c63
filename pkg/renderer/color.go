package renderer

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// vec3ToColor converts an averaged linear color to 8-bit sRGB-ish output.
// Gamma 2 is applied with a square root, then channels are clamped to
// [0, 1] so that over-bright samples saturate instead of wrapping.
// NaN channels come out black.
func vec3ToColor(colorVec mgl64.Vec3) color.RGBA {
	return color.RGBA{
		R: channelToByte(colorVec[0]),
		G: channelToByte(colorVec[1]),
		B: channelToByte(colorVec[2]),
		A: 255,
	}
}

func channelToByte(c float64) uint8 {
	if math.IsNaN(c) || c <= 0 {
		return 0
	}
	c = math.Sqrt(c)
	if c > 1 {
		c = 1
	}
	return uint8(255.99 * c)
}
