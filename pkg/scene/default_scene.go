package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates the ground and the three large spheres, without
// the random field around them
func NewDefaultScene() *Scene {
	frame := renderer.DefaultFrameConfig()
	frame.Width = 640
	frame.Height = 400
	frame.SamplesPerPixel = 50

	hitables := []core.Hitable{newGroundSphere()}
	hitables = append(hitables, showcaseSpheres()...)

	return &Scene{
		Name:         "default",
		Hitables:     hitables,
		CameraConfig: showcaseCamera(float64(frame.Width) / float64(frame.Height)),
		Frame:        frame,
	}
}
