package scene

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	Hitables     []core.Hitable        // Objects in the scene
	CameraConfig geometry.CameraConfig // Camera used unless overridden
	Frame        renderer.FrameConfig  // Default frame parameters for this scene

	// Populated by Preprocess
	World  core.Hitable
	Camera *geometry.Camera
	BVH    *geometry.BVH // nil when built with PreprocessLinear
}

// BuildScene assembles the world over hitables and builds its BVH. The
// hitables slice is not reordered. The scene has no camera until SetCamera
// is called; built-in scenes carry their own CameraConfig instead.
func BuildScene(hitables []core.Hitable, random *rand.Rand) (*Scene, error) {
	s := &Scene{
		Hitables: hitables,
		Frame:    renderer.DefaultFrameConfig(),
	}
	if err := s.Preprocess(random); err != nil {
		return nil, err
	}
	return s, nil
}

// SetCamera replaces the camera configuration and rebuilds the camera
func (s *Scene) SetCamera(config geometry.CameraConfig) {
	s.CameraConfig = config
	s.Camera = geometry.NewCamera(config)
}

// SetResolution changes the frame size and keeps the camera aspect in step
func (s *Scene) SetResolution(width, height int) {
	s.Frame.Width = width
	s.Frame.Height = height
	if width > 0 && height > 0 {
		s.CameraConfig.AspectRatio = float64(width) / float64(height)
	}
}

// Preprocess builds the BVH over the scene's hitables and, when configured,
// the camera.
// random drives the BVH split axes.
func (s *Scene) Preprocess(random *rand.Rand) error {
	bvh, err := geometry.NewBVH(s.Hitables, random)
	if err != nil {
		return fmt.Errorf("building %q: %w", s.Name, err)
	}

	s.BVH = bvh
	s.World = bvh
	s.buildCamera()
	return nil
}

// PreprocessLinear is Preprocess without acceleration: every ray is tested
// against every hitable.
func (s *Scene) PreprocessLinear() error {
	list, err := geometry.NewHitableList(s.Hitables)
	if err != nil {
		return fmt.Errorf("building %q: %w", s.Name, err)
	}

	s.BVH = nil
	s.World = list
	s.buildCamera()
	return nil
}

// buildCamera builds the camera when one is configured
func (s *Scene) buildCamera() {
	if s.CameraConfig == (geometry.CameraConfig{}) {
		s.Camera = nil
		return
	}
	s.Camera = geometry.NewCamera(s.CameraConfig)
}

// PrimitiveCount returns the number of primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.Hitables)
}
