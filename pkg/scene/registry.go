package scene

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// Builder creates a fresh, unprocessed scene. Builders that place objects
// at random draw from random.
type Builder func(random *rand.Rand) *Scene

// SceneInfo describes a registered scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name used on the command line and in the API
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"`
}

type entry struct {
	info  SceneInfo
	build Builder
}

var registry = map[string]entry{}

func register(id, description string, build Builder) {
	registry[id] = entry{
		info: SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: description,
		},
		build: build,
	}
}

func init() {
	register("random-spheres", "Hundreds of small random spheres around glass, diffuse and mirror spheres",
		NewRandomSpheresScene)
	register("default", "Glass, diffuse and mirror spheres on a gray ground",
		func(*rand.Rand) *Scene { return NewDefaultScene() })
	register("ground", "A single gray ground sphere under the sky",
		func(*rand.Rand) *Scene { return NewGroundScene() })
	register("sphere-grid", "Grid of 400 fuzzy metal spheres in OKLCH colors",
		func(*rand.Rand) *Scene { return NewSphereGridScene(20) })
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns metadata for every registered scene, sorted by name
func Describe() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, name := range Names() {
		infos = append(infos, registry[name].info)
	}
	return infos
}

// Lookup returns the builder registered under name
func Lookup(name string) (Builder, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return e.build, nil
}

// titleCase turns an id like "random-spheres" into "Random Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
