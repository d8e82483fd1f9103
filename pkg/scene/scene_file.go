package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// Camera types accepted in scene files
const (
	CameraPinhole      = "pinhole"
	CameraOrthographic = "orthographic"
)

// File is the JSON form of a scene
type File struct {
	Name            string            `json:"name"`
	Description     string            `json:"description,omitempty"`
	Shading         Shading           `json:"shading"`
	Width           int               `json:"width,omitempty"`
	Height          int               `json:"height,omitempty"`
	Samples         int               `json:"samples,omitempty"`
	MaxDepth        *int              `json:"maxDepth,omitempty"` // nil keeps the default; 0 is a valid bound
	Seed            int64             `json:"seed,omitempty"`
	RussianRoulette bool              `json:"rr,omitempty"`
	RRMinBounces    *int              `json:"rrMinBounces,omitempty"`
	Camera          CameraFile        `json:"camera"`
	Background      core.Vec3         `json:"background"`
	LightDirection  *core.Vec3        `json:"lightDirection,omitempty"`
	Spheres         []geometry.Sphere `json:"spheres"`
}

// CameraFile is the JSON form of a camera
type CameraFile struct {
	Type          string    `json:"type"`
	Origin        core.Vec3 `json:"origin"`
	Direction     core.Vec3 `json:"direction"`
	Up            core.Vec3 `json:"up"`
	FocalDistance float64   `json:"focalDistance,omitempty"`
}

// LoadFile reads and validates a JSON scene file
func LoadFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, err)
	}
	if f.Name == "" {
		f.Name = nameFromPath(path)
	}

	s, err := f.Build()
	if err != nil {
		return nil, fmt.Errorf("invalid scene file %s: %w", path, err)
	}
	return s, nil
}

// Build converts the file form into a render-ready scene, applying defaults
func (f *File) Build() (*Scene, error) {
	if len(f.Spheres) == 0 {
		return nil, errors.New("scene has no spheres")
	}
	for i, s := range f.Spheres {
		if s.Radius <= 0 {
			return nil, fmt.Errorf("sphere %d: radius must be positive, got %g", i, s.Radius)
		}
	}

	config := DefaultSamplingConfig()
	if f.Width > 0 {
		config.Width = f.Width
	}
	if f.Height > 0 {
		config.Height = f.Height
	}
	if f.Samples > 0 {
		config.SamplesPerPixel = f.Samples
	}
	if f.MaxDepth != nil {
		if *f.MaxDepth < 0 {
			return nil, fmt.Errorf("maxDepth must not be negative, got %d", *f.MaxDepth)
		}
		config.MaxDepth = *f.MaxDepth
	}
	if f.RRMinBounces != nil {
		config.RussianRouletteMinBounces = *f.RRMinBounces
	}
	config.Seed = f.Seed
	config.RussianRoulette = f.RussianRoulette

	s := &Scene{
		Name:           f.Name,
		Shading:        f.Shading,
		Spheres:        append([]geometry.Sphere(nil), f.Spheres...),
		Background:     f.Background,
		SamplingConfig: config,
	}

	switch f.Shading {
	case ShadingPath, ShadingFlat:
	case ShadingDiffuse:
		if f.LightDirection == nil {
			return nil, errors.New("diffuse shading needs a lightDirection")
		}
		s.LightDirection = f.LightDirection.Normalize()
	case "":
		s.Shading = ShadingPath
	default:
		return nil, fmt.Errorf("unknown shading %q", f.Shading)
	}

	camera, err := f.Camera.build()
	if err != nil {
		return nil, err
	}
	s.Camera = camera

	return s, nil
}

func (c CameraFile) build() (core.Camera, error) {
	if c.Direction == (core.Vec3{}) {
		return nil, errors.New("camera direction must be non-zero")
	}

	switch c.Type {
	case CameraPinhole, "":
		if c.Up == (core.Vec3{}) {
			return nil, errors.New("pinhole camera needs an up vector")
		}
		focal := c.FocalDistance
		if focal <= 0 {
			focal = 1
		}
		return geometry.NewPinholeCamera(core.NewRay(c.Origin, c.Direction), c.Up, focal), nil
	case CameraOrthographic:
		// Sphere intersection assumes unit ray directions
		return &geometry.OrthographicCamera{Direction: c.Direction.Normalize()}, nil
	default:
		return nil, fmt.Errorf("unknown camera type %q", c.Type)
	}
}

// ToFile converts a scene back into its JSON form
func ToFile(s *Scene) (*File, error) {
	maxDepth := s.SamplingConfig.MaxDepth
	minBounces := s.SamplingConfig.RussianRouletteMinBounces
	f := &File{
		Name:            s.Name,
		Shading:         s.Shading,
		Width:           s.SamplingConfig.Width,
		Height:          s.SamplingConfig.Height,
		Samples:         s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        &maxDepth,
		Seed:            s.SamplingConfig.Seed,
		RussianRoulette: s.SamplingConfig.RussianRoulette,
		RRMinBounces:    &minBounces,
		Background:      s.Background,
		Spheres:         append([]geometry.Sphere(nil), s.Spheres...),
	}
	if s.Shading == ShadingDiffuse {
		light := s.LightDirection
		f.LightDirection = &light
	}

	switch c := s.Camera.(type) {
	case *geometry.PinholeCamera:
		f.Camera = CameraFile{
			Type:          CameraPinhole,
			Origin:        c.Eye.Origin,
			Direction:     c.Eye.Direction,
			Up:            c.Up,
			FocalDistance: c.FocalDistance,
		}
	case *geometry.OrthographicCamera:
		f.Camera = CameraFile{Type: CameraOrthographic, Direction: c.Direction}
	default:
		return nil, fmt.Errorf("camera %T cannot be saved", s.Camera)
	}
	return f, nil
}

// SaveFile writes a scene as indented JSON
func SaveFile(path string, s *Scene) error {
	f, err := ToFile(s)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scene: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create scene directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scene file: %w", err)
	}
	return nil
}
