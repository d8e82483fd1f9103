package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string  `json:"id"`          // Name accepted by Create
	Name        string  `json:"name"`        // Scene name
	Description string  `json:"description"` // Optional description
	Type        string  `json:"type"`        // "builtin" or "file"
	Shading     Shading `json:"shading"`
	FilePath    string  `json:"filePath,omitempty"` // Path to JSON file (file type only)
}

type builtinScene struct {
	description string
	create      func() *Scene
}

var builtinScenes = map[string]builtinScene{
	"default":    {"Three spheres on the ground under a sun and sky, path traced", NewDefaultScene},
	"cornell":    {"Sphere Cornell box, path traced", NewCornellScene},
	"pinhole":    {"Single sphere, pinhole camera, one light direction", NewPinholeScene},
	"flat":       {"Two spheres, orthographic, nearest-hit color", NewFlatScene},
	"spheregrid": {"Grid of colored spheres under a sun sphere, path traced", NewSphereGridScene},
}

// possibleSceneDirs are searched in order for JSON scene files
var possibleSceneDirs = []string{"scenes", "../scenes"}

// Create returns a scene by built-in name, by name of a JSON file in the
// scenes directory, or by direct path to a .json file.
func Create(name string) (*Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("scene name is empty")
	}
	if b, ok := builtinScenes[name]; ok {
		return b.create(), nil
	}
	if strings.HasSuffix(name, ".json") {
		return LoadFile(name)
	}
	if path, ok := findSceneFile(name); ok {
		return LoadFile(path)
	}
	return nil, fmt.Errorf("unknown scene: %s", name)
}

func findSceneFile(name string) (string, bool) {
	for _, dir := range possibleSceneDirs {
		path := filepath.Join(dir, name+".json")
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// ListScenes returns the built-in scenes followed by JSON scenes found on disk
func ListScenes() ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for id, b := range builtinScenes {
		scenes = append(scenes, SceneInfo{
			ID:          id,
			Name:        id,
			Description: b.description,
			Type:        "builtin",
			Shading:     b.create().Shading,
		})
	}
	sort.Slice(scenes, func(i, j int) bool { return scenes[i].ID < scenes[j].ID })

	files, err := ListSceneFiles()
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		// Create resolves built-in names first, so a shadowed file is unreachable by ID
		if _, ok := builtinScenes[info.ID]; ok {
			fmt.Printf("Warning: scene file %s is shadowed by the built-in scene %q\n", info.FilePath, info.ID)
			continue
		}
		scenes = append(scenes, info)
	}
	return scenes, nil
}

// ListSceneFiles scans the scenes directory for JSON scene files
func ListSceneFiles() ([]SceneInfo, error) {
	var scenesDir string
	for _, path := range possibleSceneDirs {
		if _, err := os.Stat(path); err == nil {
			scenesDir = path
			break
		}
	}
	if scenesDir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(scenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip unreadable files; the rest are still usable
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes, nil
}

// ParseSceneMetadata reads only the descriptive fields of a JSON scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	id := nameFromPath(filePath)
	info := SceneInfo{
		ID:       id,
		Name:     id,
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}

	var meta struct {
		Name        string  `json:"name"`
		Description string  `json:"description"`
		Shading     Shading `json:"shading"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, err
	}

	if meta.Name != "" {
		info.Name = meta.Name
	}
	info.Description = meta.Description
	info.Shading = meta.Shading
	if info.Shading == "" {
		info.Shading = ShadingPath
	}
	return info, nil
}

func nameFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
