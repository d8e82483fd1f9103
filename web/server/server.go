package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Parameter limits for web renders
const (
	maxImageSize      = 2000
	maxSamples        = 10000
	maxDepth          = 50
	defaultWebSamples = 64 // Cap on a scene's own sample count when the request names none
)

// Server handles web requests for the path tracer
type Server struct {
	port int
	echo *echo.Echo
}

// NewServer creates a new web server with all routes registered
func NewServer(port int) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{port: port, echo: e}

	// API endpoints
	e.GET("/api/health", s.handleHealth)
	e.GET("/api/scenes", s.handleScenes)
	e.GET("/api/scene-config", s.handleSceneConfig)
	e.GET("/api/render", s.handleRender)
	e.GET("/api/render/stream", s.handleRenderStream)
	e.GET("/api/inspect", s.handleInspect)

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.echo.Logger.Printf("Starting web server on http://localhost%s", addr)
	return s.echo.Start(addr)
}

// Shutdown stops accepting requests and cancels in-flight renders through their request contexts
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// HealthResponse reports server status and host capacity
type HealthResponse struct {
	Status string `json:"status"`
	renderer.HostInfo
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		HostInfo: renderer.ReadHostInfo(),
	})
}

// handleScenes lists built-in and discovered scenes
func (s *Server) handleScenes(c echo.Context) error {
	scenes, err := scene.ListScenes()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, scenes)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(c echo.Context) error {
	sceneObj, err := s.createScene(c.QueryParam("scene"))
	if err != nil {
		return err
	}

	config := sceneObj.SamplingConfig
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scene":   sceneObj.Name,
		"shading": sceneObj.Shading,
		"spheres": sceneObj.GetPrimitiveCount(),
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": 1, "max": maxImageSize},
			"height":  map[string]int{"min": 1, "max": maxImageSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"depth":   map[string]int{"min": 1, "max": maxDepth},
		},
	})
}

// createScene resolves a scene ID from the scene list; file paths are not accepted.
// An empty name selects the Cornell scene.
func (s *Server) createScene(name string) (*scene.Scene, error) {
	if name == "" {
		name = "cornell"
	}

	scenes, err := scene.ListScenes()
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	for _, info := range scenes {
		if info.ID != name {
			continue
		}
		source := info.ID
		if info.FilePath != "" {
			source = info.FilePath
		}
		sceneObj, err := scene.Create(source)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		return sceneObj, nil
	}

	return nil, echo.NewHTTPError(http.StatusNotFound, "Unknown scene: "+name)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseInt64Param parses an unbounded 64-bit integer parameter
func parseInt64Param(values url.Values, key string, defaultValue int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseBoolParam parses a boolean parameter
func parseBoolParam(values url.Values, key string, defaultValue bool) (bool, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}
