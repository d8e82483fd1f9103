package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// RenderRequest represents a render request from the client.
// Zero values keep the scene's own settings.
type RenderRequest struct {
	Scene    string         `json:"scene"`
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Samples  int            `json:"samples"`
	MaxDepth int            `json:"maxDepth"`
	Seed     int64          `json:"seed"`
	Roulette bool           `json:"rr"`
	Format   imageio.Format `json:"format"`
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalSamples     int64   `json:"totalSamples"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	Workers          int     `json:"workers"`
	Seed             int64   `json:"seed"`
	AverageLuminance float64 `json:"averageLuminance"`
	ElapsedMs        int64   `json:"elapsedMs"`
}

// CompleteEvent is the final SSE payload of a streamed render
type CompleteEvent struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// RenderingPipeline contains the configured scene and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Raytracer *renderer.Raytracer
}

var contentTypes = map[imageio.Format]string{
	imageio.FormatPNG: "image/png",
	imageio.FormatPPM: "image/x-portable-pixmap",
}

// handleRender renders a scene and returns the encoded image
func (s *Server) handleRender(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	renderID := newRenderID()
	pipeline, err := s.setupRenderingPipeline(req, NewWebLogger(renderID, nil, c.Logger()))
	if err != nil {
		return err
	}

	buf, stats, err := pipeline.Raytracer.Render(c.Request().Context())
	if err != nil {
		return renderError(err)
	}

	var body bytes.Buffer
	if err := imageio.Encode(&body, buf, req.Format); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
	}

	header := c.Response().Header()
	header.Set("X-Render-Id", renderID)
	header.Set("X-Render-Seed", strconv.FormatInt(stats.Seed, 10))
	header.Set("X-Render-Duration-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	return c.Blob(http.StatusOK, contentTypes[req.Format], body.Bytes())
}

// handleRenderStream renders a scene while streaming console output via SSE, then sends the image as base64 PNG.
// The handler is the only writer to the response.
func (s *Server) handleRenderStream(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
	}

	consoleChan := make(chan ConsoleMessage, 100)
	webLogger := NewWebLogger(newRenderID(), consoleChan, c.Logger())

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		return err
	}

	s.setSSEHeaders(c.Response())
	c.Response().WriteHeader(http.StatusOK)

	type outcome struct {
		buf   *renderer.PixelBuffer
		stats renderer.RenderStats
		err   error
	}
	done := make(chan outcome, 1)
	startTime := time.Now()

	go func() {
		buf, stats, err := pipeline.Raytracer.Render(c.Request().Context())
		done <- outcome{buf, stats, err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			if err := s.sendSSEJSON(c.Response(), "console", msg); err != nil {
				// Client went away; the render stops with the request context
				<-done
				return nil
			}

		case result := <-done:
			s.drainConsole(c.Response(), consoleChan)

			if result.err != nil {
				return s.sendSSEEvent(c.Response(), "error", fmt.Sprintf("Render error: %v", result.err))
			}

			var png bytes.Buffer
			if err := imageio.EncodePNG(&png, result.buf); err != nil {
				return s.sendSSEEvent(c.Response(), "error", fmt.Sprintf("failed to encode image: %v", err))
			}

			return s.sendSSEJSON(c.Response(), "complete", CompleteEvent{
				ImageData: base64.StdEncoding.EncodeToString(png.Bytes()),
				Stats:     toStats(result.stats, time.Since(startTime)),
			})
		}
	}
}

// setupRenderingPipeline builds the scene, applies request overrides and creates the raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger core.Logger) (*RenderingPipeline, error) {
	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, err
	}

	cfg := &sceneObj.SamplingConfig
	if req.Width > 0 {
		cfg.Width = req.Width
	}
	if req.Height > 0 {
		cfg.Height = req.Height
	}
	if req.Samples > 0 {
		cfg.SamplesPerPixel = req.Samples
	} else {
		cfg.SamplesPerPixel = min(cfg.SamplesPerPixel, defaultWebSamples)
	}
	if req.MaxDepth > 0 {
		cfg.MaxDepth = req.MaxDepth
	}
	if req.Seed != 0 {
		cfg.Seed = req.Seed
	}
	cfg.RussianRoulette = cfg.RussianRoulette || req.Roulette

	if cfg.Width*cfg.Height > 800*600 && cfg.SamplesPerPixel > 100 {
		logger.Printf("Warning: large image with high samples may render slowly\n")
	}

	integratorInst, err := integrator.New(sceneObj)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return &RenderingPipeline{
		Scene:     sceneObj,
		Raytracer: renderer.NewRaytracer(sceneObj, integratorInst, renderer.DefaultRenderConfig(), logger),
	}, nil
}

// parseRenderRequest parses request parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: values.Get("scene")}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 0, 1, maxImageSize); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(values, "samples", 0, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", 0, 1, maxDepth); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(values, "seed", 0); err != nil {
		return nil, err
	}
	if req.Roulette, err = parseBoolParam(values, "rr", false); err != nil {
		return nil, err
	}

	req.Format = imageio.FormatPNG
	if format := values.Get("format"); format != "" {
		if req.Format, err = imageio.ParseFormat(format); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// renderError maps a failed render to an HTTP error
func renderError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "render cancelled")
	}
	return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
}

func toStats(stats renderer.RenderStats, elapsed time.Duration) Stats {
	return Stats{
		TotalPixels:      stats.TotalPixels,
		TotalSamples:     int64(stats.TotalSamples),
		SamplesPerPixel:  stats.SamplesPerPixel,
		Workers:          stats.NumWorkers,
		Seed:             stats.Seed,
		AverageLuminance: stats.AverageLuminance,
		ElapsedMs:        elapsed.Milliseconds(),
	}
}

func newRenderID() string {
	return fmt.Sprintf("render-%d", time.Now().UnixNano())
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

// drainConsole forwards console messages still buffered when the render finished
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if err := s.sendSSEJSON(w, "console", msg); err != nil {
				return
			}
		default:
			return
		}
	}
}

// sendSSEJSON sends a JSON-encoded SSE event
func (s *Server) sendSSEJSON(w http.ResponseWriter, event string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.sendSSEEvent(w, event, string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}
