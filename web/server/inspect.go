package server

import (
	"fmt"
	"math"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit         bool       `json:"hit"`
	SphereIndex int        `json:"sphereIndex"`
	Label       string     `json:"label,omitempty"`
	Point       [3]float64 `json:"point"`
	Normal      [3]float64 `json:"normal"`
	Distance    float64    `json:"distance"`
	FrontFace   bool       `json:"frontFace"`
	Color       [3]float64 `json:"color"`
	Emission    [3]float64 `json:"emission"`
	Radius      float64    `json:"radius"`
	Center      [3]float64 `json:"center"`
	HexColor    string     `json:"hexColor"`
}

// inspectPixel casts the primary ray through (row, col) and reports the first sphere hit
func inspectPixel(sceneObj *scene.Scene, row, col int) InspectResponse {
	cfg := sceneObj.SamplingConfig
	ray := sceneObj.Camera.GetRay(row, col, cfg.Height, cfg.Width)

	hit, isHit := sceneObj.Intersect(ray)
	if !isHit {
		return InspectResponse{Hit: false, SphereIndex: -1}
	}

	sphere := &sceneObj.Spheres[hit.Index]
	surface := sphere.Interaction(ray, hit.T)

	return InspectResponse{
		Hit:         true,
		SphereIndex: hit.Index,
		Label:       sphere.Label,
		Point:       [3]float64{surface.Point.X, surface.Point.Y, surface.Point.Z},
		Normal:      [3]float64{surface.Normal.X, surface.Normal.Y, surface.Normal.Z},
		Distance:    hit.T,
		FrontFace:   surface.FrontFace,
		Color:       [3]float64{sphere.Color.X, sphere.Color.Y, sphere.Color.Z},
		Emission:    [3]float64{sphere.Emission.X, sphere.Emission.Y, sphere.Emission.Z},
		Radius:      sphere.Radius,
		Center:      [3]float64{sphere.Position.X, sphere.Position.Y, sphere.Position.Z},
		HexColor:    hexColor(sphere.Color),
	}
}

// hexColor formats a linear color as #rrggbb, clamping each channel to [0, 1]
func hexColor(c core.Vec3) string {
	channel := func(x float64) int {
		if math.IsNaN(x) {
			return 0
		}
		return int(core.Clamp(x, 0, 1) * 255)
	}
	return fmt.Sprintf("#%02x%02x%02x", channel(c.X), channel(c.Y), channel(c.Z))
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(c echo.Context) error {
	values := c.QueryParams()

	req, err := parseRenderRequest(values)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return err
	}

	cfg := &sceneObj.SamplingConfig
	if req.Width > 0 {
		cfg.Width = req.Width
	}
	if req.Height > 0 {
		cfg.Height = req.Height
	}

	row, err := parseIntParam(values, "row", -1, 0, cfg.Height-1)
	if err != nil || row < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or missing row")
	}
	col, err := parseIntParam(values, "col", -1, 0, cfg.Width-1)
	if err != nil || col < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or missing col")
	}

	return c.JSON(http.StatusOK, inspectPixel(sceneObj, row, col))
}
