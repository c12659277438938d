package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// InspectResponse describes the surface seen through one pixel
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	MaterialID   int                    `json:"materialId,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

func vec(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// describeMaterial names a material and lists its parameters at the hit
func describeMaterial(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"color": hexColor(mat.ColorChannels(hit.UV, hit.Position).RGB),
		"alpha": hit.Color.A,
	}
	switch m := mat.(type) {
	case *material.Lambertian:
		return "lambertian", properties
	case *material.Metal:
		properties["fuzz"] = m.Fuzz
		return "metal", properties
	case *material.Dielectric:
		properties["indexMin"] = m.IndexMin
		properties["indexMax"] = m.IndexMax
		return "dielectric", properties
	case *material.DiffuseLight:
		properties["emission"] = vec(m.Emit.Value(hit.UV, hit.Position).RGB)
		return "diffuse light", properties
	case *material.Isotropic:
		return "isotropic", properties
	case *material.MaterialBlend:
		properties["constituents"] = len(m.Materials)
		return "blend", properties
	default:
		return "unknown", properties
	}
}

// inspectPixel casts the unjittered primary ray through the center of
// pixel (x, y) of a width x height image
func inspectPixel(s *scene.Scene, width, height, x, y int) InspectResponse {
	s = s.WithAspect(float64(width) / float64(height))
	sampler := core.NewSeededSampler(0)
	u := (float64(x) + 0.5) / float64(width)
	v := 1 - (float64(y)+0.5)/float64(height)
	ray := s.Camera.Ray(u, v, sampler)

	hit, ok := s.World.Hit(ray, 0.001, math.MaxFloat64, sampler)
	if !ok {
		return InspectResponse{Hit: false}
	}
	mat := hit.Material
	if r, ok := mat.(material.Resolver); ok {
		mat = r.Resolve(sampler)
	}
	materialType, properties := describeMaterial(mat, hit)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		MaterialID:   mat.ID(),
		Point:        vec(hit.Position),
		Normal:       vec(hit.Normal),
		Distance:     hit.T,
		Properties:   properties,
	}
}

// queryInt reads an integer query parameter within [lo, hi]
func queryInt(c echo.Context, key string, fallback, lo, hi int) (int, error) {
	value := c.QueryParam(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %s", key, value)
	}
	if parsed < lo || parsed > hi {
		return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, lo, hi, parsed)
	}
	return parsed, nil
}

func (s *Server) handleInspect(c echo.Context) error {
	current := s.progress()
	width, height := current.Width, current.Height
	if width == 0 || height == 0 {
		width, height = 400, 200
	}

	var err error
	if width, err = queryInt(c, "width", width, 1, 8192); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if height, err = queryInt(c, "height", height, 1, 8192); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	x, err := queryInt(c, "x", -1, 0, width-1)
	if err == nil && x < 0 {
		err = fmt.Errorf("missing x coordinate")
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	y, err := queryInt(c, "y", -1, 0, height-1)
	if err == nil && y < 0 {
		err = fmt.Errorf("missing y coordinate")
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, inspectPixel(s.scene, width, height, x, y))
}
