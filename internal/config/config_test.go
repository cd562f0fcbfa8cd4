package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PrincessGod/plc/internal/memscene"
	"github.com/PrincessGod/plc/pkg/measurement"
	"github.com/PrincessGod/plc/pkg/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultColorsMatchTools(t *testing.T) {
	opts := Default().ManagerOptions(nil, nil)

	line := measurement.DefaultLineOptions(nil)
	assert.Equal(t, line.DrawingColor, opts.Line.DrawingColor)
	assert.Equal(t, line.PaintedColor, opts.Line.PaintedColor)

	polygon := measurement.DefaultPolygonOptions(nil)
	assert.Equal(t, polygon.DrawingPolygonFill, opts.Polygon.DrawingPolygonFill)
	assert.Equal(t, polygon.DrawingPolylineColor, opts.Polygon.DrawingPolylineColor)
	assert.Equal(t, polygon.SurfacePolygonStroke, opts.Polygon.SurfacePolygonStroke)
	assert.Equal(t, polygon.PaintedPolygonFill, opts.Polygon.PaintedPolygonFill)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
geo_distance_camera_height: 1000
line:
  vh_measure: true
  painted_color: "#ff000080"
polygon:
  show_surface: true
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, cfg.GeoDistanceCameraHeight)
	assert.True(t, cfg.Line.VHMeasure)
	assert.True(t, cfg.Polygon.ShowSurface)
	assert.Equal(t, "hotpink", cfg.Line.DrawingColor, "unset values keep their default")
	assert.Equal(t, "debug", cfg.Logging().Level)

	opts := cfg.ManagerOptions(nil, nil)
	assert.Equal(t, scene.RGBA(255, 0, 0, 128), opts.Line.PaintedColor)
	assert.Equal(t, 1000.0, opts.Line.Calculator.GeoDistanceCameraHeight)
}

func TestLoadReportsEveryInvalidValue(t *testing.T) {
	path := writeConfig(t, `
geo_distance_camera_height: -1
line:
  drawing_color: notacolor
polygon:
  surface_polygon_fill: "#12"
log:
  level: loud
`)

	_, err := Load(path)
	require.Error(t, err)
	for _, key := range []string{"geo_distance_camera_height", "line.drawing_color", "polygon.surface_polygon_fill", "log.level"} {
		assert.Contains(t, err.Error(), key)
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "line: ["))
	assert.Error(t, err)
}

func TestManagerOptionsBuildManager(t *testing.T) {
	cfg := Default()
	cfg.Polyline.ShowFragLength = true

	s := memscene.New(memscene.Options{})
	m, err := measurement.NewManager(cfg.ManagerOptions(s.Viewer(), nil))
	require.NoError(t, err)
	assert.True(t, m.PolylineTool().ShowFragLength())
	assert.False(t, m.LineTool().VHMeasure())
}
