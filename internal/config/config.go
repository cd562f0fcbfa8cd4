// Package config loads the YAML configuration of the measure tools.
package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/PrincessGod/plc/internal/logging"
	"github.com/PrincessGod/plc/pkg/analysis"
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/measurement"
	"github.com/PrincessGod/plc/pkg/scene"
	"github.com/mazznoer/csscolorparser"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration
type Config struct {
	GeoDistanceCameraHeight float64  `yaml:"geo_distance_camera_height"`
	Line                    Line     `yaml:"line"`
	Polyline                Polyline `yaml:"polyline"`
	Polygon                 Polygon  `yaml:"polygon"`
	Log                     Log      `yaml:"log"`
}

// Line configures the line measure tool
type Line struct {
	VHMeasure             bool    `yaml:"vh_measure"`
	Width                 float64 `yaml:"width"`
	DrawingColor          string  `yaml:"drawing_color"`
	PaintedColor          string  `yaml:"painted_color"`
	DrawingLabelClassName string  `yaml:"drawing_label_class_name"`
	MeasureLabelClassName string  `yaml:"measure_label_class_name"`
}

// Polyline configures the polyline measure tool
type Polyline struct {
	ShowFragLength        bool    `yaml:"show_frag_length"`
	Width                 float64 `yaml:"width"`
	DrawingColor          string  `yaml:"drawing_color"`
	PaintedColor          string  `yaml:"painted_color"`
	DrawingLabelClassName string  `yaml:"drawing_label_class_name"`
	MeasureLabelClassName string  `yaml:"measure_label_class_name"`
	SegmentLabelClassName string  `yaml:"segment_label_class_name"`
}

// Polygon configures the polygon measure tool
type Polygon struct {
	ShowSurface               bool   `yaml:"show_surface"`
	DrawingPolygonFill        string `yaml:"drawing_polygon_fill"`
	DrawingPolygonStroke      string `yaml:"drawing_polygon_stroke"`
	DrawingPolylineColor      string `yaml:"drawing_polyline_color"`
	SurfacePolygonFill        string `yaml:"surface_polygon_fill"`
	SurfacePolygonStroke      string `yaml:"surface_polygon_stroke"`
	PaintedPolygonFill        string `yaml:"painted_polygon_fill"`
	PaintedPolygonStroke      string `yaml:"painted_polygon_stroke"`
	DrawingLabelClassName     string `yaml:"drawing_label_class_name"`
	AreaLabelClassName        string `yaml:"area_label_class_name"`
	SurfaceAreaLabelClassName string `yaml:"surface_area_label_class_name"`
}

// Log configures logging
type Log struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		GeoDistanceCameraHeight: analysis.DefaultGeoDistanceCameraHeight,
		Line: Line{
			Width:                 5,
			DrawingColor:          "hotpink",
			PaintedColor:          "mediumturquoise",
			DrawingLabelClassName: "plc-line-mesaure-drawing-label",
			MeasureLabelClassName: "plc-line-measure-label",
		},
		Polyline: Polyline{
			Width:                 5,
			DrawingColor:          "hotpink",
			PaintedColor:          "mediumturquoise",
			DrawingLabelClassName: "plc-line-mesaure-drawing-label",
			MeasureLabelClassName: "plc-line-measure-label",
			SegmentLabelClassName: "plc-polyline-measure-middle-label",
		},
		Polygon: Polygon{
			DrawingPolygonFill:        "#01baefc8",
			DrawingPolygonStroke:      "#177db8c8",
			DrawingPolylineColor:      "red",
			SurfacePolygonFill:        "#e7c969c8",
			SurfacePolygonStroke:      "#e1e0bac8",
			PaintedPolygonFill:        "#68c8c8c8",
			PaintedPolygonStroke:      "#177db8c8",
			DrawingLabelClassName:     "plc-line-mesaure-drawing-label",
			AreaLabelClassName:        "plc-polygon-area-label",
			SurfaceAreaLabelClassName: "plc-polygon-surface-area-label",
		},
		Log: Log{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value that cannot be used as is
func (c Config) Validate() error {
	var errs []error
	if c.GeoDistanceCameraHeight < 0 {
		errs = append(errs, errors.New("geo_distance_camera_height must not be negative"))
	}
	if c.Line.Width < 0 || c.Polyline.Width < 0 {
		errs = append(errs, errors.New("line width must not be negative"))
	}

	colors := map[string]string{
		"line.drawing_color":             c.Line.DrawingColor,
		"line.painted_color":             c.Line.PaintedColor,
		"polyline.drawing_color":         c.Polyline.DrawingColor,
		"polyline.painted_color":         c.Polyline.PaintedColor,
		"polygon.drawing_polygon_fill":   c.Polygon.DrawingPolygonFill,
		"polygon.drawing_polygon_stroke": c.Polygon.DrawingPolygonStroke,
		"polygon.drawing_polyline_color": c.Polygon.DrawingPolylineColor,
		"polygon.surface_polygon_fill":   c.Polygon.SurfacePolygonFill,
		"polygon.surface_polygon_stroke": c.Polygon.SurfacePolygonStroke,
		"polygon.painted_polygon_fill":   c.Polygon.PaintedPolygonFill,
		"polygon.painted_polygon_stroke": c.Polygon.PaintedPolygonStroke,
	}
	for _, key := range slices.Sorted(maps.Keys(colors)) {
		if _, err := ParseColor(colors[key]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level: %w", err))
		}
	}
	return errors.Join(errs...)
}

// ParseColor parses a CSS color. An empty string is the zero color, which
// the tools replace with their default.
func ParseColor(s string) (scene.Color, error) {
	if s == "" {
		return scene.Color{}, nil
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return scene.Color{}, err
	}
	r, g, b, a := c.RGBA255()
	return scene.RGBA(r, g, b, a), nil
}

// Logging returns the logger options
func (c Config) Logging() logging.Options {
	return logging.Options{
		Level:      c.Log.Level,
		File:       c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}

// Calculator returns the measurement calculator for the configured threshold
func (c Config) Calculator() *analysis.Calculator {
	calc := analysis.NewCalculator(geodesy.WGS84)
	calc.GeoDistanceCameraHeight = c.GeoDistanceCameraHeight
	return calc
}

// ManagerOptions converts the configuration into tool manager options for
// viewer. Colors must have passed Validate.
func (c Config) ManagerOptions(viewer *scene.Viewer, logger *zap.Logger) measurement.ManagerOptions {
	calc := c.Calculator()
	return measurement.ManagerOptions{
		Viewer: viewer,
		Logger: logger,
		Line: &measurement.LineOptions{
			Viewer:                viewer,
			Calculator:            calc,
			Logger:                logger,
			VHMeasure:             c.Line.VHMeasure,
			Width:                 c.Line.Width,
			DrawingColor:          mustColor(c.Line.DrawingColor),
			PaintedColor:          mustColor(c.Line.PaintedColor),
			DrawingLabelClassName: c.Line.DrawingLabelClassName,
			MeasureLabelClassName: c.Line.MeasureLabelClassName,
		},
		Polyline: &measurement.PolylineOptions{
			Viewer:                viewer,
			Calculator:            calc,
			Logger:                logger,
			ShowFragLength:        c.Polyline.ShowFragLength,
			Width:                 c.Polyline.Width,
			DrawingColor:          mustColor(c.Polyline.DrawingColor),
			PaintedColor:          mustColor(c.Polyline.PaintedColor),
			DrawingLabelClassName: c.Polyline.DrawingLabelClassName,
			MeasureLabelClassName: c.Polyline.MeasureLabelClassName,
			SegmentLabelClassName: c.Polyline.SegmentLabelClassName,
		},
		Polygon: &measurement.PolygonOptions{
			Viewer:                    viewer,
			Calculator:                calc,
			Logger:                    logger,
			ShowSurface:               c.Polygon.ShowSurface,
			DrawingPolygonFill:        mustColor(c.Polygon.DrawingPolygonFill),
			DrawingPolygonStroke:      mustColor(c.Polygon.DrawingPolygonStroke),
			DrawingPolylineColor:      mustColor(c.Polygon.DrawingPolylineColor),
			SurfacePolygonFill:        mustColor(c.Polygon.SurfacePolygonFill),
			SurfacePolygonStroke:      mustColor(c.Polygon.SurfacePolygonStroke),
			PaintedPolygonFill:        mustColor(c.Polygon.PaintedPolygonFill),
			PaintedPolygonStroke:      mustColor(c.Polygon.PaintedPolygonStroke),
			DrawingLabelClassName:     c.Polygon.DrawingLabelClassName,
			AreaLabelClassName:        c.Polygon.AreaLabelClassName,
			SurfaceAreaLabelClassName: c.Polygon.SurfaceAreaLabelClassName,
		},
	}
}

func mustColor(s string) scene.Color {
	c, _ := ParseColor(s)
	return c
}
