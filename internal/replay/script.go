// Package replay runs scripted pointer interactions against the measure
// tools in an in-memory scene.
package replay

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a replayable interaction session
type Script struct {
	Camera Camera `yaml:"camera"`
	// Mode is the projection mode: 3d, 2d or columbus
	Mode  string `yaml:"mode"`
	Pins  []Pin  `yaml:"pins"`
	Steps []Step `yaml:"steps"`
}

// Camera places the camera above a geodetic position, looking down
type Camera struct {
	Longitude float64 `yaml:"longitude"`
	Latitude  float64 `yaml:"latitude"`
	Height    float64 `yaml:"height"`
	Width     int     `yaml:"width"`
	Rows      int     `yaml:"rows"`
}

// Pin names a screen position. With At set, picks there resolve to that
// position, through depth picking when Feature is set and through the globe
// ray otherwise. Without At the camera ray decides.
type Pin struct {
	Name    string    `yaml:"name"`
	At      []float64 `yaml:"at"`
	Screen  []float64 `yaml:"screen"`
	Feature bool      `yaml:"feature"`
	Miss    bool      `yaml:"miss"`
}

// Step is one interaction; exactly one field is set
type Step struct {
	Start      string `yaml:"start"`
	Click      string `yaml:"click"`
	Move       string `yaml:"move"`
	RightClick bool   `yaml:"right_click"`
	End        bool   `yaml:"end"`
	EndClear   bool   `yaml:"end_clear"`
	ClearAll   bool   `yaml:"clear_all"`
}

func (s Step) String() string {
	switch {
	case s.Start != "":
		return "start " + s.Start
	case s.Click != "":
		return "click " + s.Click
	case s.Move != "":
		return "move " + s.Move
	case s.RightClick:
		return "right click"
	case s.End:
		return "end"
	case s.EndClear:
		return "end and clear"
	case s.ClearAll:
		return "clear all"
	}
	return "empty step"
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{s.Start != "", s.Click != "", s.Move != "", s.RightClick, s.End, s.EndClear, s.ClearAll} {
		if set {
			n++
		}
	}
	return n
}

// DefaultCamera is used for zero camera fields
var DefaultCamera = Camera{Height: 1000, Width: 1000, Rows: 800}

// LoadScript reads and validates a script file
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("failed to read script: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes and validates a YAML script
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse script: %w", err)
	}
	if s.Camera.Height == 0 {
		s.Camera.Height = DefaultCamera.Height
	}
	if s.Camera.Width == 0 {
		s.Camera.Width = DefaultCamera.Width
	}
	if s.Camera.Rows == 0 {
		s.Camera.Rows = DefaultCamera.Rows
	}
	return s, s.Validate()
}

// Validate checks pins and steps
func (s Script) Validate() error {
	var errs []error
	names := make(map[string]bool)
	for i, p := range s.Pins {
		switch {
		case p.Name == "":
			errs = append(errs, fmt.Errorf("pin %d: missing name", i))
		case names[p.Name]:
			errs = append(errs, fmt.Errorf("pin %q: duplicate name", p.Name))
		}
		names[p.Name] = true
		if p.At != nil && len(p.At) != 2 && len(p.At) != 3 {
			errs = append(errs, fmt.Errorf("pin %q: at needs longitude, latitude and optional height", p.Name))
		}
		if p.Screen != nil && len(p.Screen) != 2 {
			errs = append(errs, fmt.Errorf("pin %q: screen needs x and y", p.Name))
		}
		if p.At == nil && p.Screen == nil {
			errs = append(errs, fmt.Errorf("pin %q: needs at or screen", p.Name))
		}
	}

	for i, step := range s.Steps {
		if step.actions() != 1 {
			errs = append(errs, fmt.Errorf("step %d: exactly one action required", i+1))
			continue
		}
		for _, target := range []string{step.Click, step.Move} {
			if target != "" && !names[target] {
				errs = append(errs, fmt.Errorf("step %d: unknown pin %q", i+1, target))
			}
		}
	}
	return errors.Join(errs...)
}
