package replay

import (
	"fmt"
	"io"

	"github.com/PrincessGod/plc/internal/config"
	"github.com/PrincessGod/plc/internal/memscene"
	"github.com/PrincessGod/plc/pkg/geodesy"
	"github.com/PrincessGod/plc/pkg/measurement"
	"github.com/PrincessGod/plc/pkg/scene"
	"go.uber.org/zap"
)

// Entry is one painted result
type Entry struct {
	Step  int
	Mode  measurement.Mode
	Kind  measurement.ResultKind
	Text  string
	Value float64
}

// Report summarizes a replay
type Report struct {
	Painted []Entry
	// Remaining counts the results still held by each tool at the end
	Remaining map[measurement.Mode]int
	// Geometries and Labels count the live scene resources at the end
	Geometries int
	Labels     int
}

// Run replays script with the tools configured by cfg
func Run(script Script, cfg config.Config, logger *zap.Logger) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := script.Validate(); err != nil {
		return nil, err
	}

	cam := script.Camera
	s := memscene.New(memscene.Options{
		Camera: memscene.NewCamera(geodesy.WGS84, cam.Longitude, cam.Latitude, cam.Height, cam.Width, cam.Rows),
		Logger: logger,
	})
	mode, err := parseSceneMode(script.Mode)
	if err != nil {
		return nil, err
	}
	s.SetMode(mode)

	positions := placePins(s, script.Pins)

	manager, err := measurement.NewManager(cfg.ManagerOptions(s.Viewer(), logger))
	if err != nil {
		return nil, err
	}

	report := &Report{Remaining: make(map[measurement.Mode]int)}
	step := 0
	for _, m := range []measurement.Mode{measurement.ModeLine, measurement.ModePolyline, measurement.ModePolygon} {
		tool, ok := manager.Tool(m)
		if !ok {
			continue
		}
		tool.Painted().AddListener(func(p measurement.Painted) {
			for _, r := range p.Results {
				report.Painted = append(report.Painted, Entry{Step: step, Mode: p.Mode, Kind: r.Kind, Text: r.Text, Value: r.Value})
			}
		})
	}

	for i, st := range script.Steps {
		step = i + 1
		logger.Debug("replay step", zap.Int("step", step), zap.Stringer("action", st))
		if err := apply(s, manager, positions, st); err != nil {
			return report, fmt.Errorf("step %d (%s): %w", step, st, err)
		}
	}

	for _, m := range []measurement.Mode{measurement.ModeLine, measurement.ModePolyline, measurement.ModePolygon} {
		if tool, ok := manager.Tool(m); ok {
			report.Remaining[m] = len(tool.Results())
		}
	}
	report.Geometries = len(s.Geometries())
	report.Labels = len(s.VisibleLabels())
	return report, nil
}

func apply(s *memscene.Scene, manager *measurement.Manager, positions map[string]scene.ScreenPosition, st Step) error {
	switch {
	case st.Start != "":
		mode, err := measurement.ParseMode(st.Start)
		if err != nil {
			return err
		}
		return manager.StartDraw(mode)
	case st.Click != "":
		pos := positions[st.Click]
		s.Click(pos.X, pos.Y)
	case st.Move != "":
		pos := positions[st.Move]
		s.Move(pos.X, pos.Y)
	case st.RightClick:
		s.RightClick(0, 0)
	case st.End:
		return manager.EndDraw(false)
	case st.EndClear:
		return manager.EndDraw(true)
	case st.ClearAll:
		return manager.ClearAllHistory()
	}
	return nil
}

// placePins scripts the scene and returns the screen position of every pin.
// Pins without an explicit screen position get distinct synthetic ones
// outside the canvas.
func placePins(s *memscene.Scene, pins []Pin) map[string]scene.ScreenPosition {
	positions := make(map[string]scene.ScreenPosition, len(pins))
	for i, p := range pins {
		pos := scene.ScreenPosition{X: -1 - float64(i), Y: -1}
		if len(p.Screen) == 2 {
			pos = scene.ScreenPosition{X: p.Screen[0], Y: p.Screen[1]}
		}
		positions[p.Name] = pos

		switch {
		case p.Miss:
			s.Pin(pos, memscene.Pin{Miss: true})
		case p.At != nil:
			c := cartographic(p.At)
			if p.Feature {
				s.PinFeature(pos, c)
			} else {
				s.PinGround(pos, c)
			}
		}
	}
	return positions
}

func cartographic(at []float64) geodesy.Cartographic {
	h := 0.0
	if len(at) == 3 {
		h = at[2]
	}
	return geodesy.FromDegrees(at[0], at[1], h)
}

func parseSceneMode(s string) (scene.Mode, error) {
	switch s {
	case "", "3d":
		return scene.Mode3D, nil
	case "2d":
		return scene.Mode2D, nil
	case "columbus":
		return scene.ModeColumbusView, nil
	}
	return scene.Mode3D, fmt.Errorf("unknown scene mode %q", s)
}

// Write prints the report; heading styles section titles
func (r *Report) Write(w io.Writer, heading func(string) string) {
	if heading == nil {
		heading = func(s string) string { return s }
	}

	fmt.Fprintln(w, heading("Painted Results"))
	if len(r.Painted) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, e := range r.Painted {
		fmt.Fprintf(w, "  step %3d  %-8s %-10s %s\n", e.Step, e.Mode, e.Kind, e.Text)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, heading("Remaining"))
	for _, m := range []measurement.Mode{measurement.ModeLine, measurement.ModePolyline, measurement.ModePolygon} {
		if n, ok := r.Remaining[m]; ok {
			fmt.Fprintf(w, "  %-8s %d results\n", m, n)
		}
	}
	fmt.Fprintf(w, "  scene    %d geometries, %d labels\n", r.Geometries, r.Labels)
}
