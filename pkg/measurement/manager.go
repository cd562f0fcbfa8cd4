package measurement

import (
	"errors"
	"fmt"

	"github.com/PrincessGod/plc/pkg/scene"
	"go.uber.org/zap"
)

// ManagerOptions configures a Manager. A shared Viewer creates every tool
// with default options; per-tool options override the defaults and fall back
// to the shared viewer when they carry none.
type ManagerOptions struct {
	Viewer   *scene.Viewer
	Line     *LineOptions
	Polyline *PolylineOptions
	Polygon  *PolygonOptions
	Logger   *zap.Logger
}

// Manager selects among the measure tools and keeps at most one of them
// drawing.
type Manager struct {
	line     *LineMeasure
	polyline *PolylineMeasure
	polygon  *PolygonMeasure

	mode    Mode
	current Tool
	logger  *zap.Logger
}

// NewManager creates the configured tools
func NewManager(opts ManagerOptions) (*Manager, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	m := &Manager{logger: opts.Logger}

	if opts.Line != nil || opts.Viewer != nil {
		o := DefaultLineOptions(opts.Viewer)
		if opts.Line != nil {
			o = *opts.Line
		}
		o.Viewer, o.Logger = viewerOr(o.Viewer, opts.Viewer), loggerOr(o.Logger, opts.Logger)
		tool, err := NewLineMeasure(o)
		if err != nil {
			return nil, err
		}
		m.line = tool
	}

	if opts.Polyline != nil || opts.Viewer != nil {
		o := DefaultPolylineOptions(opts.Viewer)
		if opts.Polyline != nil {
			o = *opts.Polyline
		}
		o.Viewer, o.Logger = viewerOr(o.Viewer, opts.Viewer), loggerOr(o.Logger, opts.Logger)
		tool, err := NewPolylineMeasure(o)
		if err != nil {
			return nil, err
		}
		m.polyline = tool
	}

	if opts.Polygon != nil || opts.Viewer != nil {
		o := DefaultPolygonOptions(opts.Viewer)
		if opts.Polygon != nil {
			o = *opts.Polygon
		}
		o.Viewer, o.Logger = viewerOr(o.Viewer, opts.Viewer), loggerOr(o.Logger, opts.Logger)
		tool, err := NewPolygonMeasure(o)
		if err != nil {
			return nil, err
		}
		m.polygon = tool
	}

	if len(m.tools()) == 0 {
		return nil, fmt.Errorf("measure tool manager: viewer or tool options: %w", ErrMissingCollaborator)
	}
	return m, nil
}

func viewerOr(own, shared *scene.Viewer) *scene.Viewer {
	if own != nil {
		return own
	}
	return shared
}

func loggerOr(own, shared *zap.Logger) *zap.Logger {
	if own != nil {
		return own
	}
	return shared
}

// LineTool returns the line tool, nil when not configured
func (m *Manager) LineTool() *LineMeasure {
	return m.line
}

// PolylineTool returns the polyline tool, nil when not configured
func (m *Manager) PolylineTool() *PolylineMeasure {
	return m.polyline
}

// PolygonTool returns the polygon tool, nil when not configured
func (m *Manager) PolygonTool() *PolygonMeasure {
	return m.polygon
}

// Mode returns the mode of the current tool
func (m *Manager) Mode() Mode {
	return m.mode
}

// CurrentTool returns the current tool, nil when none is selected
func (m *Manager) CurrentTool() Tool {
	return m.current
}

// Tool returns the configured tool for mode
func (m *Manager) Tool(mode Mode) (Tool, bool) {
	switch mode {
	case ModeLine:
		if m.line != nil {
			return m.line, true
		}
	case ModePolyline:
		if m.polyline != nil {
			return m.polyline, true
		}
	case ModePolygon:
		if m.polygon != nil {
			return m.polygon, true
		}
	}
	return nil, false
}

func (m *Manager) tools() []Tool {
	var out []Tool
	for _, mode := range []Mode{ModeLine, ModePolyline, ModePolygon} {
		if t, ok := m.Tool(mode); ok {
			out = append(out, t)
		}
	}
	return out
}

// SetCurrentTool selects the current tool. The selection is nil, a Mode or
// one of the manager's tools; ModeNone and nil clear the selection.
func (m *Manager) SetCurrentTool(selection any) error {
	mode, tool, err := m.resolve(selection)
	if err != nil {
		return err
	}
	m.mode, m.current = mode, tool
	return nil
}

func (m *Manager) resolve(selection any) (Mode, Tool, error) {
	switch v := selection.(type) {
	case nil:
		return ModeNone, nil, nil
	case Mode:
		if !v.valid() {
			return ModeNone, nil, fmt.Errorf("%s: %w", v, ErrInvalidSelection)
		}
		if v == ModeNone {
			return ModeNone, nil, nil
		}
		tool, ok := m.Tool(v)
		if !ok {
			return ModeNone, nil, fmt.Errorf("%s: %w", v, ErrToolNotConfigured)
		}
		return v, tool, nil
	case Tool:
		for _, t := range m.tools() {
			if t == v {
				return t.Mode(), t, nil
			}
		}
		return ModeNone, nil, fmt.Errorf("%s tool not owned by manager: %w", v.Mode(), ErrInvalidSelection)
	default:
		return ModeNone, nil, fmt.Errorf("%T: %w", selection, ErrInvalidSelection)
	}
}

// StartDraw starts drawing with the current tool. When selection is not nil
// it becomes the current tool first, and every other tool stops drawing.
func (m *Manager) StartDraw(selection any) error {
	if selection != nil {
		mode, tool, err := m.resolve(selection)
		if err != nil {
			return err
		}
		if tool == nil {
			return fmt.Errorf("start draw %s: %w", mode, ErrNoCurrentTool)
		}
		if tool != m.current && m.current != nil {
			m.current.EndDraw()
		}
		m.mode, m.current = mode, tool
	}
	if m.current == nil {
		return fmt.Errorf("start draw: %w", ErrNoCurrentTool)
	}

	for _, t := range m.tools() {
		if t != m.current && t.IsActive() {
			t.EndDraw()
		}
	}
	m.logger.Debug("start draw", zap.Stringer("mode", m.mode))
	m.current.StartDraw()
	return nil
}

// EndDraw stops the current tool and optionally clears its history
func (m *Manager) EndDraw(clearHistory bool) error {
	if m.current == nil {
		return fmt.Errorf("end draw: %w", ErrNoCurrentTool)
	}
	m.logger.Debug("end draw", zap.Stringer("mode", m.mode), zap.Bool("clear_history", clearHistory))
	m.current.EndDraw()
	if clearHistory {
		return m.current.ClearHistory()
	}
	return nil
}

// ClearAllHistory clears the history of every configured tool. Active tools
// are left untouched and reported in the returned error.
func (m *Manager) ClearAllHistory() error {
	var errs []error
	for _, t := range m.tools() {
		if err := t.ClearHistory(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
