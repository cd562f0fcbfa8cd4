package measurement

import (
	"fmt"
	"strings"
)

// Mode identifies which measure tool is bound as the current tool
type Mode int

const (
	ModeNone Mode = iota
	ModeLine
	ModePolyline
	ModePolygon
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeLine:
		return "line"
	case ModePolyline:
		return "polyline"
	case ModePolygon:
		return "polygon"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses the lower-case name of a mode
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return ModeNone, nil
	case "line":
		return ModeLine, nil
	case "polyline":
		return ModePolyline, nil
	case "polygon":
		return ModePolygon, nil
	}
	return ModeNone, fmt.Errorf("unknown mode %q: %w", s, ErrInvalidSelection)
}

func (m Mode) valid() bool {
	return m >= ModeNone && m <= ModePolygon
}
