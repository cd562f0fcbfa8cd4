package measurement

import "errors"

var (
	// ErrMissingCollaborator is returned when a tool is built without a
	// complete viewer.
	ErrMissingCollaborator = errors.New("missing required collaborator")
	// ErrToolNotConfigured is returned when selecting a mode whose tool was
	// never created.
	ErrToolNotConfigured = errors.New("measure tool not configured")
	// ErrInvalidSelection is returned for selections that are neither a Mode
	// nor one of the manager's tools.
	ErrInvalidSelection = errors.New("invalid tool selection")
	// ErrNoCurrentTool is returned when drawing is started or ended with no
	// tool selected.
	ErrNoCurrentTool = errors.New("no current tool")
	// ErrToolActive is returned when clearing the history of a tool that is
	// still drawing.
	ErrToolActive = errors.New("cannot clear history while tool is active")
)
