package replay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/PrincessGod/plc/pkg/measurement"
	"github.com/PrincessGod/plc/version"
)

// ReportData is the JSON structure of a saved report
type ReportData struct {
	Version    string         `json:"version"`
	Painted    []EntryData    `json:"painted"`
	Remaining  map[string]int `json:"remaining,omitempty"`
	Geometries int            `json:"geometries"`
	Labels     int            `json:"labels"`
}

// EntryData is a saved painted result
type EntryData struct {
	Step  int     `json:"step"`
	Mode  string  `json:"mode"`
	Kind  string  `json:"kind"`
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

// Data converts the report to its saved form
func (r *Report) Data() ReportData {
	data := ReportData{
		Version:    version.GetVersion(),
		Painted:    make([]EntryData, 0, len(r.Painted)),
		Geometries: r.Geometries,
		Labels:     r.Labels,
	}
	for _, e := range r.Painted {
		data.Painted = append(data.Painted, EntryData{
			Step:  e.Step,
			Mode:  e.Mode.String(),
			Kind:  e.Kind.String(),
			Text:  e.Text,
			Value: e.Value,
		})
	}
	if len(r.Remaining) > 0 {
		data.Remaining = make(map[string]int, len(r.Remaining))
		for m, n := range r.Remaining {
			data.Remaining[m.String()] = n
		}
	}
	return data
}

// WriteJSON encodes the report as indented JSON
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r.Data()); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// SaveReport writes the report to a JSON file
func SaveReport(r *Report, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := r.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadReport reads a report saved by SaveReport
func LoadReport(filename string) (ReportData, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return ReportData{}, fmt.Errorf("failed to read file: %w", err)
	}

	var data ReportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return ReportData{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	for i, e := range data.Painted {
		if _, err := measurement.ParseMode(e.Mode); err != nil {
			return ReportData{}, fmt.Errorf("painted[%d]: %w", i, err)
		}
	}
	return data, nil
}
