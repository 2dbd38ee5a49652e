package driver

import (
	"encoding/json"
	"fmt"
	"io"

	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/observ"
)

type timingPayload struct {
	Kind    string               `json:"kind"`
	Path    string               `json:"path,omitempty"`
	TotalMS float64              `json:"total_ms"`
	Phases  []observ.PhaseReport `json:"phases"`
}

// WriteTimings prints a timer report either as a human summary or as a
// single JSON line.
func WriteTimings(w io.Writer, kind, path string, t *observ.Timer, asJSON bool) error {
	if t == nil {
		return nil
	}
	if kind == "" {
		kind = "render"
	}
	if !asJSON {
		header := fmt.Sprintf("timings (%s)", kind)
		if path != "" {
			header += ": " + path
		}
		_, err := fmt.Fprintf(w, "%s\n%s", header, t.Summary())
		return err
	}
	report := t.Report()
	data, err := json.Marshal(timingPayload{Kind: kind, Path: path, TotalMS: report.TotalMS, Phases: report.Phases})
	if err != nil {
		return errors.Errorf("encode timings: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
