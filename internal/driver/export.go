package driver

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/display"
	"symdisplay/internal/observ"
)

// Batch is the exported form of one render run.
type Batch struct {
	Manifest string         `json:"manifest,omitempty" msgpack:"manifest,omitempty"`
	Digest   string         `json:"digest,omitempty" msgpack:"digest,omitempty"`
	Results  []Result       `json:"results" msgpack:"results"`
	Timings  *observ.Report `json:"timings,omitempty" msgpack:"timings,omitempty"`
}

// EncodeMsgpack writes b in msgpack form.
func EncodeMsgpack(w io.Writer, b *Batch) error {
	if err := msgpack.NewEncoder(w).Encode(b); err != nil {
		return errors.Errorf("encode msgpack: %w", err)
	}
	return nil
}

// DecodeMsgpack reads a batch written by EncodeMsgpack.
func DecodeMsgpack(r io.Reader) (*Batch, error) {
	var b Batch
	if err := msgpack.NewDecoder(r).Decode(&b); err != nil {
		return nil, errors.Errorf("decode msgpack: %w", err)
	}
	return &b, nil
}

type jsonPart struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type jsonResult struct {
	Path    string     `json:"path"`
	Kind    string     `json:"kind,omitempty"`
	Text    string     `json:"text"`
	Parts   []jsonPart `json:"parts"`
	Missing bool       `json:"missing,omitempty"`
}

type jsonBatch struct {
	Manifest string         `json:"manifest,omitempty"`
	Digest   string         `json:"digest,omitempty"`
	Results  []jsonResult   `json:"results"`
	Timings  *observ.Report `json:"timings,omitempty"`
}

// WriteJSON writes b as indented JSON with part kinds spelled by name.
func WriteJSON(w io.Writer, b *Batch) error {
	out := jsonBatch{Manifest: b.Manifest, Digest: b.Digest, Timings: b.Timings, Results: make([]jsonResult, len(b.Results))}
	for i, r := range b.Results {
		out.Results[i] = jsonResult{Path: r.Path, Kind: r.Kind, Text: r.Text, Parts: namedParts(r.Parts), Missing: r.Missing}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return errors.Errorf("encode json: %w", err)
	}
	return nil
}

func namedParts(parts display.Parts) []jsonPart {
	out := make([]jsonPart, len(parts))
	for i, p := range parts {
		out[i] = jsonPart{Kind: p.Kind.String(), Text: p.Text}
	}
	return out
}
