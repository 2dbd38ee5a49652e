package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"symdisplay/internal/display"
	"symdisplay/internal/observ"
	"symdisplay/internal/project"
	"symdisplay/internal/trace"
)

const manifest = `
[[namespace]]
name = "N"

  [[namespace.type]]
  name = "C"
  access = "public"

    [[namespace.type.member]]
    name = "M"
    access = "public"
    type = "int"
    params = [{ name = "x", type = "string" }]

    [[namespace.type.member]]
    kind = "field"
    name = "F"
    type = "bool"

  [[namespace.type]]
  name = "D"

[[scope]]
start = 10
end = 50
namespace = "N"
`

func loadProject(t *testing.T) *project.Project {
	t.Helper()
	m, err := project.Decode([]byte(manifest))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	p, err := project.Build(m)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return p
}

func TestRenderAllKeepsRequestOrder(t *testing.T) {
	p := loadProject(t)
	reqs := Requests(p, nil, false, project.DefaultFile, 0)
	if len(reqs) != len(p.Entries) {
		t.Fatalf("requests = %d, want %d", len(reqs), len(p.Entries))
	}

	var seen atomic.Int32
	timer := observ.NewTimer()
	results, err := RenderAll(context.Background(), p.Table, reqs, Options{
		Format:   display.ErrorMessageFormat,
		Jobs:     3,
		Timer:    timer,
		OnResult: func(Result) { seen.Add(1) },
	})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if int(seen.Load()) != len(reqs) {
		t.Fatalf("OnResult called %d times, want %d", seen.Load(), len(reqs))
	}
	for i, r := range results {
		if r.Path != reqs[i].Path {
			t.Fatalf("result %d path = %q, want %q", i, r.Path, reqs[i].Path)
		}
		want := display.ToString(p.Table, reqs[i].Symbol, display.ErrorMessageFormat)
		if r.Text != want || r.Parts.String() != want {
			t.Fatalf("result %d text = %q, want %q", i, r.Text, want)
		}
	}
	if report := timer.Report(); len(report.Phases) != 1 || report.Phases[0].Name != "render" {
		t.Fatalf("timer phases = %+v", report.Phases)
	}
}

func TestRenderNamedPaths(t *testing.T) {
	p := loadProject(t)
	reqs := Requests(p, []string{"N.C.M", "N.Nope"}, false, project.DefaultFile, 0)
	results, err := RenderAll(context.Background(), p.Table, reqs, Options{Format: display.ErrorMessageFormat})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if got := results[0].Text; got != "N.C.M(string)" {
		t.Fatalf("M = %q", got)
	}
	if results[0].Kind != "method" {
		t.Fatalf("kind = %q", results[0].Kind)
	}
	if !results[1].Missing || len(results[1].Parts) != 0 {
		t.Fatalf("missing path rendered: %+v", results[1])
	}
}

func TestRenderMinimal(t *testing.T) {
	p := loadProject(t)
	f := display.NewFormat(display.Qualify(display.NameAndContainingTypesAndNamespaces))
	inside := Requests(p, []string{"N.D"}, true, project.DefaultFile, 20)
	outside := Requests(p, []string{"N.D"}, true, project.DefaultFile, 60)

	results, err := RenderAll(context.Background(), p.Table, append(inside, outside...), Options{Format: f})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	if results[0].Text != "D" || results[1].Text != "N.D" {
		t.Fatalf("minimal = %q, %q", results[0].Text, results[1].Text)
	}
}

func TestRenderAllTraces(t *testing.T) {
	p := loadProject(t)
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)

	if _, err := RenderAll(ctx, p.Table, Requests(p, []string{"N.C"}, false, 0, 0), Options{}); err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	var names []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindSpanBegin {
			names = append(names, ev.Name)
		}
	}
	if strings.Join(names, ",") != "render,request:N.C" {
		t.Fatalf("spans = %v", names)
	}
}

func TestRenderAllTracesPartsAtDebug(t *testing.T) {
	p := loadProject(t)
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	results, err := RenderAll(ctx, p.Table, Requests(p, []string{"N.C.F"}, false, 0, 0), Options{Format: display.ErrorMessageFormat})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	var texts []string
	for _, ev := range ring.Snapshot() {
		if ev.Kind == trace.KindPoint && ev.Scope == trace.ScopePart {
			texts = append(texts, ev.Detail)
		}
	}
	if strings.Join(texts, "") != results[0].Text {
		t.Fatalf("part points = %q, text = %q", texts, results[0].Text)
	}
}

func TestRenderAllCanceled(t *testing.T) {
	p := loadProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RenderAll(ctx, p.Table, Requests(p, nil, false, 0, 0), Options{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestExportFormats(t *testing.T) {
	p := loadProject(t)
	results, err := RenderAll(context.Background(), p.Table, Requests(p, []string{"N.C.F"}, false, 0, 0), Options{
		Format: display.NewFormat(display.Members(display.MemberIncludeType), display.Misc(display.UseSpecialTypes)),
	})
	if err != nil {
		t.Fatalf("RenderAll: %v", err)
	}
	batch := &Batch{Manifest: "m.toml", Results: results}

	var mp bytes.Buffer
	if err := EncodeMsgpack(&mp, batch); err != nil {
		t.Fatalf("EncodeMsgpack: %v", err)
	}
	decoded, err := DecodeMsgpack(&mp)
	if err != nil {
		t.Fatalf("DecodeMsgpack: %v", err)
	}
	if decoded.Results[0].Text != "bool F" || len(decoded.Results[0].Parts) != 3 {
		t.Fatalf("decoded = %+v", decoded.Results[0])
	}

	var js bytes.Buffer
	if err := WriteJSON(&js, batch); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	var out struct {
		Results []struct {
			Parts []struct {
				Kind string `json:"kind"`
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"results"`
	}
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatalf("json: %v", err)
	}
	kinds := make([]string, 0, 3)
	for _, part := range out.Results[0].Parts {
		kinds = append(kinds, part.Kind)
	}
	if strings.Join(kinds, ",") != "Keyword,Space,FieldName" {
		t.Fatalf("kinds = %v", kinds)
	}
}

func TestDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	p := loadProject(t)
	reqs := Requests(p, nil, false, 0, 0)
	key := CacheKey(project.HashContent([]byte(manifest)), display.MinimalFormat, reqs)
	if other := CacheKey(project.HashContent([]byte(manifest)), display.VerboseFormat, reqs); other == key {
		t.Fatal("format does not affect the cache key")
	}

	if _, ok, err := cache.Get(key); err != nil || ok {
		t.Fatalf("empty cache hit: ok=%v err=%v", ok, err)
	}
	results := []Result{{Path: "N.C", Kind: "type", Text: "C", Parts: display.Parts{{Kind: display.PartClassName, Text: "C"}}}}
	if err := cache.Put(key, results); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, ok, err := cache.Get(key)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Text != "C" || got[0].Parts[0].Kind != display.PartClassName {
		t.Fatalf("cached = %+v", got)
	}

	if err := cache.DropAll(); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if _, ok, _ := cache.Get(key); ok {
		t.Fatal("hit after DropAll")
	}
	var nilCache *DiskCache
	if err := nilCache.Put(key, results); err != nil {
		t.Fatalf("nil put: %v", err)
	}
}

func TestWriteTimings(t *testing.T) {
	timer := observ.NewTimer()
	timer.End(timer.Begin("load"), "m.toml")

	var buf bytes.Buffer
	if err := WriteTimings(&buf, "", "m.toml", timer, true); err != nil {
		t.Fatalf("WriteTimings: %v", err)
	}
	var payload timingPayload
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("json: %v", err)
	}
	if payload.Kind != "render" || payload.Path != "m.toml" || len(payload.Phases) != 1 {
		t.Fatalf("payload = %+v", payload)
	}

	buf.Reset()
	if err := WriteTimings(&buf, "batch", "", timer, false); err != nil {
		t.Fatalf("WriteTimings: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "timings (batch)\ntimings:\n  load") {
		t.Fatalf("summary = %q", buf.String())
	}
}
