package driver

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"symdisplay/internal/display"
	"symdisplay/internal/observ"
	"symdisplay/internal/project"
	"symdisplay/internal/source"
	"symdisplay/internal/symbols"
	"symdisplay/internal/trace"
)

// Request names one symbol to render. Minimal requests render relative to
// the scope at File:Offset.
type Request struct {
	Path    string
	Symbol  symbols.SymbolID
	Minimal bool
	File    source.FileID
	Offset  uint32
}

// Result is the rendering of one request. Missing is set when the path did
// not resolve; Parts is then empty.
type Result struct {
	Path    string        `json:"path" msgpack:"path"`
	Kind    string        `json:"kind" msgpack:"kind"`
	Text    string        `json:"text" msgpack:"text"`
	Parts   display.Parts `json:"parts" msgpack:"parts"`
	Missing bool          `json:"missing,omitempty" msgpack:"missing,omitempty"`
}

// Options configure RenderAll.
type Options struct {
	Format display.Format
	// Jobs bounds concurrent renderings; zero means GOMAXPROCS.
	Jobs int
	// Timer, when set, receives a "render" phase.
	Timer *observ.Timer
	// OnResult is called once per finished request from worker goroutines.
	OnResult func(Result)
}

// Requests builds requests for paths, or for every project entry when paths
// is empty.
func Requests(p *project.Project, paths []string, minimal bool, file source.FileID, offset uint32) []Request {
	if len(paths) == 0 {
		reqs := make([]Request, 0, len(p.Entries))
		for _, e := range p.Entries {
			reqs = append(reqs, Request{Path: e.Path, Symbol: e.ID, Minimal: minimal, File: file, Offset: offset})
		}
		return reqs
	}
	reqs := make([]Request, 0, len(paths))
	for _, path := range paths {
		id, _ := p.Lookup(path)
		reqs = append(reqs, Request{Path: path, Symbol: id, Minimal: minimal, File: file, Offset: offset})
	}
	return reqs
}

// RenderAll renders requests concurrently. Rendering only reads the table,
// so workers share it without locking. Results keep request order.
func RenderAll(ctx context.Context, tab *symbols.Table, reqs []Request, opts Options) ([]Result, error) {
	tracer := trace.FromContext(ctx)
	batch := trace.Begin(tracer, trace.ScopePhase, "render", trace.CurrentSpan(ctx))
	defer func() {
		batch.End(strconv.Itoa(len(reqs)) + " requests")
	}()
	if opts.Timer != nil {
		idx := opts.Timer.Begin("render")
		defer opts.Timer.End(idx, strconv.Itoa(len(reqs))+" requests")
	}

	results := make([]Result, len(reqs))
	if len(reqs) == 0 {
		return results, nil
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Indexes are unique per goroutine, no mutex needed.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(reqs)))
	for i, req := range reqs {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			span := trace.Begin(tracer, trace.ScopeRequest, "request:"+req.Path, batch.ID())
			results[i] = renderOne(tab, req, opts.Format)
			if tracer.Level() >= trace.LevelDebug {
				for _, part := range results[i].Parts {
					trace.Point(tracer, trace.ScopePart, part.Kind.String(), part.Text, span.ID())
				}
			}
			span.WithExtra("kind", results[i].Kind).End(results[i].Text)
			if opts.OnResult != nil {
				opts.OnResult(results[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func renderOne(tab *symbols.Table, req Request, f display.Format) Result {
	sym := tab.Get(req.Symbol)
	if sym == nil {
		return Result{Path: req.Path, Missing: true}
	}
	var parts display.Parts
	if req.Minimal {
		parts = display.ToMinimalParts(tab, req.Symbol, tab.ScopeAt(req.File, req.Offset), f)
	} else {
		parts = display.ToParts(tab, req.Symbol, f)
	}
	return Result{
		Path:  req.Path,
		Kind:  sym.Kind.String(),
		Text:  parts.String(),
		Parts: parts,
	}
}
