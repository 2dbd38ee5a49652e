package driver

import (
	"context"
	"strconv"

	"symdisplay/internal/observ"
	"symdisplay/internal/project"
	"symdisplay/internal/trace"
)

// Load builds the project at path inside a "load" phase.
func Load(ctx context.Context, path string, timer *observ.Timer) (*project.Project, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePhase, "load", trace.CurrentSpan(ctx))
	if timer != nil {
		idx := timer.Begin("load")
		defer timer.End(idx, path)
	}
	p, err := project.Load(path)
	if err != nil {
		span.End("failed")
		return nil, err
	}
	span.WithExtra("entries", strconv.Itoa(len(p.Entries))).End(p.Digest.String()[:12])
	return p, nil
}
