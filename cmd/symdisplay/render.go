package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/display"
	"symdisplay/internal/driver"
	"symdisplay/internal/observ"
	"symdisplay/internal/project"
	"symdisplay/internal/source"
	"symdisplay/internal/ui"
)

var renderCmd = &cobra.Command{
	Use:   "render [symbol-path...]",
	Short: "Render manifest symbols as display strings",
	Long: `Render loads the manifest and renders the named symbols, or every
declared symbol when no path is given. Paths are dotted declaration paths
such as N.C.M; overloads are addressed as N.C.M#2.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("manifest", "m", "", "manifest file or directory (default: search upward for symdisplay.toml)")
	renderCmd.Flags().String("format", "", "format preset (minimal|fully-qualified|error-message|verbose); default is the manifest [format]")
	renderCmd.Flags().StringSlice("set", nil, "format override as group=option (repeatable)")
	renderCmd.Flags().String("at", "", "render minimally relative to the scope at [file:]offset")
	renderCmd.Flags().String("emit", "text", "output (text|parts|json|msgpack)")
	renderCmd.Flags().Int("jobs", 0, "concurrent renderings (0 = GOMAXPROCS)")
	renderCmd.Flags().Bool("cache", false, "reuse renderings from the user cache directory")
	renderCmd.Flags().String("progress", "off", "show a progress view on stderr (auto|on|off)")
}

type renderFlags struct {
	manifest string
	preset   string
	sets     []string
	at       string
	emit     string
	jobs     int
	cache    bool
	progress uiMode
}

func readRenderFlags(cmd *cobra.Command) (renderFlags, error) {
	var rf renderFlags
	var err error
	if rf.manifest, err = cmd.Flags().GetString("manifest"); err != nil {
		return rf, err
	}
	if rf.preset, err = cmd.Flags().GetString("format"); err != nil {
		return rf, err
	}
	if rf.sets, err = cmd.Flags().GetStringSlice("set"); err != nil {
		return rf, err
	}
	if rf.at, err = cmd.Flags().GetString("at"); err != nil {
		return rf, err
	}
	if rf.emit, err = cmd.Flags().GetString("emit"); err != nil {
		return rf, err
	}
	switch rf.emit {
	case "text", "parts", "json", "msgpack":
	default:
		return rf, errors.Errorf("unsupported --emit %q (must be text, parts, json or msgpack)", rf.emit)
	}
	if rf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return rf, err
	}
	if rf.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return rf, err
	}
	progress, err := cmd.Flags().GetString("progress")
	if err != nil {
		return rf, err
	}
	if rf.progress, err = readUIMode("progress", progress); err != nil {
		return rf, err
	}
	return rf, nil
}

func runRender(cmd *cobra.Command, args []string) error {
	rf, err := readRenderFlags(cmd)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}

	path, err := project.ResolveManifest(rf.manifest)
	if err != nil {
		return err
	}
	var timer *observ.Timer
	if timingsEnabled(cmd) {
		timer = observ.NewTimer()
	}
	ctx := cmd.Context()
	p, err := driver.Load(ctx, path, timer)
	if err != nil {
		return err
	}
	f, err := renderFormat(p.Format, rf.preset, rf.sets)
	if err != nil {
		return err
	}
	minimal, file, offset, err := parseAt(rf.at)
	if err != nil {
		return err
	}
	reqs := driver.Requests(p, args, minimal, file, offset)

	var cache *driver.DiskCache
	if rf.cache {
		if cache, err = driver.OpenDiskCache("symdisplay"); err != nil {
			return err
		}
	}
	key := driver.CacheKey(p.Digest, f, reqs)
	results, hit, err := cache.Get(key)
	if err != nil {
		return err
	}
	if !hit {
		showProgress := rf.progress.enabled(os.Stderr) && !quiet(cmd) && len(reqs) > 1
		results, err = renderWithProgress(ctx, p, reqs, driver.Options{Format: f, Jobs: rf.jobs, Timer: timer}, showProgress)
		if err != nil {
			return err
		}
		if err := cache.Put(key, results); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch rf.emit {
	case "json", "msgpack":
		batch := &driver.Batch{Manifest: path, Digest: p.Digest.String(), Results: results}
		if timer != nil {
			report := timer.Report()
			batch.Timings = &report
		}
		if rf.emit == "json" {
			err = driver.WriteJSON(out, batch)
		} else {
			err = driver.EncodeMsgpack(out, batch)
		}
		if err != nil {
			return err
		}
	default:
		writeResults(out, results, rf.emit == "parts", colored)
		if timer != nil {
			if err := driver.WriteTimings(cmd.ErrOrStderr(), "render", path, timer, false); err != nil {
				return err
			}
		}
	}

	missing := 0
	for _, r := range results {
		if r.Missing {
			missing++
			if !quiet(cmd) {
				fmt.Fprintf(cmd.ErrOrStderr(), "symbol not found: %s\n", r.Path)
			}
		}
	}
	if missing > 0 {
		return errors.Errorf("%d of %d symbols not found", missing, len(results))
	}
	return nil
}

// renderFormat starts from the manifest format, or from preset when given,
// and applies group=option overrides in order.
func renderFormat(base display.Format, preset string, sets []string) (display.Format, error) {
	f := base
	if preset != "" {
		var ok bool
		if f, ok = display.Preset(preset); !ok {
			return f, errors.WithDetails(display.ErrUnknownOption, "group", "preset", "option", preset)
		}
	}
	for _, s := range sets {
		group, name, ok := strings.Cut(s, "=")
		if !ok {
			return f, errors.Errorf("invalid --set %q (expected group=option)", s)
		}
		var err error
		if f, err = f.Set(strings.TrimSpace(group), strings.TrimSpace(name)); err != nil {
			return f, err
		}
	}
	return f, nil
}

// parseAt reads "[file:]offset". An empty value disables minimal rendering.
func parseAt(at string) (bool, source.FileID, uint32, error) {
	if at == "" {
		return false, 0, 0, nil
	}
	file := uint64(project.DefaultFile)
	offText := at
	if fileText, rest, ok := strings.Cut(at, ":"); ok {
		n, err := strconv.ParseUint(fileText, 10, 32)
		if err != nil {
			return false, 0, 0, errors.Errorf("invalid --at file %q: %w", fileText, err)
		}
		file, offText = n, rest
	}
	offset, err := strconv.ParseUint(offText, 10, 32)
	if err != nil {
		return false, 0, 0, errors.Errorf("invalid --at offset %q: %w", offText, err)
	}
	return true, source.FileID(file), uint32(offset), nil
}

type renderOutcome struct {
	results []driver.Result
	err     error
}

// renderWithProgress runs the batch while a Bubble Tea view on stderr
// consumes per-request steps.
func renderWithProgress(ctx context.Context, p *project.Project, reqs []driver.Request, opts driver.Options, show bool) ([]driver.Result, error) {
	if !show {
		return driver.RenderAll(ctx, p.Table, reqs, opts)
	}
	steps := make(chan ui.Step, 256)
	outcome := make(chan renderOutcome, 1)
	opts.OnResult = func(r driver.Result) {
		steps <- ui.Step{Label: r.Path, Failed: r.Missing}
	}
	go func() {
		results, err := driver.RenderAll(ctx, p.Table, reqs, opts)
		close(steps)
		outcome <- renderOutcome{results: results, err: err}
	}()
	uiErr := ui.RunProgress("rendering", len(reqs), steps, os.Stderr)
	for range steps {
	}
	res := <-outcome
	if uiErr != nil && res.err == nil {
		return res.results, uiErr
	}
	return res.results, res.err
}

func writeResults(out io.Writer, results []driver.Result, parts bool, colored bool) {
	theme := ui.DefaultTheme()
	for _, r := range results {
		if r.Missing {
			continue
		}
		if !parts {
			fmt.Fprintln(out, ui.Highlight(r.Parts, theme, colored))
			continue
		}
		fmt.Fprintf(out, "%s\n", r.Path)
		for _, part := range r.Parts {
			fmt.Fprintf(out, "  %-24s %q\n", part.Kind, part.Text)
		}
	}
}
