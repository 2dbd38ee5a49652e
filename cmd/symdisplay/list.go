package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"symdisplay/internal/driver"
	"symdisplay/internal/project"
	"symdisplay/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List declared symbols with their kind and rendering",
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringP("manifest", "m", "", "manifest file or directory (default: search upward for symdisplay.toml)")
	listCmd.Flags().String("format", "error-message", "format preset for the display column")
	listCmd.Flags().String("kind", "", "only list symbols of this kind (type, method, field, ...)")
	listCmd.Flags().Int("width", 48, "maximum width of the path and kind columns")
}

func runList(cmd *cobra.Command, args []string) error {
	manifest, err := cmd.Flags().GetString("manifest")
	if err != nil {
		return err
	}
	preset, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	width, err := cmd.Flags().GetInt("width")
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

	path, err := project.ResolveManifest(manifest)
	if err != nil {
		return err
	}
	p, err := driver.Load(cmd.Context(), path, nil)
	if err != nil {
		return err
	}
	f, err := renderFormat(p.Format, preset, nil)
	if err != nil {
		return err
	}
	results, err := driver.RenderAll(cmd.Context(), p.Table, driver.Requests(p, nil, false, 0, 0), driver.Options{Format: f})
	if err != nil {
		return err
	}

	table := ui.NewTable(width, "PATH", "KIND", "DISPLAY")
	theme := ui.DefaultTheme()
	for _, r := range results {
		if kind != "" && r.Kind != kind {
			continue
		}
		table.Add(r.Path, r.Kind, ui.Highlight(r.Parts, theme, colored))
	}
	if table.Len() == 0 {
		if !quiet(cmd) {
			fmt.Fprintln(cmd.ErrOrStderr(), "no symbols")
		}
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), table.String())
	return nil
}
