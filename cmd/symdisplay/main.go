package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"symdisplay/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "symdisplay",
	Short: "Render symbols and literals the way a compiler shows them",
	Long: `symdisplay loads a symdisplay.toml symbol manifest and renders its
declarations as classified display parts or plain text.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(literalCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
}

// main executes the root command. Any command error exits with status 1.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
