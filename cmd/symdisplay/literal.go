package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/language"

	"symdisplay/internal/literal"
	"symdisplay/internal/project"
)

var literalCmd = &cobra.Command{
	Use:   "literal <kind> [value]",
	Short: "Format a single literal value",
	Long: `Literal formats value as a constant of kind, one of bool, char, sbyte,
byte, short, ushort, int, uint, long, ulong, float, double, decimal, string
or null. Integers accept 0x, 0b and 0o prefixes.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLiteral,
}

func init() {
	literalCmd.Flags().Bool("quote", false, "quote strings and chars")
	literalCmd.Flags().Bool("escape", false, "escape non-printable characters")
	literalCmd.Flags().Bool("hex", false, "print integers in hexadecimal")
	literalCmd.Flags().Bool("code-points", false, "include code points for chars")
	literalCmd.Flags().Bool("suffix", false, "append type suffixes (U, L, UL, F, D, M)")
	literalCmd.Flags().String("culture", "", "BCP 47 tag for culture-sensitive number formatting")
}

func literalOptions(cmd *cobra.Command) (literal.Options, error) {
	var opts literal.Options
	for _, f := range []struct {
		name string
		bit  literal.Options
	}{
		{"quote", literal.UseQuotes},
		{"escape", literal.EscapeNonPrintableCharacters},
		{"hex", literal.UseHexadecimalNumbers},
		{"code-points", literal.IncludeCodePoints},
		{"suffix", literal.IncludeTypeSuffix},
	} {
		on, err := cmd.Flags().GetBool(f.name)
		if err != nil {
			return 0, err
		}
		if on {
			opts |= f.bit
		}
	}
	return opts, nil
}

func runLiteral(cmd *cobra.Command, args []string) error {
	opts, err := literalOptions(cmd)
	if err != nil {
		return err
	}
	culture, err := cmd.Flags().GetString("culture")
	if err != nil {
		return err
	}
	formatter := literal.Invariant
	if culture != "" {
		tag, err := language.Parse(culture)
		if err != nil {
			return errors.Errorf("invalid --culture %q: %w", culture, err)
		}
		formatter = literal.Formatter{Culture: tag}
		opts |= literal.UseCurrentCulture
	}

	text := ""
	if len(args) == 2 {
		text = args[1]
	}
	v, err := project.ParseLiteral(args[0], text)
	if err != nil {
		return errors.Errorf("%s %q: %w", args[0], text, err)
	}
	out, ok := formatter.Format(v, opts)
	if !ok {
		return errors.Errorf("cannot format %T", v)
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
