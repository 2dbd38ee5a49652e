package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information, overridable with -ldflags "-X symdisplay/internal/version.Version=...".
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each semver component in its own colour.
// Colour output follows color.NoColor.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// String is the plain one-line version banner.
func String() string {
	var sb strings.Builder
	sb.WriteString("symdisplay ")
	sb.WriteString(Version)
	if GitCommit != "" {
		sb.WriteString(" (")
		sb.WriteString(GitCommit)
		if BuildDate != "" {
			sb.WriteString(", ")
			sb.WriteString(BuildDate)
		}
		sb.WriteString(")")
	}
	return sb.String()
}
