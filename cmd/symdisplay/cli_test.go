package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"gitlab.com/tozd/go/errors"

	"symdisplay/internal/display"
	"symdisplay/internal/project"
)

const testManifest = `
[format]
preset = "error-message"

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
`

func writeManifest(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), project.ManifestName)
	if err := os.WriteFile(path, []byte(testManifest), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

// execute runs the root command and restores every flag to its default
// afterwards, since cobra keeps flag state between executions.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	err := rootCmd.Execute()

	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			if f.Value.Type() == "stringSlice" {
				return
			}
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(rootCmd.PersistentFlags())
	for _, c := range rootCmd.Commands() {
		reset(c.Flags())
	}
	return out.String(), err
}

func TestRenderCommand(t *testing.T) {
	path := writeManifest(t)
	out, err := execute(t, "render", "-m", path, "--color", "off", "N.C.M", "N.C.F")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "N.C.M(string)\nN.C.F\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderCommandJSON(t *testing.T) {
	path := writeManifest(t)
	out, err := execute(t, "render", "-m", path, "--color", "off", "--emit", "json", "N.C")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	var batch struct {
		Manifest string `json:"manifest"`
		Results  []struct {
			Text string `json:"text"`
			Kind string `json:"kind"`
		} `json:"results"`
	}
	if err := json.Unmarshal([]byte(out), &batch); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if batch.Manifest != path || len(batch.Results) != 1 || batch.Results[0].Text != "N.C" {
		t.Fatalf("batch = %+v", batch)
	}
}

func TestRenderCommandMissingSymbol(t *testing.T) {
	path := writeManifest(t)
	if _, err := execute(t, "render", "-m", path, "--quiet", "N.Nope"); err == nil {
		t.Fatal("expected an error for an unknown symbol")
	}
}

func TestListCommand(t *testing.T) {
	path := writeManifest(t)
	out, err := execute(t, "list", "-m", path, "--color", "off", "--kind", "method")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "PATH") {
		t.Fatalf("list = %q", out)
	}
	if fields := strings.Fields(lines[1]); len(fields) != 3 || fields[0] != "N.C.M" || fields[2] != "N.C.M(string)" {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestLiteralCommand(t *testing.T) {
	out, err := execute(t, "literal", "ulong", "0xFFFFFFFFFFFFFFFF")
	if err != nil || out != "18446744073709551615\n" {
		t.Fatalf("ulong = %q, %v", out, err)
	}
	out, err = execute(t, "literal", "--quote", "string", `say "hi"`)
	if err != nil || out != `"say \"hi\""`+"\n" {
		t.Fatalf("string = %q, %v", out, err)
	}
	if _, err := execute(t, "literal", "sbyte", "300"); err == nil {
		t.Fatal("expected overflow error")
	}
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	var payload versionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("json: %v", err)
	}
	if payload.Tool != "symdisplay" || payload.Version == "" {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestRenderFormat(t *testing.T) {
	f, err := renderFormat(display.MinimalFormat, "", []string{"qualification=FullyQualified"})
	if err != nil {
		t.Fatalf("renderFormat: %v", err)
	}
	if f.Qualification() != display.FullyQualified {
		t.Fatalf("qualification = %v", f.Qualification())
	}
	if _, err := renderFormat(display.MinimalFormat, "nope", nil); !errors.Is(err, display.ErrUnknownOption) {
		t.Fatalf("preset err = %v", err)
	}
	if _, err := renderFormat(display.MinimalFormat, "", []string{"qualification"}); err == nil {
		t.Fatal("expected error for missing option")
	}
}

func TestParseAt(t *testing.T) {
	if minimal, _, _, err := parseAt(""); err != nil || minimal {
		t.Fatalf("empty: minimal=%v err=%v", minimal, err)
	}
	minimal, file, offset, err := parseAt("42")
	if err != nil || !minimal || file != project.DefaultFile || offset != 42 {
		t.Fatalf("42 = %v %v %v %v", minimal, file, offset, err)
	}
	_, file, offset, err = parseAt("2:7")
	if err != nil || file != 2 || offset != 7 {
		t.Fatalf("2:7 = %v %v %v", file, offset, err)
	}
	if _, _, _, err := parseAt("x"); err == nil {
		t.Fatal("expected error")
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode("color", in)
		if err != nil || got != want {
			t.Fatalf("%q = %v, %v", in, got, err)
		}
	}
	if _, err := readUIMode("color", "maybe"); err == nil {
		t.Fatal("expected error")
	}
	if !uiModeOn.enabled(os.Stdout) || uiModeOff.enabled(os.Stdout) {
		t.Fatal("explicit modes ignored the flag")
	}
}
