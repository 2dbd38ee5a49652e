package project

import (
	"os"

	"github.com/BurntSushi/toml"
	"gitlab.com/tozd/go/errors"
)

// ManifestName is the file FindManifest looks for.
const ManifestName = "symdisplay.toml"

// ErrManifest wraps every manifest decoding or declaration problem.
var ErrManifest = errors.Base("invalid manifest")

// Manifest is the decoded form of a symbol-graph manifest.
type Manifest struct {
	Format     FormatSection   `toml:"format"`
	Namespaces []NamespaceDecl `toml:"namespace"`
	Types      []TypeDecl      `toml:"type"`
	Aliases    []AliasDecl     `toml:"alias"`
	Scopes     []ScopeDecl     `toml:"scope"`
}

// FormatSection names a preset and per-group option overrides. Enumerated
// groups take a single name; flag groups take a list that is OR-ed onto the
// preset.
type FormatSection struct {
	Preset        string   `toml:"preset"`
	Qualification string   `toml:"qualification"`
	Global        string   `toml:"global"`
	Delegate      string   `toml:"delegate"`
	Extension     string   `toml:"extension"`
	Property      string   `toml:"property"`
	Generics      []string `toml:"generics"`
	Members       []string `toml:"members"`
	Parameters    []string `toml:"parameters"`
	Kinds         []string `toml:"kinds"`
	Locals        []string `toml:"locals"`
	Misc          []string `toml:"misc"`
	Internal      []string `toml:"internal"`
}

type NamespaceDecl struct {
	Name  string     `toml:"name"`
	Types []TypeDecl `toml:"type"`
}

// TypeDecl declares a named type. Nested types live under Types.
type TypeDecl struct {
	Name        string              `toml:"name"`
	Kind        string              `toml:"kind"`
	Access      string              `toml:"access"`
	Modifiers   []string            `toml:"modifiers"`
	TypeParams  []string            `toml:"type_params"`
	Constraints map[string][]string `toml:"constraints"`
	Flags       bool                `toml:"flags"`
	Attribute   bool                `toml:"attribute"`
	Underlying  string              `toml:"underlying"`
	Returns     string              `toml:"returns"`
	Params      []ParamDecl         `toml:"params"`
	Members     []MemberDecl        `toml:"member"`
	Types       []TypeDecl          `toml:"type"`
}

// MemberDecl declares a member of a type. Kind selects which fields apply.
type MemberDecl struct {
	Kind        string              `toml:"kind"`
	Name        string              `toml:"name"`
	Type        string              `toml:"type"`
	Ref         string              `toml:"ref"`
	Access      string              `toml:"access"`
	Modifiers   []string            `toml:"modifiers"`
	TypeParams  []string            `toml:"type_params"`
	Constraints map[string][]string `toml:"constraints"`
	Params      []ParamDecl         `toml:"params"`
	Value       any                 `toml:"value"`
	Accessors   []string            `toml:"accessors"`
	Interface   string              `toml:"interface"`
	Extension   bool                `toml:"extension"`
	ReducedOn   string              `toml:"reduced_on"`
	Implicit    bool                `toml:"implicit"`
	Checked     bool                `toml:"checked"`
	Locals      []LocalDecl         `toml:"locals"`
}

type ParamDecl struct {
	Name     string `toml:"name"`
	Type     string `toml:"type"`
	Ref      string `toml:"ref"`
	Default  any    `toml:"default"`
	Optional bool   `toml:"optional"`
	Params   bool   `toml:"params"`
	This     bool   `toml:"this"`
	Scoped   bool   `toml:"scoped"`
}

// LocalDecl declares a local of a method. Kind is "local" (default),
// "range" or "label".
type LocalDecl struct {
	Kind  string `toml:"kind"`
	Name  string `toml:"name"`
	Type  string `toml:"type"`
	Ref   string `toml:"ref"`
	Value any    `toml:"value"`
}

type AliasDecl struct {
	Name   string `toml:"name"`
	Target string `toml:"target"`
	File   uint32 `toml:"file"`
}

// ScopeDecl declares a lexical region of a file. A scope owned by a
// namespace or type nests inside the smallest declared scope enclosing its
// span.
type ScopeDecl struct {
	File      uint32   `toml:"file"`
	Start     uint32   `toml:"start"`
	End       uint32   `toml:"end"`
	Namespace string   `toml:"namespace"`
	Type      string   `toml:"type"`
	Method    string   `toml:"method"`
	Imports   []string `toml:"imports"`
	Aliases   []string `toml:"aliases"`
}

// Decode parses manifest text. Unknown keys are rejected so typos in option
// or member fields do not silently drop declarations.
func Decode(data []byte) (*Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.WrapWith(err, ErrManifest)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errors.WithDetails(ErrManifest, "unknown_keys", keys)
	}
	return &m, nil
}

// ReadManifest reads and decodes the manifest at path.
func ReadManifest(path string) (*Manifest, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.Errorf("%s: %w", path, err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, nil, errors.Errorf("%s: %w", path, err)
	}
	return m, data, nil
}
