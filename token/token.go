// Package token defines the design-token data model shared by the
// validation and resolution packages: the Token record, its scope tuple,
// the closed set of token types, and alias-literal recognition.
package token

import (
	"fmt"
	"sort"
	"strings"
)

// Type identifies a token's value grammar.
type Type string

// Known token types. Values outside this set are treated as unknown and
// are accepted or rejected according to the active type policy.
const (
	TypeColor       Type = "color"
	TypeDimension   Type = "dimension"
	TypeDuration    Type = "duration"
	TypeFontWeight  Type = "font-weight"
	TypeCubicBezier Type = "cubic-bezier"
	TypeNumber      Type = "number"
	TypeFontFamily  Type = "font-family"
	TypeString      Type = "string"
)

// Known reports whether t is one of the closed set of token types.
func (t Type) Known() bool {
	switch t {
	case TypeColor, TypeDimension, TypeDuration, TypeFontWeight,
		TypeCubicBezier, TypeNumber, TypeFontFamily, TypeString:
		return true
	}
	return false
}

// Level identifies the tier a token lives at. Lower Priority wins during
// inheritance resolution: brand overrides project overrides global.
type Level string

const (
	LevelGlobal  Level = "global"
	LevelProject Level = "project"
	LevelBrand   Level = "brand"
)

// Priority returns the override priority for the level (lower wins).
func (l Level) Priority() int {
	switch l {
	case LevelBrand:
		return 1
	case LevelProject:
		return 2
	default:
		return 3
	}
}

// Scope is the (organization, project, brand) tuple identifying where a
// token lives. Exactly one of Project/Brand is set for non-global tokens;
// a brand scope carries its owning project as well.
type Scope struct {
	Level   Level  `json:"level" yaml:"level"`
	Org     string `json:"org,omitempty" yaml:"org,omitempty"`
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
	Brand   string `json:"brand,omitempty" yaml:"brand,omitempty"`
}

// GlobalScope returns the scope for organization-wide tokens.
func GlobalScope(org string) Scope {
	return Scope{Level: LevelGlobal, Org: org}
}

// ProjectScope returns the brand-less scope for project tokens.
func ProjectScope(org, project string) Scope {
	return Scope{Level: LevelProject, Org: org, Project: project}
}

// BrandScope returns the scope for brand tokens within a project.
func BrandScope(org, project, brand string) Scope {
	return Scope{Level: LevelBrand, Org: org, Project: project, Brand: brand}
}

// Validate checks the scope invariants: a global scope carries no project
// or brand identifier, a project scope carries no brand, and a brand scope
// names its brand.
func (s Scope) Validate() error {
	switch s.Level {
	case LevelGlobal:
		if s.Project != "" || s.Brand != "" {
			return fmt.Errorf("global scope must not carry project or brand (got project=%q brand=%q)", s.Project, s.Brand)
		}
	case LevelProject:
		if s.Project == "" {
			return fmt.Errorf("project scope requires a project identifier")
		}
		if s.Brand != "" {
			return fmt.Errorf("project scope must not carry a brand (got %q)", s.Brand)
		}
	case LevelBrand:
		if s.Project == "" || s.Brand == "" {
			return fmt.Errorf("brand scope requires project and brand identifiers")
		}
	default:
		return fmt.Errorf("unknown scope level: %q", s.Level)
	}
	return nil
}

// Key returns the unique storage key for a token path within this scope.
// Uniqueness is keyed on the full scope tuple plus path.
func (s Scope) Key(path string) string {
	return strings.Join([]string{s.Org, s.Project, s.Brand, path}, "/")
}

// Token is the unit of design-token configuration.
type Token struct {
	// Path is a dot-delimited sequence of kebab-case segments, e.g.
	// "color.primary.500". Unique within its scope.
	Path string `json:"path" yaml:"path"`

	// Type selects the value grammar. Unknown types are carried as-is.
	Type Type `json:"type" yaml:"type"`

	// Value is either a literal conforming to Type's grammar or an alias
	// of the exact form "{other.token.path}".
	Value string `json:"value" yaml:"value"`

	// Description is optional documentation for the token.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	Scope Scope `json:"scope" yaml:"scope"`
}

// Alias reports whether value is an alias literal of the exact form
// "{path}" and returns the referenced path. Partial or interpolated
// references ("a{b}c") are not aliases.
func Alias(value string) (string, bool) {
	if len(value) < 3 || value[0] != '{' || value[len(value)-1] != '}' {
		return "", false
	}
	inner := value[1 : len(value)-1]
	if strings.ContainsAny(inner, "{}") {
		return "", false
	}
	return inner, true
}

// AliasLiteral wraps a path in braces, the inverse of Alias.
func AliasLiteral(path string) string {
	return "{" + path + "}"
}

// IsAlias reports whether the token's value defers to another token.
func (t Token) IsAlias() bool {
	_, ok := Alias(t.Value)
	return ok
}

// Set is a flat collection of tokens indexed by path. It is the lookup
// target for alias-existence and cycle checks.
type Set struct {
	byPath map[string][]Token
	order  []string
}

// NewSet builds a Set from a flat token list. Insertion order is preserved
// per path so that same-priority ties resolve deterministically.
func NewSet(tokens []Token) *Set {
	s := &Set{byPath: make(map[string][]Token, len(tokens))}
	for _, t := range tokens {
		if _, seen := s.byPath[t.Path]; !seen {
			s.order = append(s.order, t.Path)
		}
		s.byPath[t.Path] = append(s.byPath[t.Path], t)
	}
	return s
}

// Lookup returns the first-inserted token at path.
func (s *Set) Lookup(path string) (Token, bool) {
	ts := s.byPath[path]
	if len(ts) == 0 {
		return Token{}, false
	}
	return ts[0], true
}

// All returns every token at path, in insertion order.
func (s *Set) All(path string) []Token {
	return s.byPath[path]
}

// Len returns the total number of tokens in the set.
func (s *Set) Len() int {
	n := 0
	for _, ts := range s.byPath {
		n += len(ts)
	}
	return n
}

// Paths returns the distinct paths in the set, sorted.
func (s *Set) Paths() []string {
	paths := make([]string, len(s.order))
	copy(paths, s.order)
	sort.Strings(paths)
	return paths
}
