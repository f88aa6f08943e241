// Package rules defines the validation-rule configuration consumed by the
// token validators and the scope-hierarchy resolver that selects the
// effective rule set for a given project or brand.
package rules

import "fmt"

// NamingPolicy controls token-path validation.
type NamingPolicy struct {
	// EnforceKebabCase requires every path segment to be lowercase
	// kebab-case.
	EnforceKebabCase bool `json:"enforce_kebab_case" yaml:"enforce_kebab_case"`

	// MinSegments is the minimum number of dot-delimited segments.
	MinSegments int `json:"min_segments" yaml:"min_segments"`

	// MaxSegments caps the segment count; 0 means no cap.
	MaxSegments int `json:"max_segments,omitempty" yaml:"max_segments,omitempty"`

	// RequireDescription emits a warning for tokens without one.
	RequireDescription bool `json:"require_description,omitempty" yaml:"require_description,omitempty"`
}

// TypePolicy controls token-type and value-grammar validation.
type TypePolicy struct {
	// StrictMode rejects values that fail their type grammar. When off,
	// grammar failures downgrade to warnings.
	StrictMode bool `json:"strict_mode" yaml:"strict_mode"`

	// AllowUnknownTypes accepts types outside the known set with a
	// warning instead of an error.
	AllowUnknownTypes bool `json:"allow_unknown_types" yaml:"allow_unknown_types"`
}

// AliasPolicy controls alias-reference integrity checks.
type AliasPolicy struct {
	// ForbidCycles reports circular alias chains as errors.
	ForbidCycles bool `json:"forbid_cycles" yaml:"forbid_cycles"`

	// RequireResolvable reports dangling alias targets as errors.
	RequireResolvable bool `json:"require_resolvable" yaml:"require_resolvable"`

	// AllowCrossScope accepts alias targets living in a different scope
	// (brand token referencing a project or global token).
	AllowCrossScope bool `json:"allow_cross_scope" yaml:"allow_cross_scope"`

	// WarnCrossTypeAlias emits a warning when an alias target declares a
	// different type than the referencing token.
	WarnCrossTypeAlias bool `json:"warn_cross_type_alias,omitempty" yaml:"warn_cross_type_alias,omitempty"`
}

// ContrastPolicy controls color-contrast compliance requirements.
type ContrastPolicy struct {
	// RequireWCAG21 makes the WCAG 2.1 minimum level mandatory.
	RequireWCAG21 bool `json:"require_wcag21" yaml:"require_wcag21"`

	// WCAGMinLevel is "AA" or "AAA".
	WCAGMinLevel string `json:"wcag_min_level" yaml:"wcag_min_level"`

	// RequireAPCA makes the APCA minimum score mandatory.
	RequireAPCA bool `json:"require_apca" yaml:"require_apca"`

	// APCAMinScore is the required |Lc| value (45, 60, 75, 90).
	APCAMinScore float64 `json:"apca_min_score" yaml:"apca_min_score"`
}

// RuleSet is the complete validation configuration for one scope. The
// effective rule set for a validation call is selected whole by the
// Resolver; fields are never merged across scope levels.
type RuleSet struct {
	// Project/Brand identify the scope this rule set applies to: brand
	// rules carry both, project rules only Project, and the global rule
	// set neither.
	Project string `json:"project,omitempty" yaml:"project,omitempty"`
	Brand   string `json:"brand,omitempty" yaml:"brand,omitempty"`

	Naming   NamingPolicy   `json:"naming" yaml:"naming"`
	Types    TypePolicy     `json:"types" yaml:"types"`
	Aliases  AliasPolicy    `json:"aliases" yaml:"aliases"`
	Contrast ContrastPolicy `json:"contrast" yaml:"contrast"`
}

// Default returns the built-in rule set, the ultimate fallback of the
// scope cascade. It always exists and is never nil.
func Default() *RuleSet {
	return &RuleSet{
		Naming: NamingPolicy{
			EnforceKebabCase: true,
			MinSegments:      2,
		},
		Types: TypePolicy{
			StrictMode:        true,
			AllowUnknownTypes: true,
		},
		Aliases: AliasPolicy{
			ForbidCycles:      true,
			RequireResolvable: true,
			AllowCrossScope:   true,
		},
		Contrast: ContrastPolicy{
			RequireWCAG21: true,
			WCAGMinLevel:  "AA",
			RequireAPCA:   false,
			APCAMinScore:  60,
		},
	}
}

// Validate checks rule-set consistency.
func (r *RuleSet) Validate() error {
	if r.Naming.MinSegments < 1 {
		return fmt.Errorf("naming.min_segments must be at least 1")
	}
	if r.Naming.MaxSegments != 0 && r.Naming.MaxSegments < r.Naming.MinSegments {
		return fmt.Errorf("naming.max_segments (%d) below min_segments (%d)", r.Naming.MaxSegments, r.Naming.MinSegments)
	}
	switch r.Contrast.WCAGMinLevel {
	case "", "AA", "AAA":
	default:
		return fmt.Errorf("contrast.wcag_min_level must be AA or AAA, got %q", r.Contrast.WCAGMinLevel)
	}
	if r.Contrast.APCAMinScore < 0 || r.Contrast.APCAMinScore > 108 {
		return fmt.Errorf("contrast.apca_min_score must be within [0,108], got %v", r.Contrast.APCAMinScore)
	}
	return nil
}
