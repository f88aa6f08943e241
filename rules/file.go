package rules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk shape of a rule-set document: one or more rule
// sets, each keyed by scope.
type File struct {
	RuleSets []*RuleSet `yaml:"rulesets"`
}

// LoadFile reads a YAML rule-set document and returns a Source serving
// its contents.
func LoadFile(path string) (*MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	src := NewMapSource()
	for i, rs := range f.RuleSets {
		if err := rs.Validate(); err != nil {
			return nil, fmt.Errorf("rules file %s: ruleset %d: %w", path, i, err)
		}
		src.Add(rs)
	}
	return src, nil
}
