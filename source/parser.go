package source

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kamishino/design-tokens-sub001/token"
)

// Document is the on-disk shape of a token file: a scope header and a
// nested token tree. YAML and JSON are both accepted (JSON is a YAML
// subset).
type Document struct {
	Scope  token.Scope    `yaml:"scope" json:"scope"`
	Tokens map[string]any `yaml:"tokens" json:"tokens"`
}

// ParseDocument parses one token document and flattens its tree into
// canonical tokens. A node is a token when it carries a value key
// ("$value" or "value"); any other map recurses, its keys accumulating
// into the dot-delimited path.
func ParseDocument(data []byte) ([]token.Token, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse token document: %w", err)
	}
	if doc.Scope.Level == "" {
		// Standalone documents without a scope header validate as
		// global tokens.
		doc.Scope.Level = token.LevelGlobal
	}
	if err := doc.Scope.Validate(); err != nil {
		return nil, fmt.Errorf("token document scope: %w", err)
	}

	var tokens []token.Token
	if err := flatten("", doc.Tokens, doc.Scope, &tokens); err != nil {
		return nil, err
	}

	// Deterministic output order regardless of map iteration.
	sort.Slice(tokens, func(i, j int) bool { return tokens[i].Path < tokens[j].Path })
	return tokens, nil
}

func flatten(prefix string, node map[string]any, scope token.Scope, out *[]token.Token) error {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		child, isMap := node[key].(map[string]any)
		if !isMap {
			return fmt.Errorf("token node %s: expected a group or token map, got %T", path, node[key])
		}

		if isTokenNode(child) {
			t, err := token.Normalize(path, child, scope)
			if err != nil {
				return err
			}
			*out = append(*out, t)
			continue
		}
		if err := flatten(path, child, scope, out); err != nil {
			return err
		}
	}
	return nil
}

func isTokenNode(node map[string]any) bool {
	for _, k := range []string{"$value", "value"} {
		if _, ok := node[k]; ok {
			return true
		}
	}
	return false
}

// LoadFile reads and parses one token document.
func LoadFile(path string) ([]token.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read token file: %w", err)
	}
	tokens, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tokens, nil
}

// LoadGlobs loads every token document matching the glob patterns and
// returns the combined flat token list. Files are loaded in sorted path
// order so repeated runs see the same sequence.
func LoadGlobs(patterns []string) ([]token.Token, error) {
	files, err := ResolveFiles(patterns)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no token files match %s", strings.Join(patterns, ", "))
	}

	var tokens []token.Token
	for _, f := range files {
		ts, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, ts...)
	}
	return tokens, nil
}
