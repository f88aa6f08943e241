// Package resolve computes the effective token set for a brand by
// merging the three scope tiers: brand overrides project overrides
// global. The merge is a deterministic group-then-pick over paths, not a
// nested scan, so it stays linear in the token count.
package resolve

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/kamishino/design-tokens-sub001/token"
)

// Source supplies the tokens visible to a brand, one query per tier.
// The storage package provides a NATS-KV-backed implementation; tests
// and the CLI use in-memory ones. The engine never writes through it.
type Source interface {
	// GlobalTokens lists all organization-global tokens.
	GlobalTokens(ctx context.Context) ([]token.Token, error)

	// ProjectTokens lists the brand-less tokens of the brand's project.
	ProjectTokens(ctx context.Context, projectID string) ([]token.Token, error)

	// BrandTokens lists the tokens scoped to the brand itself.
	BrandTokens(ctx context.Context, projectID, brandID string) ([]token.Token, error)
}

// ResolvedToken is one entry of an effective token set, annotated with
// the tier it survived from.
type ResolvedToken struct {
	Path        string      `json:"path"`
	Type        token.Type  `json:"type"`
	Value       string      `json:"value"`
	Description string      `json:"description,omitempty"`
	SourceLevel token.Level `json:"source_level"`
}

// ResolvedTokenSet is the effective token set for one brand, ordered by
// path with no duplicate paths.
type ResolvedTokenSet struct {
	Brand  string          `json:"brand"`
	Tokens []ResolvedToken `json:"tokens"`
}

// Lookup returns the resolved entry at path.
func (s *ResolvedTokenSet) Lookup(path string) (ResolvedToken, bool) {
	i := sort.Search(len(s.Tokens), func(i int) bool { return s.Tokens[i].Path >= path })
	if i < len(s.Tokens) && s.Tokens[i].Path == path {
		return s.Tokens[i], true
	}
	return ResolvedToken{}, false
}

// Resolver merges scope tiers into effective token sets.
type Resolver struct {
	source Source
	logger *slog.Logger
}

// NewResolver creates a Resolver reading from source.
func NewResolver(source Source, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{source: source, logger: logger}
}

// BrandTokens resolves the effective token set for brandID within
// projectID. For each path the lowest-priority candidate wins
// (brand=1 < project=2 < global=3); ties within a tier keep the
// first-listed token so resolution stays deterministic even when the
// uniqueness invariant has been violated upstream.
func (r *Resolver) BrandTokens(ctx context.Context, projectID, brandID string) (*ResolvedTokenSet, error) {
	if brandID == "" {
		return nil, fmt.Errorf("brand identifier is required")
	}

	global, err := r.source.GlobalTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("list global tokens: %w", err)
	}
	project, err := r.source.ProjectTokens(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list project tokens: %w", err)
	}
	brand, err := r.source.BrandTokens(ctx, projectID, brandID)
	if err != nil {
		return nil, fmt.Errorf("list brand tokens: %w", err)
	}

	set := Merge(brand, project, global)
	set.Brand = brandID

	r.logger.Debug("Resolved brand tokens",
		slog.String("project", projectID),
		slog.String("brand", brandID),
		slog.Int("global", len(global)),
		slog.Int("project_tokens", len(project)),
		slog.Int("brand_tokens", len(brand)),
		slog.Int("effective", len(set.Tokens)))

	return set, nil
}

// Merge folds candidate tokens from the three tiers into one effective
// set. Inputs are not mutated; the caller supplies each tier already
// filtered to what the brand can see.
func Merge(brand, project, global []token.Token) *ResolvedTokenSet {
	type pick struct {
		tok      token.Token
		level    token.Level
		priority int
	}

	best := make(map[string]pick, len(brand)+len(project)+len(global))

	consider := func(tokens []token.Token, level token.Level) {
		priority := level.Priority()
		for _, t := range tokens {
			if prev, ok := best[t.Path]; ok && prev.priority <= priority {
				// First-inserted wins on equal priority.
				continue
			}
			best[t.Path] = pick{tok: t, level: level, priority: priority}
		}
	}

	// Tier order does not matter for the outcome thanks to the priority
	// comparison; brand first keeps the common case cheap.
	consider(brand, token.LevelBrand)
	consider(project, token.LevelProject)
	consider(global, token.LevelGlobal)

	out := &ResolvedTokenSet{Tokens: make([]ResolvedToken, 0, len(best))}
	for _, p := range best {
		out.Tokens = append(out.Tokens, ResolvedToken{
			Path:        p.tok.Path,
			Type:        p.tok.Type,
			Value:       p.tok.Value,
			Description: p.tok.Description,
			SourceLevel: p.level,
		})
	}
	sort.Slice(out.Tokens, func(i, j int) bool { return out.Tokens[i].Path < out.Tokens[j].Path })
	return out
}

// SliceSource is an in-memory Source over a flat token list, used by the
// CLI for file-loaded tokens and by tests.
type SliceSource []token.Token

// GlobalTokens implements Source.
func (s SliceSource) GlobalTokens(context.Context) ([]token.Token, error) {
	return s.filter(func(t token.Token) bool {
		return t.Scope.Level == token.LevelGlobal
	}), nil
}

// ProjectTokens implements Source.
func (s SliceSource) ProjectTokens(_ context.Context, projectID string) ([]token.Token, error) {
	return s.filter(func(t token.Token) bool {
		return t.Scope.Level == token.LevelProject && t.Scope.Project == projectID
	}), nil
}

// BrandTokens implements Source.
func (s SliceSource) BrandTokens(_ context.Context, projectID, brandID string) ([]token.Token, error) {
	return s.filter(func(t token.Token) bool {
		return t.Scope.Level == token.LevelBrand && t.Scope.Project == projectID && t.Scope.Brand == brandID
	}), nil
}

func (s SliceSource) filter(keep func(token.Token) bool) []token.Token {
	var out []token.Token
	for _, t := range s {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
