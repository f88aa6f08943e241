package rules

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrNotFound is returned by a Source when no rule set exists at the
// requested scope. The Resolver treats it as "fall through to the next
// level"; any other error aborts resolution.
var ErrNotFound = errors.New("rule set not found")

// Source supplies stored rule sets by scope. Implementations are
// expected to return ErrNotFound (possibly wrapped) for absent scopes.
type Source interface {
	// BrandRules returns the rule set scoped to a brand within a project.
	BrandRules(ctx context.Context, projectID, brandID string) (*RuleSet, error)

	// ProjectRules returns the brand-less rule set for a project.
	ProjectRules(ctx context.Context, projectID string) (*RuleSet, error)

	// GlobalRules returns the organization-global rule set.
	GlobalRules(ctx context.Context) (*RuleSet, error)
}

// Resolver selects the effective rule set for a scope by cascading
// lookup: brand, then brand-less project, then global, then the built-in
// default. The first hit wins whole; partial configs are never blended
// across levels.
type Resolver struct {
	source Source
	logger *slog.Logger
}

// NewResolver creates a Resolver backed by source. A nil source resolves
// everything to the built-in default.
func NewResolver(source Source, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{source: source, logger: logger}
}

// Resolve returns the effective rule set for (projectID, brandID). Either
// identifier may be empty; the corresponding cascade levels are skipped.
// Resolve never returns nil without an error.
func (r *Resolver) Resolve(ctx context.Context, projectID, brandID string) (*RuleSet, error) {
	type candidate struct {
		level  string
		lookup func() (*RuleSet, error)
	}

	var candidates []candidate
	if r.source != nil {
		if brandID != "" && projectID != "" {
			candidates = append(candidates, candidate{"brand", func() (*RuleSet, error) {
				return r.source.BrandRules(ctx, projectID, brandID)
			}})
		}
		if projectID != "" {
			candidates = append(candidates, candidate{"project", func() (*RuleSet, error) {
				return r.source.ProjectRules(ctx, projectID)
			}})
		}
		candidates = append(candidates, candidate{"global", func() (*RuleSet, error) {
			return r.source.GlobalRules(ctx)
		}})
	}

	for _, c := range candidates {
		rs, err := c.lookup()
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("resolve %s rules: %w", c.level, err)
		}
		r.logger.Debug("Resolved rule set",
			slog.String("level", c.level),
			slog.String("project", projectID),
			slog.String("brand", brandID))
		return rs, nil
	}

	r.logger.Debug("No stored rule set, using built-in default",
		slog.String("project", projectID),
		slog.String("brand", brandID))
	return Default(), nil
}

// MapSource is an in-memory Source keyed by scope, used by the CLI for
// file-loaded rule sets and by tests.
type MapSource struct {
	sets []*RuleSet
}

// NewMapSource builds a MapSource from a list of rule sets.
func NewMapSource(sets ...*RuleSet) *MapSource {
	return &MapSource{sets: sets}
}

// Add appends a rule set to the source.
func (m *MapSource) Add(rs *RuleSet) {
	m.sets = append(m.sets, rs)
}

// BrandRules implements Source.
func (m *MapSource) BrandRules(_ context.Context, projectID, brandID string) (*RuleSet, error) {
	for _, rs := range m.sets {
		if rs.Project == projectID && rs.Brand == brandID && brandID != "" {
			return rs, nil
		}
	}
	return nil, ErrNotFound
}

// ProjectRules implements Source.
func (m *MapSource) ProjectRules(_ context.Context, projectID string) (*RuleSet, error) {
	for _, rs := range m.sets {
		if rs.Project == projectID && rs.Brand == "" && projectID != "" {
			return rs, nil
		}
	}
	return nil, ErrNotFound
}

// GlobalRules implements Source.
func (m *MapSource) GlobalRules(_ context.Context) (*RuleSet, error) {
	for _, rs := range m.sets {
		if rs.Project == "" && rs.Brand == "" {
			return rs, nil
		}
	}
	return nil, ErrNotFound
}
