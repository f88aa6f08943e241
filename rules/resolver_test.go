package rules

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCascade(t *testing.T) {
	ctx := context.Background()

	brandRS := &RuleSet{Project: "web", Brand: "shop", Naming: NamingPolicy{MinSegments: 3}}
	projectRS := &RuleSet{Project: "web", Naming: NamingPolicy{MinSegments: 2, EnforceKebabCase: true}}
	globalRS := &RuleSet{Naming: NamingPolicy{MinSegments: 2}}

	tests := []struct {
		name      string
		source    Source
		projectID string
		brandID   string
		want      *RuleSet
	}{
		{"brand wins", NewMapSource(globalRS, projectRS, brandRS), "web", "shop", brandRS},
		{"project when brand absent", NewMapSource(globalRS, projectRS), "web", "shop", projectRS},
		{"project direct", NewMapSource(globalRS, projectRS), "web", "", projectRS},
		{"global when project absent", NewMapSource(globalRS), "web", "shop", globalRS},
		{"global direct", NewMapSource(globalRS), "", "", globalRS},
		{"builtin default on empty source", NewMapSource(), "web", "shop", Default()},
		{"builtin default on nil source", nil, "", "", Default()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.source, nil)
			got, err := r.Resolve(ctx, tt.projectID, tt.brandID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNoFieldMerge(t *testing.T) {
	// A brand rule set must be taken whole even when the project rule
	// set carries stricter settings in other fields.
	brandRS := &RuleSet{Project: "web", Brand: "shop", Naming: NamingPolicy{MinSegments: 2}}
	projectRS := &RuleSet{
		Project: "web",
		Naming:  NamingPolicy{MinSegments: 2, EnforceKebabCase: true},
		Types:   TypePolicy{StrictMode: true},
	}

	r := NewResolver(NewMapSource(projectRS, brandRS), nil)
	got, err := r.Resolve(context.Background(), "web", "shop")
	require.NoError(t, err)
	assert.False(t, got.Naming.EnforceKebabCase)
	assert.False(t, got.Types.StrictMode)
}

type failingSource struct{}

func (failingSource) BrandRules(context.Context, string, string) (*RuleSet, error) {
	return nil, errors.New("kv unavailable")
}
func (failingSource) ProjectRules(context.Context, string) (*RuleSet, error) {
	return nil, errors.New("kv unavailable")
}
func (failingSource) GlobalRules(context.Context) (*RuleSet, error) {
	return nil, errors.New("kv unavailable")
}

func TestResolvePropagatesSourceErrors(t *testing.T) {
	r := NewResolver(failingSource{}, nil)
	_, err := r.Resolve(context.Background(), "web", "shop")
	require.Error(t, err)
}

func TestDefaultAlwaysValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestRuleSetValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RuleSet)
		wantErr bool
	}{
		{"default", func(*RuleSet) {}, false},
		{"zero min segments", func(r *RuleSet) { r.Naming.MinSegments = 0 }, true},
		{"max below min", func(r *RuleSet) { r.Naming.MaxSegments = 1 }, true},
		{"bad wcag level", func(r *RuleSet) { r.Contrast.WCAGMinLevel = "AAAA" }, true},
		{"apca out of range", func(r *RuleSet) { r.Contrast.APCAMinScore = 200 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := Default()
			tt.mutate(rs)
			err := rs.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
