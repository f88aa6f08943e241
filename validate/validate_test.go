package validate

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamishino/design-tokens-sub001/rules"
	"github.com/kamishino/design-tokens-sub001/token"
)

func TestValidateTokenAggregatesAllFindings(t *testing.T) {
	// Bad path AND bad value: both must be reported in one result.
	bad := token.Token{Path: "Color", Type: token.TypeColor, Value: "#zzz"}
	result := ValidateToken(bad, nil, nil)

	require.False(t, result.Valid)
	assert.True(t, result.HasCode(CodeTooFewSegments))
	assert.True(t, result.HasCode(CodeInvalidSegment))
	assert.True(t, result.HasCode(CodeInvalidColorFormat))
}

func TestValidateTokenAliasChecks(t *testing.T) {
	tokens := []token.Token{
		{Path: "color.base", Type: token.TypeColor, Value: "#3b82f6"},
		{Path: "color.primary", Type: token.TypeColor, Value: "{color.base}"},
		{Path: "color.dangling", Type: token.TypeColor, Value: "{color.nope}"},
		{Path: "color.loop-a", Type: token.TypeColor, Value: "{color.loop-b}"},
		{Path: "color.loop-b", Type: token.TypeColor, Value: "{color.loop-a}"},
	}
	set := token.NewSet(tokens)

	good := ValidateToken(tokens[1], set, nil)
	assert.True(t, good.Valid, "resolvable alias should validate: %+v", good.Errors)

	dangling := ValidateToken(tokens[2], set, nil)
	require.False(t, dangling.Valid)
	assert.True(t, dangling.HasCode(CodeBrokenReference))

	looped := ValidateToken(tokens[3], set, nil)
	require.False(t, looped.Valid)
	assert.True(t, looped.HasCode(CodeCircularReference))
}

func TestValidateTokenAliasPolicyDowngrades(t *testing.T) {
	rs := rules.Default()
	rs.Aliases.RequireResolvable = false

	tok := token.Token{Path: "color.dangling", Type: token.TypeColor, Value: "{color.nope}"}
	result := ValidateToken(tok, token.NewSet([]token.Token{tok}), rs)

	assert.True(t, result.Valid)
	assert.True(t, result.HasCode(CodeBrokenReference), "downgraded finding should remain visible as a warning")
}

func TestValidateTokenCrossTypeAliasWarning(t *testing.T) {
	rs := rules.Default()
	rs.Aliases.WarnCrossTypeAlias = true

	tokens := []token.Token{
		{Path: "color.base", Type: token.TypeColor, Value: "#3b82f6"},
		{Path: "spacing.odd", Type: token.TypeDimension, Value: "{color.base}"},
	}
	set := token.NewSet(tokens)

	result := ValidateToken(tokens[1], set, rs)
	assert.True(t, result.Valid, "cross-type aliasing is a warning, not an error")
	assert.True(t, result.HasCode(CodeCrossTypeAlias))

	// Policy off: no warning.
	result = ValidateToken(tokens[1], set, rules.Default())
	assert.False(t, result.HasCode(CodeCrossTypeAlias))
}

func TestValidateTokenMissingDescription(t *testing.T) {
	rs := rules.Default()
	rs.Naming.RequireDescription = true

	tok := token.Token{Path: "color.base", Type: token.TypeColor, Value: "#fff"}
	result := ValidateToken(tok, nil, rs)
	assert.True(t, result.Valid)
	assert.True(t, result.HasCode(CodeMissingDescription))

	tok.Description = "base color"
	result = ValidateToken(tok, nil, rs)
	assert.False(t, result.HasCode(CodeMissingDescription))
}

func TestValidateTokenIdempotent(t *testing.T) {
	tokens := []token.Token{
		{Path: "color.base", Type: token.TypeColor, Value: "#3b82f6"},
		{Path: "color.primary", Type: token.TypeColor, Value: "{color.base}"},
	}
	set := token.NewSet(tokens)

	first := ValidateToken(tokens[1], set, nil)
	second := ValidateToken(tokens[1], set, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated validation differs:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestValidateBatch(t *testing.T) {
	tokens := []token.Token{
		{Path: "color.base", Type: token.TypeColor, Value: "#3b82f6"},
		{Path: "color.primary", Type: token.TypeColor, Value: "{color.base}"},
		{Path: "color.broken", Type: token.TypeColor, Value: "#zzz"},
		{Path: "weird.one", Type: "gradient", Value: "linear(...)"},
	}

	batch := ValidateBatch(tokens, nil)

	require.Len(t, batch.Results, 4)
	assert.Equal(t, 4, batch.Summary.Total)
	assert.Equal(t, 3, batch.Summary.Valid)
	assert.Equal(t, 1, batch.Summary.Invalid)
	assert.Equal(t, 1, batch.Summary.WithWarnings)
	assert.Equal(t, batch.Summary.Total, batch.Summary.Valid+batch.Summary.Invalid)

	// The invalid token did not stop later tokens from being evaluated.
	assert.True(t, batch.Results[3].Valid)
}

func TestValidateBatchEmpty(t *testing.T) {
	batch := ValidateBatch(nil, nil)
	assert.Equal(t, Summary{}, batch.Summary)
	assert.Empty(t, batch.Results)
}
