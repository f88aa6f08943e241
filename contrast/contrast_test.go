package contrast

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamishino/design-tokens-sub001/rules"
)

func defaultPolicy() rules.ContrastPolicy {
	return rules.Default().Contrast
}

func TestAnalyzeBlackOnWhite(t *testing.T) {
	for _, size := range []TextSize{SizeNormal, SizeLarge} {
		report, err := Analyze("#000000", "#FFFFFF", size, defaultPolicy())
		require.NoError(t, err)

		assert.InDelta(t, 21.0, report.WCAG.Ratio, 1e-9)
		assert.Equal(t, WCAGAAA, report.WCAG.Level)
		assert.Equal(t, APCAAAA, report.APCA.Band)
		assert.True(t, report.Valid)
		assert.Equal(t, "dark-on-light", report.Recommended)
	}
}

func TestAnalyzePolarity(t *testing.T) {
	policy := defaultPolicy()

	light, err := Analyze("#000000", "#ffffff", SizeNormal, policy)
	require.NoError(t, err)
	dark, err := Analyze("#ffffff", "#000000", SizeNormal, policy)
	require.NoError(t, err)

	assert.True(t, light.APCA.Score > 0)
	assert.True(t, dark.APCA.Score < 0)
	assert.Equal(t, light.APCA.Band, dark.APCA.Band)
	assert.Equal(t, "light-on-dark", dark.Recommended)
}

func TestAnalyzeWCAGLevels(t *testing.T) {
	tests := []struct {
		name string
		text string
		bg   string
		size TextSize
		want WCAGLevel
	}{
		// #767676 on white is 4.54:1, the canonical AA boundary pair.
		{"aa normal", "#767676", "#ffffff", SizeNormal, WCAGAA},
		{"aaa large at 4.54", "#767676", "#ffffff", SizeLarge, WCAGAAA},
		// #949494 on white is ~3.03:1.
		{"fail normal", "#949494", "#ffffff", SizeNormal, WCAGFail},
		{"aaa normal", "#000000", "#ffffff", SizeNormal, WCAGAAA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := Analyze(tt.text, tt.bg, tt.size, defaultPolicy())
			require.NoError(t, err)
			assert.Equal(t, tt.want, report.WCAG.Level, "ratio was %.3f", report.WCAG.Ratio)
		})
	}
}

func TestAnalyzeRequiredPolicyDrivesValid(t *testing.T) {
	lowContrast := func(policy rules.ContrastPolicy) *Report {
		report, err := Analyze("#949494", "#ffffff", SizeNormal, policy)
		require.NoError(t, err)
		return report
	}

	strict := rules.ContrastPolicy{RequireWCAG21: true, WCAGMinLevel: "AA"}
	assert.False(t, lowContrast(strict).Valid)

	advisory := rules.ContrastPolicy{RequireWCAG21: false, WCAGMinLevel: "AA"}
	report := lowContrast(advisory)
	assert.True(t, report.Valid)
	assert.NotEmpty(t, report.Advisories)

	apcaStrict := rules.ContrastPolicy{RequireAPCA: true, APCAMinScore: 90}
	assert.False(t, lowContrast(apcaStrict).Valid)
}

func TestAnalyzeInvalidColor(t *testing.T) {
	_, err := Analyze("notacolor", "#ffffff", SizeNormal, defaultPolicy())
	require.Error(t, err)

	_, err = Analyze("#000000", "alsonotacolor", SizeNormal, defaultPolicy())
	require.Error(t, err)
}

func TestClassifyAPCABands(t *testing.T) {
	tests := []struct {
		score float64
		want  APCABand
	}{
		{95, APCAAAA},
		{-95, APCAAAA},
		{80, APCAAA},
		{65, APCALargeText},
		{50, APCANonText},
		{30, APCAFail},
		{0, APCAFail},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyAPCA(tt.score), "score %v", tt.score)
	}
}

func TestAnalyzeNormalizesColorForms(t *testing.T) {
	report, err := Analyze("rgb(0, 0, 0)", "white", SizeNormal, defaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, "#000000", report.Text)
	assert.Equal(t, "#ffffff", report.Background)
	assert.InDelta(t, 21.0, report.WCAG.Ratio, 1e-9)
	assert.False(t, math.Signbit(report.APCA.Score))
}
