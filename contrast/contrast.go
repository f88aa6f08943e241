// Package contrast analyzes a text/background color pair for perceptual
// contrast compliance, combining the WCAG 2.1 ratio and the APCA metric
// into one report.
package contrast

import (
	"fmt"
	"math"

	"github.com/kamishino/design-tokens-sub001/color"
	"github.com/kamishino/design-tokens-sub001/rules"
)

// TextSize classifies the text being analyzed. WCAG 2.1 thresholds differ
// between normal and large text.
type TextSize string

const (
	SizeNormal TextSize = "normal"
	SizeLarge  TextSize = "large"
)

// WCAGLevel is the WCAG 2.1 conformance classification.
type WCAGLevel string

const (
	WCAGFail WCAGLevel = "Fail"
	WCAGAA   WCAGLevel = "AA"
	WCAGAAA  WCAGLevel = "AAA"
)

// APCABand is the APCA usage band for the absolute contrast score.
type APCABand string

const (
	APCAFail      APCABand = "Fail"
	APCANonText   APCABand = "Non-text"
	APCALargeText APCABand = "Large text"
	APCAAA        APCABand = "AA"
	APCAAAA       APCABand = "AAA"
)

// APCA band thresholds on |Lc|.
const (
	apcaNonTextMin   = 45
	apcaLargeTextMin = 60
	apcaAAMin        = 75
	apcaAAAMin       = 90
)

// WCAGAnalysis is the WCAG 2.1 half of a contrast report.
type WCAGAnalysis struct {
	Ratio float64   `json:"ratio"`
	Level WCAGLevel `json:"level"`
}

// APCAAnalysis is the APCA half of a contrast report.
type APCAAnalysis struct {
	// Score is the signed Lc value; positive means dark text on a light
	// background.
	Score float64  `json:"score"`
	Band  APCABand `json:"band"`
}

// Report is the combined result of a contrast analysis.
type Report struct {
	Text       string       `json:"text"`
	Background string       `json:"background"`
	TextSize   TextSize     `json:"text_size"`
	WCAG       WCAGAnalysis `json:"wcag21"`
	APCA       APCAAnalysis `json:"apca"`

	// Valid reflects the policy's required checks only.
	Valid bool `json:"valid"`

	// Recommended is the polarity hint derived from the APCA sign:
	// "dark-on-light" or "light-on-dark".
	Recommended string `json:"recommended"`

	// Advisories lists recommended-but-not-required thresholds that the
	// pair misses. They never affect Valid.
	Advisories []string `json:"advisories,omitempty"`
}

// Analyze computes the combined WCAG 2.1 + APCA report for text on
// background under the given policy. Unparseable colors fail fast with
// an error; the caller reports it as InvalidColorFormat.
func Analyze(text, background string, size TextSize, policy rules.ContrastPolicy) (*Report, error) {
	fg, err := color.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("text color: %w", err)
	}
	bg, err := color.Parse(background)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}
	if size == "" {
		size = SizeNormal
	}

	ratio := color.ContrastRatio(fg, bg)
	apca := color.APCAContrast(fg, bg)

	report := &Report{
		Text:       fg.Hex(),
		Background: bg.Hex(),
		TextSize:   size,
		WCAG:       WCAGAnalysis{Ratio: ratio, Level: classifyWCAG(ratio, size)},
		APCA:       APCAAnalysis{Score: apca, Band: classifyAPCA(apca)},
		Valid:      true,
	}

	if apca >= 0 {
		report.Recommended = "dark-on-light"
	} else {
		report.Recommended = "light-on-dark"
	}

	minLevel := WCAGLevel(policy.WCAGMinLevel)
	if minLevel == "" {
		minLevel = WCAGAA
	}
	if !wcagMeets(report.WCAG.Level, minLevel) {
		if policy.RequireWCAG21 {
			report.Valid = false
		} else {
			report.Advisories = append(report.Advisories,
				fmt.Sprintf("WCAG 2.1 ratio %.2f:1 below recommended %s for %s text", ratio, minLevel, size))
		}
	}

	if math.Abs(apca) < policy.APCAMinScore {
		if policy.RequireAPCA {
			report.Valid = false
		} else {
			report.Advisories = append(report.Advisories,
				fmt.Sprintf("APCA |Lc| %.1f below recommended %.0f", math.Abs(apca), policy.APCAMinScore))
		}
	}

	return report, nil
}

func classifyWCAG(ratio float64, size TextSize) WCAGLevel {
	aa, aaa := 4.5, 7.0
	if size == SizeLarge {
		aa, aaa = 3.0, 4.5
	}
	switch {
	case ratio >= aaa:
		return WCAGAAA
	case ratio >= aa:
		return WCAGAA
	default:
		return WCAGFail
	}
}

func classifyAPCA(score float64) APCABand {
	abs := math.Abs(score)
	switch {
	case abs >= apcaAAAMin:
		return APCAAAA
	case abs >= apcaAAMin:
		return APCAAA
	case abs >= apcaLargeTextMin:
		return APCALargeText
	case abs >= apcaNonTextMin:
		return APCANonText
	default:
		return APCAFail
	}
}

func wcagMeets(level, min WCAGLevel) bool {
	rank := map[WCAGLevel]int{WCAGFail: 0, WCAGAA: 1, WCAGAAA: 2}
	return rank[level] >= rank[min]
}
