package color

import "math"

// RelativeLuminance computes WCAG 2.1 relative luminance: each sRGB
// channel is linearized, then weighted by the Rec. 709 coefficients.
// Result is in [0,1]; 0 is black, 1 is white.
func RelativeLuminance(c Color) float64 {
	return 0.2126*linearize(c.R) + 0.7152*linearize(c.G) + 0.0722*linearize(c.B)
}

func linearize(ch uint8) float64 {
	v := float64(ch) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio computes the WCAG 2.1 contrast ratio between two colors.
// The ratio is symmetric and ranges from 1 (identical) to 21
// (black on white).
func ContrastRatio(a, b Color) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}
