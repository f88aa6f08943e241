// Package color provides the color-science primitives used by token
// validation and contrast analysis: CSS color parsing, WCAG 2.1 relative
// luminance and contrast ratio, and the APCA perceptual contrast metric.
//
// All functions are pure; invalid input is reported through error returns.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Color is an sRGB color with 8-bit channels and a normalized alpha.
type Color struct {
	R, G, B uint8
	A       float64
}

var (
	hexRe  = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
	rgbRe  = regexp.MustCompile(`^rgba?\(\s*([\d.]+%?)\s*,\s*([\d.]+%?)\s*,\s*([\d.]+%?)\s*(?:,\s*([\d.]+%?)\s*)?\)$`)
	hslRe  = regexp.MustCompile(`^hsla?\(\s*(-?[\d.]+)(?:deg)?\s*,\s*([\d.]+)%\s*,\s*([\d.]+)%\s*(?:,\s*([\d.]+%?)\s*)?\)$`)
	funcRe = regexp.MustCompile(`^(rgb|rgba|hsl|hsla)\(`)
)

// Parse parses a CSS color value: #RGB/#RGBA/#RRGGBB/#RRGGBBAA hex,
// rgb()/rgba(), hsl()/hsla(), or a recognized named color.
func Parse(s string) (Color, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	if v == "" {
		return Color{}, fmt.Errorf("empty color value")
	}

	switch {
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	case funcRe.MatchString(v):
		if m := rgbRe.FindStringSubmatch(v); m != nil {
			return parseRGB(m)
		}
		if m := hslRe.FindStringSubmatch(v); m != nil {
			return parseHSL(m)
		}
		return Color{}, fmt.Errorf("malformed color function: %q", s)
	default:
		if c, ok := named[v]; ok {
			return c, nil
		}
		return Color{}, fmt.Errorf("unrecognized color: %q", s)
	}
}

func parseHex(v string) (Color, error) {
	if !hexRe.MatchString(v) {
		return Color{}, fmt.Errorf("invalid hex color: %q", v)
	}
	digits := v[1:]

	// Short forms expand each digit: #abc -> #aabbcc.
	if len(digits) == 3 || len(digits) == 4 {
		var b strings.Builder
		for _, d := range digits {
			b.WriteRune(d)
			b.WriteRune(d)
		}
		digits = b.String()
	}

	parse := func(s string) uint8 {
		n, _ := strconv.ParseUint(s, 16, 8)
		return uint8(n)
	}
	c := Color{R: parse(digits[0:2]), G: parse(digits[2:4]), B: parse(digits[4:6]), A: 1}
	if len(digits) == 8 {
		c.A = float64(parse(digits[6:8])) / 255
	}
	return c, nil
}

func parseRGB(m []string) (Color, error) {
	channel := func(s string) (uint8, error) {
		if strings.HasSuffix(s, "%") {
			pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
			if err != nil || pct < 0 || pct > 100 {
				return 0, fmt.Errorf("channel percentage out of range: %q", s)
			}
			return uint8(math.Round(pct / 100 * 255)), nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || n < 0 || n > 255 {
			return 0, fmt.Errorf("channel out of range: %q", s)
		}
		return uint8(math.Round(n)), nil
	}

	r, err := channel(m[1])
	if err != nil {
		return Color{}, err
	}
	g, err := channel(m[2])
	if err != nil {
		return Color{}, err
	}
	b, err := channel(m[3])
	if err != nil {
		return Color{}, err
	}

	c := Color{R: r, G: g, B: b, A: 1}
	if m[4] != "" {
		a, err := parseAlpha(m[4])
		if err != nil {
			return Color{}, err
		}
		c.A = a
	}
	return c, nil
}

func parseHSL(m []string) (Color, error) {
	h, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hue: %q", m[1])
	}
	s, err := strconv.ParseFloat(m[2], 64)
	if err != nil || s < 0 || s > 100 {
		return Color{}, fmt.Errorf("saturation out of range: %q", m[2])
	}
	l, err := strconv.ParseFloat(m[3], 64)
	if err != nil || l < 0 || l > 100 {
		return Color{}, fmt.Errorf("lightness out of range: %q", m[3])
	}

	c := hslToRGB(h, s/100, l/100)
	if m[4] != "" {
		a, err := parseAlpha(m[4])
		if err != nil {
			return Color{}, err
		}
		c.A = a
	}
	return c, nil
}

func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		pct, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || pct < 0 || pct > 100 {
			return 0, fmt.Errorf("alpha out of range: %q", s)
		}
		return pct / 100, nil
	}
	a, err := strconv.ParseFloat(s, 64)
	if err != nil || a < 0 || a > 1 {
		return 0, fmt.Errorf("alpha out of range: %q", s)
	}
	return a, nil
}

// hslToRGB converts hue in degrees and normalized saturation/lightness
// to 8-bit sRGB channels (CSS Color 3 algorithm).
func hslToRGB(h, s, l float64) Color {
	h = math.Mod(math.Mod(h, 360)+360, 360) / 360

	if s == 0 {
		v := uint8(math.Round(l * 255))
		return Color{R: v, G: v, B: v, A: 1}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	conv := func(t float64) uint8 {
		if t < 0 {
			t++
		}
		if t > 1 {
			t--
		}
		var v float64
		switch {
		case t < 1.0/6:
			v = p + (q-p)*6*t
		case t < 1.0/2:
			v = q
		case t < 2.0/3:
			v = p + (q-p)*(2.0/3-t)*6
		default:
			v = p
		}
		return uint8(math.Round(v * 255))
	}

	return Color{R: conv(h + 1.0/3), G: conv(h), B: conv(h - 1.0/3), A: 1}
}

// Hex returns the #rrggbb form of the color (alpha omitted).
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
