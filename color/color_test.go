package color

import (
	"math"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#000000", Color{0, 0, 0, 1}, false},
		{"#FFFFFF", Color{255, 255, 255, 1}, false},
		{"#3b82f6", Color{59, 130, 246, 1}, false},
		{"#fff", Color{255, 255, 255, 1}, false},
		{"#abc", Color{170, 187, 204, 1}, false},
		{"#abcd", Color{170, 187, 204, 221.0 / 255}, false},
		{"#3b82f680", Color{59, 130, 246, 128.0 / 255}, false},
		{"#12345", Color{}, true},
		{"#gggggg", Color{}, true},
		{"#", Color{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseFunctional(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"rgb(59, 130, 246)", Color{59, 130, 246, 1}, false},
		{"rgb(100%, 0%, 50%)", Color{255, 0, 128, 1}, false},
		{"rgba(0, 0, 0, 0.5)", Color{0, 0, 0, 0.5}, false},
		{"rgba(255,255,255,50%)", Color{255, 255, 255, 0.5}, false},
		{"hsl(0, 0%, 100%)", Color{255, 255, 255, 1}, false},
		{"hsl(120, 100%, 25%)", Color{0, 128, 0, 1}, false},
		{"hsla(0, 100%, 50%, 0.25)", Color{255, 0, 0, 0.25}, false},
		{"rgb(300, 0, 0)", Color{}, true},
		{"rgb(1, 2)", Color{}, true},
		{"hsl(0, 200%, 50%)", Color{}, true},
		{"rgb(banana)", Color{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseNamed(t *testing.T) {
	got, err := Parse("RebeccaPurple")
	if err != nil {
		t.Fatalf("Parse(rebeccapurple) error: %v", err)
	}
	if want := (Color{102, 51, 153, 1}); got != want {
		t.Errorf("Parse(rebeccapurple) = %+v, want %+v", got, want)
	}

	if _, err := Parse("notacolor"); err == nil {
		t.Error("expected error for unrecognized name")
	}
	if _, err := Parse(""); err == nil {
		t.Error("expected error for empty value")
	}
}

func TestRelativeLuminance(t *testing.T) {
	if l := RelativeLuminance(Color{0, 0, 0, 1}); l != 0 {
		t.Errorf("luminance(black) = %v, want 0", l)
	}
	if l := RelativeLuminance(Color{255, 255, 255, 1}); math.Abs(l-1) > 1e-9 {
		t.Errorf("luminance(white) = %v, want 1", l)
	}
}

func TestContrastRatioBlackOnWhite(t *testing.T) {
	ratio := ContrastRatio(Color{0, 0, 0, 1}, Color{255, 255, 255, 1})
	if math.Abs(ratio-21) > 1e-9 {
		t.Errorf("ratio(black, white) = %v, want 21", ratio)
	}
}

func TestContrastRatioSymmetric(t *testing.T) {
	a := Color{59, 130, 246, 1}
	b := Color{255, 255, 255, 1}
	if ContrastRatio(a, b) != ContrastRatio(b, a) {
		t.Error("contrast ratio must be symmetric")
	}
	if r := ContrastRatio(a, a); math.Abs(r-1) > 1e-9 {
		t.Errorf("ratio of identical colors = %v, want 1", r)
	}
}

func TestAPCAContrastPolarity(t *testing.T) {
	black := Color{0, 0, 0, 1}
	white := Color{255, 255, 255, 1}

	blackOnWhite := APCAContrast(black, white)
	whiteOnBlack := APCAContrast(white, black)

	if blackOnWhite < 100 || blackOnWhite > 110 {
		t.Errorf("APCA(black on white) = %v, want ~106", blackOnWhite)
	}
	if whiteOnBlack > -100 || whiteOnBlack < -110 {
		t.Errorf("APCA(white on black) = %v, want ~-108", whiteOnBlack)
	}
	if blackOnWhite*whiteOnBlack >= 0 {
		t.Error("opposite polarities must have opposite sign")
	}
}

func TestAPCAContrastLowDeltaClampsToZero(t *testing.T) {
	a := Color{128, 128, 128, 1}
	b := Color{130, 130, 130, 1}
	if got := APCAContrast(a, b); got != 0 {
		t.Errorf("APCA of near-identical grays = %v, want 0", got)
	}
	if got := APCAContrast(a, a); got != 0 {
		t.Errorf("APCA of identical colors = %v, want 0", got)
	}
}

func TestHex(t *testing.T) {
	c := Color{59, 130, 246, 1}
	if got := c.Hex(); got != "#3b82f6" {
		t.Errorf("Hex() = %q, want #3b82f6", got)
	}
}
