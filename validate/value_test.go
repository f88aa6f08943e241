package validate

import (
	"testing"

	"github.com/kamishino/design-tokens-sub001/rules"
	"github.com/kamishino/design-tokens-sub001/token"
)

func strictTypes() rules.TypePolicy {
	return rules.TypePolicy{StrictMode: true, AllowUnknownTypes: true}
}

func TestValidateValue(t *testing.T) {
	tests := []struct {
		name     string
		typ      token.Type
		value    string
		valid    bool
		wantCode Code
	}{
		{"hex color", token.TypeColor, "#3b82f6", true, ""},
		{"short hex color", token.TypeColor, "#fff", true, ""},
		{"rgb color", token.TypeColor, "rgb(59, 130, 246)", true, ""},
		{"hsl color", token.TypeColor, "hsl(217, 91%, 60%)", true, ""},
		{"named color", token.TypeColor, "rebeccapurple", true, ""},
		{"bad color", token.TypeColor, "#zzz", false, CodeInvalidColorFormat},
		{"bare word color", token.TypeColor, "blueish", false, CodeInvalidColorFormat},

		{"px dimension", token.TypeDimension, "16px", true, ""},
		{"decimal rem", token.TypeDimension, "1.5rem", true, ""},
		{"negative dimension", token.TypeDimension, "-4px", true, ""},
		{"percent dimension", token.TypeDimension, "100%", true, ""},
		{"viewport dimension", token.TypeDimension, "50vmin", true, ""},
		{"unitless dimension", token.TypeDimension, "16", false, CodeInvalidDimensionFormat},
		{"bad unit", token.TypeDimension, "16pt", false, CodeInvalidDimensionFormat},

		{"ms duration", token.TypeDuration, "200ms", true, ""},
		{"decimal seconds", token.TypeDuration, "1.5s", true, ""},
		{"negative duration", token.TypeDuration, "-200ms", false, CodeInvalidDurationFormat},
		{"unitless duration", token.TypeDuration, "200", false, CodeInvalidDurationFormat},

		{"numeric weight", token.TypeFontWeight, "400", true, ""},
		{"weight lower bound", token.TypeFontWeight, "1", true, ""},
		{"weight upper bound", token.TypeFontWeight, "1000", true, ""},
		{"keyword weight", token.TypeFontWeight, "bold", true, ""},
		{"zero weight", token.TypeFontWeight, "0", false, CodeInvalidFontWeight},
		{"over weight", token.TypeFontWeight, "1001", false, CodeInvalidFontWeight},
		{"bad keyword weight", token.TypeFontWeight, "chunky", false, CodeInvalidFontWeight},

		{"bare bezier", token.TypeCubicBezier, "0.4, 0, 0.2, 1", true, ""},
		{"function bezier", token.TypeCubicBezier, "cubic-bezier(0.4, 0, 0.2, 1)", true, ""},
		{"bezier out of range", token.TypeCubicBezier, "0.4, 0, 0.2, 1.5", false, CodeInvalidCubicBezier},
		{"bezier three components", token.TypeCubicBezier, "0.4, 0, 0.2", false, CodeInvalidCubicBezier},
		{"bezier junk", token.TypeCubicBezier, "ease-in-out", false, CodeInvalidCubicBezier},

		{"integer number", token.TypeNumber, "42", true, ""},
		{"decimal number", token.TypeNumber, "1.618", true, ""},
		{"negative number", token.TypeNumber, "-3", true, ""},
		{"not a number", token.TypeNumber, "forty-two", false, CodeInvalidNumber},

		{"single family", token.TypeFontFamily, "Inter", true, ""},
		{"font stack", token.TypeFontFamily, "Inter, Helvetica, sans-serif", true, ""},
		{"empty stack entry", token.TypeFontFamily, "Inter, , sans-serif", false, CodeInvalidFontFamily},

		{"string always valid", token.TypeString, "anything at all", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateValue("test.path", tt.typ, tt.value, strictTypes())
			if result.Valid != tt.valid {
				t.Errorf("ValidateValue(%s, %q).Valid = %v, want %v (errors: %+v)",
					tt.typ, tt.value, result.Valid, tt.valid, result.Errors)
			}
			if tt.wantCode != "" && !result.HasCode(tt.wantCode) {
				t.Errorf("ValidateValue(%s, %q) missing code %s", tt.typ, tt.value, tt.wantCode)
			}
		})
	}
}

func TestValidateValueAliasShortCircuits(t *testing.T) {
	// An alias never hits the type grammar, even when the literal would
	// be invalid for the type.
	result := ValidateValue("color.primary", token.TypeColor, "{color.base.500}", strictTypes())
	if !result.Valid || len(result.Warnings) != 0 {
		t.Errorf("alias value should be valid with no findings, got %+v", result)
	}
}

func TestValidateValueMissing(t *testing.T) {
	for _, v := range []string{"", "   "} {
		result := ValidateValue("color.primary", token.TypeColor, v, strictTypes())
		if result.Valid || !result.HasCode(CodeMissingValue) {
			t.Errorf("ValidateValue(%q) = %+v, want MissingValue error", v, result)
		}
	}
}

func TestValidateValueUnknownType(t *testing.T) {
	allow := rules.TypePolicy{StrictMode: true, AllowUnknownTypes: true}
	result := ValidateValue("a.b", "gradient", "linear(...)", allow)
	if !result.Valid || !result.HasCode(CodeUnknownType) {
		t.Errorf("unknown type with allow policy = %+v, want valid with UnknownType warning", result)
	}

	deny := rules.TypePolicy{StrictMode: true, AllowUnknownTypes: false}
	result = ValidateValue("a.b", "gradient", "linear(...)", deny)
	if result.Valid || !result.HasCode(CodeUnsupportedType) {
		t.Errorf("unknown type with deny policy = %+v, want UnsupportedType error", result)
	}
}

func TestValidateValueLenientMode(t *testing.T) {
	lenient := rules.TypePolicy{StrictMode: false, AllowUnknownTypes: true}
	result := ValidateValue("a.b", token.TypeColor, "#zzz", lenient)
	if !result.Valid || !result.HasCode(CodeInvalidColorFormat) {
		t.Errorf("lenient mode = %+v, want valid with InvalidColorFormat warning", result)
	}
}
