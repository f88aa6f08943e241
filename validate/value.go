package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/kamishino/design-tokens-sub001/color"
	"github.com/kamishino/design-tokens-sub001/rules"
	"github.com/kamishino/design-tokens-sub001/token"
)

var (
	dimensionRe = regexp.MustCompile(`^-?\d+(\.\d+)?(px|rem|em|%|vh|vw|vmin|vmax)$`)
	durationRe  = regexp.MustCompile(`^\d+(\.\d+)?(ms|s)$`)
)

var fontWeightKeywords = map[string]bool{
	"normal": true, "bold": true, "lighter": true, "bolder": true,
}

// ValidateValue checks a token value against its type's grammar. Alias
// values short-circuit to valid; target existence and cycles are the
// alias resolver's concern. When the type policy is not strict, grammar
// failures downgrade to warnings.
func ValidateValue(path string, typ token.Type, value string, policy rules.TypePolicy) *Result {
	result := newResult(path)

	if strings.TrimSpace(value) == "" {
		result.addError(Error{Code: CodeMissingValue, Message: "token has no value"})
		return result
	}

	if _, isAlias := token.Alias(value); isAlias {
		return result
	}

	if !typ.Known() {
		if policy.AllowUnknownTypes {
			result.addWarning(Warning{
				Code:    CodeUnknownType,
				Message: fmt.Sprintf("type %q is not in the known set; value not type-checked", typ),
			})
		} else {
			result.addError(Error{
				Code:    CodeUnsupportedType,
				Message: fmt.Sprintf("type %q is not supported", typ),
			})
		}
		return result
	}

	code, msg := checkGrammar(typ, value)
	if code == "" {
		return result
	}
	if policy.StrictMode {
		result.addError(Error{Code: code, Message: msg})
	} else {
		result.addWarning(Warning{Code: code, Message: msg})
	}
	return result
}

// checkGrammar dispatches on type and returns a failure code and message,
// or an empty code when the value conforms.
func checkGrammar(typ token.Type, value string) (Code, string) {
	switch typ {
	case token.TypeColor:
		if _, err := color.Parse(value); err != nil {
			return CodeInvalidColorFormat, fmt.Sprintf("invalid color value %q: %v", value, err)
		}
	case token.TypeDimension:
		if !dimensionRe.MatchString(value) {
			return CodeInvalidDimensionFormat, fmt.Sprintf("invalid dimension %q (expected e.g. 16px, 1.5rem, 100%%)", value)
		}
	case token.TypeDuration:
		if !durationRe.MatchString(value) {
			return CodeInvalidDurationFormat, fmt.Sprintf("invalid duration %q (expected e.g. 200ms, 1.5s)", value)
		}
	case token.TypeFontWeight:
		if !validFontWeight(value) {
			return CodeInvalidFontWeight, fmt.Sprintf("invalid font weight %q (expected 1-1000 or normal/bold/lighter/bolder)", value)
		}
	case token.TypeCubicBezier:
		if !validCubicBezier(value) {
			return CodeInvalidCubicBezier, fmt.Sprintf("invalid cubic-bezier %q (expected 4 components within [0,1])", value)
		}
	case token.TypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return CodeInvalidNumber, fmt.Sprintf("invalid number %q", value)
		}
	case token.TypeFontFamily:
		if !validFontFamily(value) {
			return CodeInvalidFontFamily, fmt.Sprintf("invalid font family %q", value)
		}
	case token.TypeString:
		// Always valid.
	}
	return "", ""
}

func validFontWeight(value string) bool {
	if fontWeightKeywords[strings.ToLower(value)] {
		return true
	}
	n, err := strconv.ParseFloat(value, 64)
	return err == nil && n >= 1 && n <= 1000
}

// validCubicBezier accepts both the bare "x1, y1, x2, y2" form and the
// CSS cubic-bezier(...) function form.
func validCubicBezier(value string) bool {
	v := strings.TrimSpace(strings.ToLower(value))
	if strings.HasPrefix(v, "cubic-bezier(") && strings.HasSuffix(v, ")") {
		v = strings.TrimSuffix(strings.TrimPrefix(v, "cubic-bezier("), ")")
	}
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || n < 0 || n > 1 {
			return false
		}
	}
	return true
}

// validFontFamily accepts a single family name or a comma-separated
// stack with no empty entries.
func validFontFamily(value string) bool {
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			return false
		}
	}
	return true
}
