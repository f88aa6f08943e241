package token

import "fmt"

// Normalize converts a duck-typed token map into a canonical Token.
// Upstream documents key fields as either "value"/"type" or the W3C
// draft's "$value"/"$type"; the dual-key handling lives here at the
// boundary so validators only ever see the canonical record.
func Normalize(path string, raw map[string]any, scope Scope) (Token, error) {
	t := Token{Path: path, Scope: scope}

	val, ok := firstKey(raw, "$value", "value")
	if ok {
		switch v := val.(type) {
		case string:
			t.Value = v
		case int, int64, float64:
			t.Value = fmt.Sprint(v)
		case []any:
			// Font stacks arrive as ordered lists; join for the
			// font-family grammar.
			t.Value = joinFontStack(v)
		default:
			return Token{}, fmt.Errorf("token %s: unsupported value shape %T", path, val)
		}
	}

	if typ, ok := firstKey(raw, "$type", "type"); ok {
		s, isString := typ.(string)
		if !isString {
			return Token{}, fmt.Errorf("token %s: type must be a string, got %T", path, typ)
		}
		t.Type = Type(s)
	}

	if desc, ok := firstKey(raw, "$description", "description"); ok {
		if s, isString := desc.(string); isString {
			t.Description = s
		}
	}

	return t, nil
}

func firstKey(raw map[string]any, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok {
			return v, true
		}
	}
	return nil, false
}

func joinFontStack(items []any) string {
	out := ""
	for i, it := range items {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(it)
	}
	return out
}
