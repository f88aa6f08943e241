package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/kamishino/design-tokens-sub001/rules"
)

// segmentRe is the kebab-case grammar for one path segment: lowercase
// alphanumerics with single interior hyphens.
var segmentRe = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// nonAlnumRe matches runs of characters that are not lowercase
// alphanumerics, for building normalized suggestions.
var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// ValidatePath checks a dot-delimited token path against the naming
// policy. Pure function; the returned result's errors carry advisory
// suggestions for invalid segments.
func ValidatePath(path string, policy rules.NamingPolicy) *Result {
	result := newResult(path)

	if strings.TrimSpace(path) == "" {
		result.addError(Error{Code: CodeEmptyPath, Message: "token path is empty"})
		return result
	}

	segments := strings.Split(path, ".")

	minSegments := policy.MinSegments
	if minSegments <= 0 {
		minSegments = 2
	}
	if len(segments) < minSegments {
		result.addError(Error{
			Code:    CodeTooFewSegments,
			Message: fmt.Sprintf("path has %d segment(s), at least %d required", len(segments), minSegments),
		})
	}
	if policy.MaxSegments > 0 && len(segments) > policy.MaxSegments {
		result.addError(Error{
			Code:    CodeTooManySegments,
			Message: fmt.Sprintf("path has %d segments, at most %d allowed", len(segments), policy.MaxSegments),
		})
	}

	if !policy.EnforceKebabCase {
		return result
	}

	for i, seg := range segments {
		if segmentRe.MatchString(seg) {
			continue
		}
		result.addError(Error{
			Code:       CodeInvalidSegment,
			Message:    fmt.Sprintf("segment %d (%q) is not kebab-case", i+1, seg),
			Suggestion: SuggestSegment(seg),
		})
	}

	return result
}

// SuggestSegment normalizes a segment into kebab-case: lowercased, with
// runs of non-alphanumerics collapsed to single hyphens and edge hyphens
// trimmed. Advisory only; never applied automatically.
func SuggestSegment(segment string) string {
	s := strings.ToLower(segment)
	s = nonAlnumRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
