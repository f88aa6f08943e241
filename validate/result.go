// Package validate implements token validation: path and naming checks,
// per-type value grammars, alias-reference integrity with cycle
// detection, and the orchestrator that composes them into one result per
// token.
//
// Every check is a pure function over its inputs. Failures are reported
// as structured errors and warnings, never as panics; one token's
// failure never prevents evaluation of the rest of a batch.
package validate

// Code identifies a validation error or warning category.
type Code string

// Error codes.
const (
	CodeEmptyPath              Code = "EmptyPath"
	CodeTooFewSegments         Code = "TooFewSegments"
	CodeTooManySegments        Code = "TooManySegments"
	CodeInvalidSegment         Code = "InvalidSegment"
	CodeMissingValue           Code = "MissingValue"
	CodeUnsupportedType        Code = "UnsupportedType"
	CodeInvalidColorFormat     Code = "InvalidColorFormat"
	CodeInvalidDimensionFormat Code = "InvalidDimensionFormat"
	CodeInvalidDurationFormat  Code = "InvalidDurationFormat"
	CodeInvalidFontWeight      Code = "InvalidFontWeight"
	CodeInvalidCubicBezier     Code = "InvalidCubicBezier"
	CodeInvalidNumber          Code = "InvalidNumber"
	CodeInvalidFontFamily      Code = "InvalidFontFamily"
	CodeBrokenReference        Code = "BrokenReference"
	CodeCircularReference      Code = "CircularReference"
)

// Warning codes.
const (
	CodeUnknownType        Code = "UnknownType"
	CodeMissingDescription Code = "MissingDescription"
	CodeContrastAdvisory   Code = "ContrastAdvisory"
	CodeCrossTypeAlias     Code = "CrossTypeAlias"
)

// Error is one blocking validation failure.
type Error struct {
	Code    Code   `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`

	// Suggestion carries an advisory fix (e.g. a normalized segment
	// name). It is never applied automatically.
	Suggestion string `json:"suggestion,omitempty"`
}

// Warning is one non-blocking validation finding.
type Warning struct {
	Code    Code   `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// Result is the outcome of validating one token. Valid is true iff
// Errors is empty; warnings never affect it.
type Result struct {
	Path     string    `json:"path"`
	Valid    bool      `json:"valid"`
	Errors   []Error   `json:"errors,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
}

func newResult(path string) *Result {
	return &Result{Path: path, Valid: true}
}

func (r *Result) addError(e Error) {
	if e.Path == "" {
		e.Path = r.Path
	}
	r.Errors = append(r.Errors, e)
	r.Valid = false
}

func (r *Result) addWarning(w Warning) {
	if w.Path == "" {
		w.Path = r.Path
	}
	r.Warnings = append(r.Warnings, w)
}

// merge folds another result's findings into r.
func (r *Result) merge(other *Result) {
	for _, e := range other.Errors {
		r.addError(e)
	}
	for _, w := range other.Warnings {
		r.addWarning(w)
	}
}

// HasCode reports whether the result carries a finding with the code,
// in either errors or warnings.
func (r *Result) HasCode(code Code) bool {
	for _, e := range r.Errors {
		if e.Code == code {
			return true
		}
	}
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

// Summary aggregates a batch run. Valid + Invalid always equals Total.
type Summary struct {
	Total        int `json:"total"`
	Valid        int `json:"valid"`
	Invalid      int `json:"invalid"`
	WithWarnings int `json:"with_warnings"`
}

// BatchResult holds per-token results plus the aggregate summary.
type BatchResult struct {
	Results []*Result `json:"results"`
	Summary Summary   `json:"summary"`
}
