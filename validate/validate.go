package validate

import (
	"fmt"

	"github.com/kamishino/design-tokens-sub001/rules"
	"github.com/kamishino/design-tokens-sub001/token"
)

// ValidateToken runs the full validation pipeline for one token: path
// grammar, value grammar, and — for alias values — reference existence
// and cycle detection against the provided set. A nil set skips the
// reference checks; a nil rule set falls back to the built-in default.
//
// The call is pure and idempotent: validating the same token against the
// same set twice yields identical results.
func ValidateToken(t token.Token, set *token.Set, rs *rules.RuleSet) *Result {
	if rs == nil {
		rs = rules.Default()
	}

	result := newResult(t.Path)
	result.merge(ValidatePath(t.Path, rs.Naming))
	result.merge(ValidateValue(t.Path, t.Type, t.Value, rs.Types))

	if target, isAlias := token.Alias(t.Value); isAlias && set != nil {
		checkAlias(result, t, target, set, rs.Aliases)
	}

	if rs.Naming.RequireDescription && t.Description == "" {
		result.addWarning(Warning{
			Code:    CodeMissingDescription,
			Message: "token has no description",
		})
	}

	return result
}

func checkAlias(result *Result, t token.Token, target string, set *token.Set, policy rules.AliasPolicy) {
	if !CheckExists(target, set, t.Scope, policy) {
		msg := fmt.Sprintf("alias target %q does not exist", target)
		if policy.RequireResolvable {
			result.addError(Error{Code: CodeBrokenReference, Message: msg})
		} else {
			result.addWarning(Warning{Code: CodeBrokenReference, Message: msg})
		}
	} else if policy.WarnCrossTypeAlias {
		if targetTok, ok := set.Lookup(target); ok &&
			t.Type.Known() && targetTok.Type.Known() && targetTok.Type != t.Type {
			result.addWarning(Warning{
				Code: CodeCrossTypeAlias,
				Message: fmt.Sprintf("alias target %q is typed %s, not %s",
					target, targetTok.Type, t.Type),
			})
		}
	}

	if !policy.ForbidCycles {
		return
	}
	switch trace := DetectCycle(t.Path, set); trace.Outcome {
	case OutcomeCycle:
		result.addError(Error{
			Code:    CodeCircularReference,
			Message: fmt.Sprintf("circular alias chain: %s", trace.ChainString()),
		})
	case OutcomeDepthExceeded:
		result.addError(Error{
			Code:    CodeCircularReference,
			Message: fmt.Sprintf("alias chain exceeds depth cap: %s", trace.ChainString()),
		})
	}
}

// ValidateBatch validates every token against the full batch as the
// alias-check target and returns per-token results plus a summary. One
// token's failure never aborts the rest.
//
// The batch is validated as a snapshot: if the caller's backing store
// admits concurrent writes the snapshot may be stale, which is an
// accepted limitation of the engine.
func ValidateBatch(tokens []token.Token, rs *rules.RuleSet) *BatchResult {
	set := token.NewSet(tokens)

	batch := &BatchResult{
		Results: make([]*Result, 0, len(tokens)),
		Summary: Summary{Total: len(tokens)},
	}

	for _, t := range tokens {
		result := ValidateToken(t, set, rs)
		batch.Results = append(batch.Results, result)

		if result.Valid {
			batch.Summary.Valid++
		} else {
			batch.Summary.Invalid++
		}
		if len(result.Warnings) > 0 {
			batch.Summary.WithWarnings++
		}
	}

	return batch
}
