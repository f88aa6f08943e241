package validate

import (
	"strings"

	"github.com/kamishino/design-tokens-sub001/rules"
	"github.com/kamishino/design-tokens-sub001/token"
)

// Outcome tags the termination state of an alias-chain traversal.
type Outcome string

const (
	// OutcomeResolved means the chain ended at a non-alias value.
	OutcomeResolved Outcome = "resolved"
	// OutcomeBroken means the chain reached a path with no token.
	// Traversal terminates successfully; absence is reported separately
	// by CheckExists.
	OutcomeBroken Outcome = "broken"
	// OutcomeCycle means the chain revisited a path already on it.
	OutcomeCycle Outcome = "cycle"
	// OutcomeDepthExceeded means the depth cap fired before the chain
	// terminated. Only malformed data that bypassed upstream checks can
	// reach this.
	OutcomeDepthExceeded Outcome = "depth-exceeded"
)

// Trace is the result of following an alias chain.
type Trace struct {
	Outcome Outcome
	// Chain is the ordered list of visited paths. For a cycle it runs
	// from the first repeated path back to itself, e.g. [a b c a].
	Chain []string
}

// ChainString renders the chain as "a → b → c → a".
func (t Trace) ChainString() string {
	return strings.Join(t.Chain, " → ")
}

// ExtractAlias recognizes the {path} literal alias syntax and returns
// the referenced path.
func ExtractAlias(value string) (string, bool) {
	return token.Alias(value)
}

// CheckExists reports whether an alias target exists in the set, as seen
// from the referencing token's scope. A same-brand, brand-less
// same-project, or global token all count as existing targets; when the
// policy forbids cross-scope references only same-scope targets count.
func CheckExists(path string, set *token.Set, from token.Scope, policy rules.AliasPolicy) bool {
	if set == nil {
		return false
	}
	for _, target := range set.All(path) {
		if target.Scope == from {
			return true
		}
		if policy.AllowCrossScope && visibleFrom(from, target.Scope) {
			return true
		}
	}
	return false
}

// visibleFrom reports whether a token at target scope can be referenced
// from a token at from scope: global tokens always, brand-less project
// tokens of the same project, and brand tokens of the same brand.
func visibleFrom(from, target token.Scope) bool {
	switch target.Level {
	case token.LevelGlobal:
		return true
	case token.LevelProject:
		return target.Project == from.Project && from.Project != ""
	case token.LevelBrand:
		return target.Project == from.Project && target.Brand == from.Brand && from.Brand != ""
	}
	return false
}

// DetectCycle follows the alias chain starting at path and reports how
// it terminates. The visited set is local to the call, and traversal is
// capped at the total token count so it terminates even on malformed
// data.
func DetectCycle(start string, set *token.Set) Trace {
	if set == nil {
		return Trace{Outcome: OutcomeBroken, Chain: []string{start}}
	}

	maxDepth := set.Len() + 1
	visited := make([]string, 0, 8)
	index := make(map[string]int, 8)

	current := start
	for depth := 0; ; depth++ {
		if at, seen := index[current]; seen {
			chain := append(append([]string{}, visited[at:]...), current)
			return Trace{Outcome: OutcomeCycle, Chain: chain}
		}
		if depth >= maxDepth {
			return Trace{Outcome: OutcomeDepthExceeded, Chain: append(visited, current)}
		}

		index[current] = len(visited)
		visited = append(visited, current)

		tok, ok := set.Lookup(current)
		if !ok {
			return Trace{Outcome: OutcomeBroken, Chain: visited}
		}
		next, isAlias := token.Alias(tok.Value)
		if !isAlias {
			return Trace{Outcome: OutcomeResolved, Chain: visited}
		}
		current = next
	}
}
