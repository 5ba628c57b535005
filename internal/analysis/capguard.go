package analysis

import "iter"

// ApplyCap consumes candidates in encounter order until limit is reached.
// Anything past the limit is neither pulled further nor counted; truncated
// reports whether at least one candidate was left behind. The cap exists to
// bound worst-case request latency against a classifier of non-trivial
// per-call cost.
func ApplyCap(candidates iter.Seq[string], limit int) (accepted []string, truncated bool) {
	for candidate := range candidates {
		if len(accepted) >= limit {
			truncated = true
			break
		}
		accepted = append(accepted, candidate)
	}
	return accepted, truncated
}
