// Package target resolves backport labels into (base, head) branch pairs.
package target

import (
	"fmt"
	"regexp"

	"github.com/forgeops/backport-action/pkg/event"
)

// Target is one requested backport: the branch it lands on and the branch
// that will carry the replayed commits.
type Target struct {
	Base string
	Head string
}

// labelPattern matches "backport <base>" and "backport <base> <head>".
// Anything else, including extra tokens, is not a backport label.
var labelPattern = regexp.MustCompile(`^backport ([^ ]+)(?: ([^ ]+))?$`)

// Resolve computes the targets to process for a trigger event.
//
// For a "closed" (merged) event every backport label currently on the PR
// fires. For a "labeled" event only the newly applied label fires, so
// pre-existing labels are not reprocessed. Any other action yields nothing.
//
// Duplicate bases collapse to the last-seen head; the result is ordered by
// first appearance of each distinct base.
func Resolve(action, triggeringLabel string, labels []string, prNumber int) []Target {
	var candidates []string
	switch action {
	case event.ActionClosed:
		candidates = labels
	case event.ActionLabeled:
		candidates = []string{triggeringLabel}
	default:
		return nil
	}

	var order []string
	heads := make(map[string]string)
	for _, label := range candidates {
		matches := labelPattern.FindStringSubmatch(label)
		if matches == nil {
			continue
		}

		base := matches[1]
		head := matches[2]
		if head == "" {
			head = fmt.Sprintf("backport-%d-to-%s", prNumber, base)
		}

		if _, seen := heads[base]; !seen {
			order = append(order, base)
		}
		heads[base] = head
	}

	targets := make([]Target, 0, len(order))
	for _, base := range order {
		targets = append(targets, Target{Base: base, Head: heads[base]})
	}

	return targets
}
