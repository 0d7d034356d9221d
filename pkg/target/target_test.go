package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClosedAction(t *testing.T) {
	tests := []struct {
		name     string
		labels   []string
		expected []Target
	}{
		{
			name:   "single label without head",
			labels: []string{"backport release-1"},
			expected: []Target{
				{Base: "release-1", Head: "backport-42-to-release-1"},
			},
		},
		{
			name:   "explicit head branch",
			labels: []string{"backport release-1 custom-head"},
			expected: []Target{
				{Base: "release-1", Head: "custom-head"},
			},
		},
		{
			name:   "multiple backport labels",
			labels: []string{"backport v1", "backport v2"},
			expected: []Target{
				{Base: "v1", Head: "backport-42-to-v1"},
				{Base: "v2", Head: "backport-42-to-v2"},
			},
		},
		{
			name:     "unrelated labels are ignored",
			labels:   []string{"bug", "help wanted", "backports welcome"},
			expected: nil,
		},
		{
			name:     "bare backport label does not match",
			labels:   []string{"backport"},
			expected: nil,
		},
		{
			name:     "extra tokens do not match",
			labels:   []string{"backport v1 head extra"},
			expected: nil,
		},
		{
			name:   "mixed labels keep only matches",
			labels: []string{"bug", "backport v1", "backport", "backport v2 stable-v2"},
			expected: []Target{
				{Base: "v1", Head: "backport-42-to-v1"},
				{Base: "v2", Head: "stable-v2"},
			},
		},
		{
			name:   "duplicate base last head wins",
			labels: []string{"backport v1 a", "backport v1 b"},
			expected: []Target{
				{Base: "v1", Head: "b"},
			},
		},
		{
			name:   "duplicate base keeps first-seen order",
			labels: []string{"backport v1 a", "backport v2", "backport v1 b"},
			expected: []Target{
				{Base: "v1", Head: "b"},
				{Base: "v2", Head: "backport-42-to-v2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := Resolve("closed", "", tt.labels, 42)
			assert.Equal(t, tt.expected, targets)
		})
	}
}

func TestResolveLabeledActionOnlyConsidersNewLabel(t *testing.T) {
	// Two pre-existing backport labels plus the newly applied one: only the
	// new label fires.
	labels := []string{"backport v1", "backport v2", "backport v3"}

	targets := Resolve("labeled", "backport v3", labels, 7)

	assert.Equal(t, []Target{{Base: "v3", Head: "backport-7-to-v3"}}, targets)
}

func TestResolveLabeledActionNonBackportLabel(t *testing.T) {
	targets := Resolve("labeled", "bug", []string{"backport v1", "bug"}, 7)

	assert.Empty(t, targets)
}

func TestResolveOtherActions(t *testing.T) {
	for _, action := range []string{"opened", "synchronize", "reopened", ""} {
		t.Run("action "+action, func(t *testing.T) {
			targets := Resolve(action, "backport v1", []string{"backport v1"}, 1)
			assert.Empty(t, targets)
		})
	}
}
