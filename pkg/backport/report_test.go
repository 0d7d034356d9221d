package backport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgeops/backport-action/pkg/target"
)

func TestRenderTitle(t *testing.T) {
	tests := []struct {
		name     string
		template string
		base     string
		title    string
		expected string
	}{
		{
			name:     "both placeholders",
			template: "[{{base}}] {{originalTitle}}",
			base:     "v1.2",
			title:    "Fix bug",
			expected: "[v1.2] Fix bug",
		},
		{
			name:     "repeated placeholder is replaced globally",
			template: "{{base}}: backport to {{base}}",
			base:     "v2",
			title:    "ignored",
			expected: "v2: backport to v2",
		},
		{
			name:     "unmatched placeholder stays verbatim",
			template: "[{{base}}] {{unknown}} {{originalTitle}}",
			base:     "v1",
			title:    "Fix",
			expected: "[v1] {{unknown}} Fix",
		},
		{
			name:     "no placeholders",
			template: "plain title",
			base:     "v1",
			title:    "Fix",
			expected: "plain title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RenderTitle(tt.template, tt.base, tt.title))
		})
	}
}

func TestRecoveryScript(t *testing.T) {
	script := RecoveryScript(
		target.Target{Base: "release-2", Head: "backport-42-to-release-2"},
		[]string{"abc123", "def456"},
	)

	assert.Contains(t, script, ".worktree/backport-release-2")
	assert.Contains(t, script, "git fetch origin release-2")
	assert.Contains(t, script, "git worktree add .worktree/backport-release-2 origin/release-2")
	assert.Contains(t, script, "git switch --create backport-42-to-release-2")
	assert.Contains(t, script, "git cherry-pick -x abc123 def456")
	assert.Contains(t, script, "git push --set-upstream origin backport-42-to-release-2")
	assert.Contains(t, script, "git worktree remove .worktree/backport-release-2")
}

func TestFailureCommentWithStreams(t *testing.T) {
	f := &Failure{
		Stage:   StageReplay,
		Target:  target.Target{Base: "release-1", Head: "backport-7-to-release-1"},
		Commits: []string{"abc123"},
		Stderr:  "error: could not apply abc123",
		Stdout:  "Auto-merging file.go",
		Err:     errors.New("exit status 1"),
	}

	comment := FailureComment(f)

	assert.Contains(t, comment, "Backport to `release-1` failed")
	assert.Contains(t, comment, "<summary>stderr</summary>")
	assert.Contains(t, comment, "error: could not apply abc123")
	assert.Contains(t, comment, "<summary>stdout</summary>")
	assert.Contains(t, comment, "Auto-merging file.go")
	assert.Contains(t, comment, "git cherry-pick -x abc123")
}

func TestFailureCommentWithoutStreams(t *testing.T) {
	f := &Failure{
		Stage:   StageCreatePR,
		Target:  target.Target{Base: "v1", Head: "backport-1-to-v1"},
		Commits: []string{"abc123"},
		Err:     errors.New("422 Unprocessable Entity"),
	}

	comment := FailureComment(f)

	assert.NotContains(t, comment, "<details>")
	assert.Contains(t, comment, "To backport manually")
}

func TestFailureError(t *testing.T) {
	underlying := errors.New("boom")
	f := &Failure{
		Stage:  StageSetup,
		Target: target.Target{Base: "v1", Head: "h"},
		Err:    underlying,
	}

	assert.Contains(t, f.Error(), "branch setup failed")
	assert.Contains(t, f.Error(), "v1")
	assert.Equal(t, underlying, errors.Unwrap(f))
}
