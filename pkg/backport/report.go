package backport

import (
	"fmt"
	"strings"

	"github.com/forgeops/backport-action/pkg/target"
	"github.com/forgeops/backport-action/shared/version"
)

// RenderTitle substitutes {{base}} and {{originalTitle}} in the template.
// Substitution is literal, case-sensitive and global; unmatched placeholders
// are left verbatim.
func RenderTitle(template, base, originalTitle string) string {
	title := strings.ReplaceAll(template, "{{base}}", base)
	return strings.ReplaceAll(title, "{{originalTitle}}", originalTitle)
}

// prBody creates the body for a created backport PR.
func prBody(cs *ChangeSet, t target.Target) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Backport of #%d to `%s`, originally authored by @%s.\n", cs.Number, t.Base, cs.Author))
	sb.WriteString("\n---\n")
	sb.WriteString(version.Credit())
	sb.WriteString("\n")

	return sb.String()
}

// FailureComment renders the comment posted on the original PR when a
// target fails: the error, the captured process output, and a literal
// manual recovery procedure.
func FailureComment(f *Failure) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Backport to `%s` failed: %s: %v\n", f.Target.Base, f.Stage, f.Err))

	if f.Stderr != "" {
		writeDetails(&sb, "stderr", f.Stderr)
	}
	if f.Stdout != "" {
		writeDetails(&sb, "stdout", f.Stdout)
	}

	sb.WriteString("\nTo backport manually, run:\n\n```bash\n")
	sb.WriteString(RecoveryScript(f.Target, f.Commits))
	sb.WriteString("```\n")

	return sb.String()
}

// writeDetails renders a collapsible section.
func writeDetails(sb *strings.Builder, summary, body string) {
	sb.WriteString("\n<details>\n<summary>" + summary + "</summary>\n\n```\n")
	sb.WriteString(strings.TrimRight(body, "\n"))
	sb.WriteString("\n```\n</details>\n")
}

// RecoveryScript renders the copy-pasteable command sequence that redoes
// the backport by hand. The worktree path is derived from the base branch
// only, so reruns land on the same path.
func RecoveryScript(t target.Target, commits []string) string {
	worktree := ".worktree/backport-" + t.Base

	var sb strings.Builder
	fmt.Fprintf(&sb, "git fetch origin %s\n", t.Base)
	fmt.Fprintf(&sb, "git worktree add %s origin/%s\n", worktree, t.Base)
	fmt.Fprintf(&sb, "cd %s\n", worktree)
	fmt.Fprintf(&sb, "git switch --create %s\n", t.Head)
	fmt.Fprintf(&sb, "git cherry-pick -x %s\n", strings.Join(commits, " "))
	fmt.Fprintf(&sb, "git push --set-upstream origin %s\n", t.Head)
	fmt.Fprintf(&sb, "cd -\n")
	fmt.Fprintf(&sb, "git worktree remove %s\n", worktree)
	fmt.Fprintf(&sb, "# then open a pull request with base %s and head %s\n", t.Base, t.Head)

	return sb.String()
}
