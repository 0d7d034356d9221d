package event

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const labeledPayload = `{
	"action": "labeled",
	"label": {"name": "backport release-1"},
	"pull_request": {
		"number": 42,
		"title": "Fix bug",
		"merged": true,
		"merge_commit_sha": "abc123",
		"user": {"login": "octocat"},
		"labels": [
			{"name": "bug"},
			{"name": "backport release-1"}
		]
	},
	"repository": {
		"name": "example",
		"owner": {"login": "forgeops"}
	}
}`

func TestParseLabeledEvent(t *testing.T) {
	ev, err := Parse([]byte(labeledPayload))

	require.NoError(t, err)
	assert.Equal(t, "labeled", ev.Action)
	assert.Equal(t, "backport release-1", ev.Label)
	assert.Equal(t, []string{"bug", "backport release-1"}, ev.Labels)
	assert.Equal(t, "forgeops", ev.Owner)
	assert.Equal(t, "example", ev.Repo)
	assert.Equal(t, 42, ev.Number)
	assert.Equal(t, "Fix bug", ev.Title)
	assert.Equal(t, "octocat", ev.Author)
	assert.True(t, ev.Merged)
	assert.Equal(t, "abc123", ev.MergeCommit)
}

func TestParseClosedEventWithoutLabel(t *testing.T) {
	payload := `{
		"action": "closed",
		"pull_request": {
			"number": 7,
			"merged": false
		}
	}`

	ev, err := Parse([]byte(payload))

	require.NoError(t, err)
	assert.Equal(t, "closed", ev.Action)
	assert.Empty(t, ev.Label)
	assert.False(t, ev.Merged)
}

func TestParseMissingPullRequest(t *testing.T) {
	_, err := Parse([]byte(`{"action": "closed"}`))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no pull_request")
}

func TestParseInvalidJSON(t *testing.T) {
	_, err := Parse([]byte("not json"))

	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(labeledPayload), 0o644))

	ev, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 42, ev.Number)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))

	assert.Error(t, err)
}
