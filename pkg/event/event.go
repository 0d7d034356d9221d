// Package event decodes the pull request trigger payload.
package event

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/go-github/v80/github"
)

// Actions recognized by the target resolver. Any other action yields no
// targets.
const (
	ActionClosed  = "closed"
	ActionLabeled = "labeled"
)

// Event is the decoded pull_request event that triggered the run.
type Event struct {
	// Action is the pull_request event action ("closed", "labeled", ...).
	Action string

	// Label is the newly applied label. Only set for "labeled" events.
	Label string

	// Labels is the full current label list on the pull request.
	Labels []string

	Owner string
	Repo  string

	Number      int
	Title       string
	Author      string
	Merged      bool
	MergeCommit string
}

// Load reads and parses the event payload from a file, typically the one
// GITHUB_EVENT_PATH points at.
func Load(path string) (*Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}
	return Parse(data)
}

// Parse decodes a pull_request event payload.
func Parse(data []byte) (*Event, error) {
	var payload github.PullRequestEvent
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	pr := payload.GetPullRequest()
	if pr == nil {
		return nil, fmt.Errorf("event payload has no pull_request")
	}

	labels := make([]string, len(pr.Labels))
	for i, label := range pr.Labels {
		labels[i] = label.GetName()
	}

	ev := &Event{
		Action:      payload.GetAction(),
		Label:       payload.GetLabel().GetName(),
		Labels:      labels,
		Owner:       payload.GetRepo().GetOwner().GetLogin(),
		Repo:        payload.GetRepo().GetName(),
		Number:      pr.GetNumber(),
		Title:       pr.GetTitle(),
		Author:      pr.GetUser().GetLogin(),
		Merged:      pr.GetMerged(),
		MergeCommit: pr.GetMergeCommitSHA(),
	}

	return ev, nil
}
