package forge

import (
	"context"
	"fmt"

	"github.com/google/go-github/v80/github"
)

// GitHub implements the Forge interface for GitHub.
type GitHub struct {
	client *github.Client
}

// NewGitHub creates a new GitHub forge client.
func NewGitHub(token string) *GitHub {
	var client *github.Client

	if token != "" {
		client = github.NewClient(nil).WithAuthToken(token)
	} else {
		client = github.NewClient(nil)
	}

	return &GitHub{client: client}
}

// Name returns the name of the forge.
func (g *GitHub) Name() string {
	return "github"
}

// ListPRCommits returns the SHAs of the pull request's commits in merge order.
func (g *GitHub) ListPRCommits(ctx context.Context, owner, repo string, number int) ([]string, error) {
	const perPage = 100
	opts := &github.ListOptions{PerPage: perPage}

	var shas []string
	for {
		commits, resp, err := g.client.PullRequests.ListCommits(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits of PR #%d: %w", number, err)
		}

		for _, commit := range commits {
			shas = append(shas, commit.GetSHA())
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return shas, nil
}

// CreatePR creates a new pull request and returns its number.
func (g *GitHub) CreatePR(ctx context.Context, owner, repo string, opts CreatePROptions) (int, error) {
	newPR := &github.NewPullRequest{
		Title: github.Ptr(opts.Title),
		Body:  github.Ptr(opts.Body),
		Head:  github.Ptr(opts.Head),
		Base:  github.Ptr(opts.Base),
	}

	pr, _, err := g.client.PullRequests.Create(ctx, owner, repo, newPR)
	if err != nil {
		return 0, fmt.Errorf("failed to create PR: %w", err)
	}

	return pr.GetNumber(), nil
}

// AddLabels attaches labels to an issue or pull request.
func (g *GitHub) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	_, _, err := g.client.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels to #%d: %w", number, err)
	}
	return nil
}

// CreateComment posts a comment on an issue or pull request.
func (g *GitHub) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	comment := &github.IssueComment{Body: github.Ptr(body)}
	_, _, err := g.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return fmt.Errorf("failed to comment on #%d: %w", number, err)
	}
	return nil
}
