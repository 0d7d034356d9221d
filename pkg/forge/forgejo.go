package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Forgejo implements the Forge interface for Forgejo/Gitea.
type Forgejo struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewForgejo creates a new Forgejo forge client.
func NewForgejo(baseURL, token string) *Forgejo {
	return &Forgejo{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second}, //nolint:mnd
	}
}

// Name returns the name of the forge.
func (f *Forgejo) Name() string {
	return "forgejo"
}

// forgejoCommit is the API response for a commit.
type forgejoCommit struct {
	SHA string `json:"sha"`
}

// forgejoPR is the API response for a pull request.
type forgejoPR struct {
	Number int `json:"number"`
}

// forgejoError is the API error response.
type forgejoError struct {
	Message string `json:"message"`
}

// parseForgejoError extracts a clean error message from API response.
func parseForgejoError(body []byte) string {
	var errResp forgejoError
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		return errResp.Message
	}
	// Fallback to raw body, but clean it up
	return strings.TrimSpace(string(body))
}

// do executes a request with auth and decodes the JSON response into out.
func (f *Forgejo) do(ctx context.Context, method, url string, body io.Reader, wantStatus int, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if f.token != "" {
		req.Header.Set("Authorization", "token "+f.token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s (%s)", resp.Status, parseForgejoError(respBody))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListPRCommits returns the SHAs of the pull request's commits in merge order.
func (f *Forgejo) ListPRCommits(ctx context.Context, owner, repo string, number int) ([]string, error) {
	const perPage = 100

	var shas []string
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/api/v1/repos/%s/%s/pulls/%d/commits?page=%d&limit=%d",
			f.baseURL, owner, repo, number, page, perPage)

		var commits []forgejoCommit
		if err := f.do(ctx, http.MethodGet, url, nil, http.StatusOK, &commits); err != nil {
			return nil, fmt.Errorf("failed to list commits of PR #%d: %w", number, err)
		}

		for _, commit := range commits {
			shas = append(shas, commit.SHA)
		}

		if len(commits) < perPage {
			break
		}
	}

	return shas, nil
}

// forgejoCreatePRRequest is the request body for creating a PR.
type forgejoCreatePRRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Head  string `json:"head"`
	Base  string `json:"base"`
}

// CreatePR creates a new pull request and returns its number.
func (f *Forgejo) CreatePR(ctx context.Context, owner, repo string, opts CreatePROptions) (int, error) {
	url := fmt.Sprintf("%s/api/v1/repos/%s/%s/pulls", f.baseURL, owner, repo)

	jsonBody, err := json.Marshal(forgejoCreatePRRequest(opts))
	if err != nil {
		return 0, fmt.Errorf("failed to marshal PR request: %w", err)
	}

	var pr forgejoPR
	if err := f.do(ctx, http.MethodPost, url, strings.NewReader(string(jsonBody)), http.StatusCreated, &pr); err != nil {
		return 0, fmt.Errorf("failed to create PR: %w", err)
	}

	return pr.Number, nil
}

// forgejoAddLabelsRequest is the request body for adding labels by name.
type forgejoAddLabelsRequest struct {
	Labels []string `json:"labels"`
}

// AddLabels attaches labels to an issue or pull request.
func (f *Forgejo) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	url := fmt.Sprintf("%s/api/v1/repos/%s/%s/issues/%d/labels", f.baseURL, owner, repo, number)

	jsonBody, err := json.Marshal(forgejoAddLabelsRequest{Labels: labels})
	if err != nil {
		return fmt.Errorf("failed to marshal label request: %w", err)
	}

	if err := f.do(ctx, http.MethodPost, url, strings.NewReader(string(jsonBody)), http.StatusOK, nil); err != nil {
		return fmt.Errorf("failed to add labels to #%d: %w", number, err)
	}

	return nil
}

// forgejoCommentRequest is the request body for creating a comment.
type forgejoCommentRequest struct {
	Body string `json:"body"`
}

// CreateComment posts a comment on an issue or pull request.
func (f *Forgejo) CreateComment(ctx context.Context, owner, repo string, number int, body string) error {
	url := fmt.Sprintf("%s/api/v1/repos/%s/%s/issues/%d/comments", f.baseURL, owner, repo, number)

	jsonBody, err := json.Marshal(forgejoCommentRequest{Body: body})
	if err != nil {
		return fmt.Errorf("failed to marshal comment request: %w", err)
	}

	if err := f.do(ctx, http.MethodPost, url, strings.NewReader(string(jsonBody)), http.StatusCreated, nil); err != nil {
		return fmt.Errorf("failed to comment on #%d: %w", number, err)
	}

	return nil
}
