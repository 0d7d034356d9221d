// Package git provides git operations for the backport working copy.
//
// Mutating operations (clone, fetch, switch, cherry-pick, push) shell out to
// the git binary because go-git doesn't support cherry-pick natively.
// Read-only inspection goes through go-git, see repository.go.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandError is a failed git invocation with its captured output.
type CommandError struct {
	Args   []string
	Stdout string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Executor runs a git operation with arguments against a working directory
// and returns the captured output streams.
type Executor interface {
	Run(ctx context.Context, args ...string) (stdout, stderr string, err error)
}

// CLI is an Executor backed by the git binary.
type CLI struct {
	// Dir is the working directory commands run in.
	Dir string
}

// NewCLI returns an Executor running git in the given directory.
func NewCLI(dir string) *CLI {
	return &CLI{Dir: dir}
}

// Run executes git with the given arguments. On non-zero exit the returned
// error is a *CommandError carrying both captured streams.
func (c *CLI) Run(ctx context.Context, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), stderr.String(), &CommandError{
			Args:   args,
			Stdout: stdout.String(),
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return stdout.String(), stderr.String(), nil
}

// Client provides the git operations the backport flow needs on top of an
// Executor.
type Client struct {
	exec Executor
}

// NewClient creates a Client using the given Executor.
func NewClient(exec Executor) *Client {
	return &Client{exec: exec}
}

// CloneWithToken clones a repository over HTTPS into the working directory,
// with the access token embedded in the clone URL. The token is scrubbed
// from any returned error.
func (c *Client) CloneWithToken(ctx context.Context, host, owner, repo, token string) error {
	var auth string
	if token != "" {
		auth = "x-access-token:" + token + "@"
	}
	url := fmt.Sprintf("https://%s%s/%s/%s.git", auth, host, owner, repo)

	_, _, err := c.exec.Run(ctx, "clone", url, ".")
	if err != nil && token != "" {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			for i, arg := range cmdErr.Args {
				cmdErr.Args[i] = strings.ReplaceAll(arg, token, "***")
			}
			cmdErr.Stderr = strings.ReplaceAll(cmdErr.Stderr, token, "***")
			cmdErr.Stdout = strings.ReplaceAll(cmdErr.Stdout, token, "***")
		}
	}
	return err
}

// ConfigureUser sets the commit identity in the working copy.
func (c *Client) ConfigureUser(ctx context.Context, name, email string) error {
	if _, _, err := c.exec.Run(ctx, "config", "user.name", name); err != nil {
		return err
	}
	_, _, err := c.exec.Run(ctx, "config", "user.email", email)
	return err
}

// FetchRef fetches a specific ref from the remote so its commits become
// locally reachable.
func (c *Client) FetchRef(ctx context.Context, remote, ref string) error {
	_, _, err := c.exec.Run(ctx, "fetch", remote, ref)
	return err
}

// Switch checks out an existing branch. Fails if the branch does not exist.
func (c *Client) Switch(ctx context.Context, branch string) error {
	_, _, err := c.exec.Run(ctx, "switch", branch)
	return err
}

// SwitchCreate creates a new branch from the current HEAD and switches to
// it. Fails if the branch already exists.
func (c *Client) SwitchCreate(ctx context.Context, branch string) error {
	_, _, err := c.exec.Run(ctx, "switch", "--create", branch)
	return err
}

// CherryPick applies the given commits in order onto the current branch.
func (c *Client) CherryPick(ctx context.Context, shas ...string) error {
	args := append([]string{"cherry-pick"}, shas...)
	_, _, err := c.exec.Run(ctx, args...)
	return err
}

// CherryPickRange applies the commit range from..to onto the current branch.
func (c *Client) CherryPickRange(ctx context.Context, from, to string) error {
	_, _, err := c.exec.Run(ctx, "cherry-pick", from+".."+to)
	return err
}

// AbortCherryPick aborts an in-progress cherry-pick, returning the working
// copy to a clean state.
func (c *Client) AbortCherryPick(ctx context.Context) error {
	_, _, err := c.exec.Run(ctx, "cherry-pick", "--abort")
	return err
}

// Push publishes a branch to the remote.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	_, _, err := c.exec.Run(ctx, "push", "--set-upstream", remote, branch)
	return err
}
