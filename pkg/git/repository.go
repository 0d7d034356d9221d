package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Repository wraps go-git for read-only inspection of the working copy.
type Repository struct {
	repo *gogit.Repository
}

// Open opens an existing git repository.
func Open(path string) (*Repository, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	return &Repository{repo: repo}, nil
}

// MergeParents returns the parent SHAs of the given commit in order. A true
// merge commit has two; a squashed or fast-forwarded commit has one.
func (r *Repository) MergeParents(sha string) ([]string, error) {
	commit, err := r.repo.CommitObject(plumbing.NewHash(sha))
	if err != nil {
		return nil, fmt.Errorf("failed to get commit %s: %w", sha, err)
	}

	parents := make([]string, len(commit.ParentHashes))
	for i, hash := range commit.ParentHashes {
		parents[i] = hash.String()
	}

	return parents, nil
}
