// Package branch infers the comparison branch a change set is diffed against.
package branch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
)

// FallbackBranch is used when no candidate resolves at all.
const FallbackBranch = "master"

// Resolver picks the branch to compare HEAD against. Candidates are tried in
// a fixed priority order and each one must actually resolve to a commit
// before it is accepted; a candidate that does not resolve is skipped.
type Resolver struct {
	client client.Client
	logger logging.Logger

	mu       sync.Mutex
	resolved string
}

func NewResolver(c client.Client, logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Resolver{client: c, logger: logger}
}

// Resolve determines the comparison branch for the repository at root.
// Priority: init.defaultBranch setting, then "master", then "main", then the
// currently checked-out branch, then the literal fallback. A repository with
// no commits fails with client.ErrNoCommits.
func (r *Resolver) Resolve(ctx context.Context, root string) (string, error) {
	if _, err := r.client.ResolveRef(ctx, root, "HEAD"); err != nil {
		if errors.Is(err, client.ErrNotARepository) || errors.Is(err, client.ErrAmbiguousRef) {
			return "", err
		}
		if errors.Is(err, client.ErrNoCommits) {
			return "", err
		}
		// An unresolvable HEAD inside a repository means an unborn branch.
		return "", fmt.Errorf("%w: %v", client.ErrNoCommits, err)
	}

	candidates := make([]string, 0, 3)
	if configured, err := r.client.DefaultBranchSetting(ctx, root); err == nil && configured != "" {
		candidates = append(candidates, configured)
	}
	candidates = append(candidates, "master", "main")

	for _, name := range candidates {
		if r.exists(ctx, root, name) {
			return r.accept(name), nil
		}
		r.logger.Debug("branch candidate skipped", "branch", name)
	}

	if current, err := r.client.CurrentRef(ctx, root); err == nil && current != "" {
		if r.exists(ctx, root, current) {
			return r.accept(current), nil
		}
	}

	r.logger.Warn("no branch candidate resolved, using fallback", "branch", FallbackBranch)
	return r.accept(FallbackBranch), nil
}

// Resolved returns the branch accepted by the most recent Resolve call, or ""
// before the first call. This is the supported way for collaborators to read
// the comparison branch.
func (r *Resolver) Resolved() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolved
}

func (r *Resolver) exists(ctx context.Context, root, ref string) bool {
	_, err := r.client.ResolveRef(ctx, root, ref)
	return err == nil
}

func (r *Resolver) accept(name string) string {
	r.mu.Lock()
	r.resolved = name
	r.mu.Unlock()
	r.logger.Debug("comparison branch resolved", "branch", name)
	return name
}
