package client

import "context"

// Client provides the read-only git queries the panel needs.
// Implementations may use the git binary or a pure-Go library.
type Client interface {
	// IsRepoPath reports whether path is inside a git work tree.
	IsRepoPath(ctx context.Context, path string) (bool, error)
	// CurrentRef returns the current branch name, or the commit hash when
	// HEAD is detached.
	CurrentRef(ctx context.Context, root string) (string, error)
	// DefaultBranchSetting returns the configured init.defaultBranch value,
	// or "" when unset. An unset value is not an error.
	DefaultBranchSetting(ctx context.Context, root string) (string, error)
	// ResolveRef resolves ref to a commit hash. Failure means the ref does
	// not name a commit in this repository.
	ResolveRef(ctx context.Context, root, ref string) (string, error)
	// DiffNameStatus lists paths changed between the merge base of base and
	// HEAD and the current HEAD (three-dot comparison), one entry per path.
	DiffNameStatus(ctx context.Context, root, base string) ([]NameStatusEntry, error)
	// TrackedFiles lists every file tracked at ref, repo-relative with
	// forward slashes.
	TrackedFiles(ctx context.Context, root, ref string) ([]string, error)
	// ShowFile returns the content of path as it exists at ref.
	ShowFile(ctx context.Context, root, ref, path string) (string, error)
}

// NameStatusEntry is one line of a name-status diff. Code is the raw status
// field (e.g. "M", "A", "R100"); Path is the repo-relative path, and for
// renames the destination path.
type NameStatusEntry struct {
	Code string
	Path string
}
