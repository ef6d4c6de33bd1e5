package client

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// GoGitClient implements Client using go-git, for environments without a git
// binary on PATH. Behavior mirrors ExecClient, including the three-dot
// merge-base semantics of DiffNameStatus.
type GoGitClient struct{}

func NewGoGitClient() *GoGitClient { return &GoGitClient{} }

func (g *GoGitClient) open(path string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %v", ErrNotARepository, err)
		}
		return nil, err
	}
	return repo, nil
}

func (g *GoGitClient) IsRepoPath(ctx context.Context, path string) (bool, error) {
	_, err := g.open(path)
	return err == nil, nil
}

func (g *GoGitClient) CurrentRef(ctx context.Context, root string) (string, error) {
	repo, err := g.open(root)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", fmt.Errorf("%w: %v", ErrNoCommits, err)
		}
		return "", err
	}
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return head.Hash().String(), nil
}

func (g *GoGitClient) DefaultBranchSetting(ctx context.Context, root string) (string, error) {
	repo, err := g.open(root)
	if err != nil {
		return "", err
	}
	cfg, err := repo.Config()
	if err != nil {
		return "", nil
	}
	return cfg.Init.DefaultBranch, nil
}

func (g *GoGitClient) ResolveRef(ctx context.Context, root, ref string) (string, error) {
	repo, err := g.open(root)
	if err != nil {
		return "", err
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", ref, err)
	}
	return hash.String(), nil
}

func (g *GoGitClient) commitAt(repo *git.Repository, ref string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", ref, err)
	}
	return repo.CommitObject(*hash)
}

func (g *GoGitClient) DiffNameStatus(ctx context.Context, root, base string) ([]NameStatusEntry, error) {
	repo, err := g.open(root)
	if err != nil {
		return nil, err
	}
	baseCommit, err := g.commitAt(repo, base)
	if err != nil {
		return nil, err
	}
	headCommit, err := g.commitAt(repo, "HEAD")
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("%w: %v", ErrNoCommits, err)
		}
		return nil, err
	}

	// Three-dot semantics: diff from the merge base of base and HEAD.
	from := baseCommit
	if ancestors, err := baseCommit.MergeBase(headCommit); err == nil && len(ancestors) > 0 {
		from = ancestors[0]
	}
	fromTree, err := from.Tree()
	if err != nil {
		return nil, err
	}
	toTree, err := headCommit.Tree()
	if err != nil {
		return nil, err
	}
	changes, err := object.DiffTreeWithOptions(ctx, fromTree, toTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, err
	}

	entries := make([]NameStatusEntry, 0, len(changes))
	for _, ch := range changes {
		action, err := ch.Action()
		if err != nil {
			return nil, err
		}
		switch action {
		case merkletrie.Insert:
			entries = append(entries, NameStatusEntry{Code: "A", Path: ch.To.Name})
		case merkletrie.Delete:
			entries = append(entries, NameStatusEntry{Code: "D", Path: ch.From.Name})
		case merkletrie.Modify:
			if ch.From.Name != ch.To.Name {
				entries = append(entries, NameStatusEntry{Code: "R100", Path: ch.To.Name})
			} else {
				entries = append(entries, NameStatusEntry{Code: "M", Path: ch.To.Name})
			}
		}
	}
	return entries, nil
}

func (g *GoGitClient) TrackedFiles(ctx context.Context, root, ref string) ([]string, error) {
	repo, err := g.open(root)
	if err != nil {
		return nil, err
	}
	commit, err := g.commitAt(repo, ref)
	if err != nil {
		return nil, err
	}
	iter, err := commit.Files()
	if err != nil {
		return nil, err
	}
	var paths []string
	err = iter.ForEach(func(f *object.File) error {
		paths = append(paths, f.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func (g *GoGitClient) ShowFile(ctx context.Context, root, ref, path string) (string, error) {
	repo, err := g.open(root)
	if err != nil {
		return "", err
	}
	commit, err := g.commitAt(repo, ref)
	if err != nil {
		return "", err
	}
	f, err := commit.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return "", fmt.Errorf("%q does not exist at %s", path, ref)
		}
		return "", err
	}
	return f.Contents()
}
