package client

import (
	"context"
	"errors"
	"os/exec"
	"testing"
)

// The go-git backend is exercised against fixtures built with the git binary
// so both implementations see identical repositories.

func TestGoGitClientDiffNameStatus(t *testing.T) {
	requireGit(t)
	dir, run := fixtureRepo(t)
	run("checkout", "-b", "feature")
	write(t, dir, "src/a.txt", "one\ntwo\n")
	write(t, dir, "src/b.txt", "new\n")
	run("add", ".")
	run("commit", "-m", "changes")

	g := NewGoGitClient()
	entries, err := g.DiffNameStatus(context.Background(), dir, "main")
	if err != nil {
		t.Fatalf("DiffNameStatus: %v", err)
	}
	got := map[string]string{}
	for _, e := range entries {
		got[e.Path] = e.Code
	}
	if got["src/a.txt"] != "M" || got["src/b.txt"] != "A" {
		t.Fatalf("unexpected entries: %v", entries)
	}
}

func TestGoGitClientTrackedFilesAndShowFile(t *testing.T) {
	requireGit(t)
	dir, _ := fixtureRepo(t)
	g := NewGoGitClient()

	paths, err := g.TrackedFiles(context.Background(), dir, "main")
	if err != nil {
		t.Fatalf("TrackedFiles: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v", paths)
	}

	content, err := g.ShowFile(context.Background(), dir, "main", "src/a.txt")
	if err != nil {
		t.Fatalf("ShowFile: %v", err)
	}
	if content != "one\n" {
		t.Fatalf("content = %q", content)
	}

	if _, err := g.ShowFile(context.Background(), dir, "main", "nope.txt"); err == nil {
		t.Fatalf("expected readable error for a missing path")
	}
}

func TestGoGitClientCurrentRefAndResolve(t *testing.T) {
	requireGit(t)
	dir, run := fixtureRepo(t)
	run("checkout", "-b", "feature")

	g := NewGoGitClient()
	current, err := g.CurrentRef(context.Background(), dir)
	if err != nil {
		t.Fatalf("CurrentRef: %v", err)
	}
	if current != "feature" {
		t.Fatalf("current = %q", current)
	}
	if _, err := g.ResolveRef(context.Background(), dir, "main"); err != nil {
		t.Fatalf("ResolveRef(main): %v", err)
	}
	if _, err := g.ResolveRef(context.Background(), dir, "missing"); err == nil {
		t.Fatalf("expected failure for an unknown ref")
	}
}

func TestGoGitClientNoCommits(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	cmd := exec.Command("git", "init", "-b", "main")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git init: %v\n%s", err, string(out))
	}

	g := NewGoGitClient()
	_, err := g.CurrentRef(context.Background(), dir)
	if !errors.Is(err, ErrNoCommits) {
		t.Fatalf("expected ErrNoCommits, got %v", err)
	}
}
