package client

import (
	"errors"
	"fmt"
	"testing"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/runner"
)

func runnerErr(stderr string) error {
	return fmt.Errorf("wrapped: %w", &runner.Error{
		Args:   []string{"rev-parse"},
		Stderr: stderr,
		Err:    errors.New("exit status 128"),
	})
}

func TestClassify(t *testing.T) {
	cases := []struct {
		stderr string
		want   error
	}{
		{"fatal: not a git repository (or any of the parent directories): .git", ErrNotARepository},
		{"fatal: your current branch 'main' does not have any commits yet", ErrNoCommits},
		{"fatal: bad default revision 'HEAD'", ErrNoCommits},
		{"fatal: Needed a single revision", ErrNoCommits},
		{"fatal: ambiguous argument 'HEAD': unknown revision or path not in the working tree.", ErrNoCommits},
		{"fatal: 'main' is ambiguous", ErrAmbiguousRef},
	}
	for _, tc := range cases {
		got := Classify(runnerErr(tc.stderr))
		if !errors.Is(got, tc.want) {
			t.Fatalf("Classify(%q) = %v, want %v", tc.stderr, got, tc.want)
		}
	}
}

func TestClassifyMissingRangeBaseStaysGeneric(t *testing.T) {
	// The unborn-HEAD phrasing also appears when the base of a range is a
	// nonexistent ref; that must not be reported as "no commits".
	got := Classify(runnerErr("fatal: ambiguous argument 'nope...HEAD': unknown revision or path not in the working tree."))
	if errors.Is(got, ErrNoCommits) || errors.Is(got, ErrAmbiguousRef) || errors.Is(got, ErrNotARepository) {
		t.Fatalf("missing range base must stay generic, got %v", got)
	}
}

func TestClassifyPassesThroughUnrecognized(t *testing.T) {
	err := runnerErr("fatal: something completely different")
	got := Classify(err)
	if errors.Is(got, ErrNotARepository) || errors.Is(got, ErrNoCommits) || errors.Is(got, ErrAmbiguousRef) {
		t.Fatalf("unrecognized stderr must stay generic, got %v", got)
	}
	var rerr *runner.Error
	if !errors.As(got, &rerr) {
		t.Fatalf("original error must remain in the chain")
	}
}

func TestClassifyNonRunnerError(t *testing.T) {
	plain := errors.New("plain")
	if got := Classify(plain); got != plain {
		t.Fatalf("non-runner errors pass through unchanged, got %v", got)
	}
	if Classify(nil) != nil {
		t.Fatalf("nil stays nil")
	}
}

func TestParseNameStatus(t *testing.T) {
	out := "M\tsrc/a.ts\nA\tsrc/b.ts\nD\tREADME.md\nR100\told/name.md\tnew/name.md\n\n"
	entries, err := parseNameStatus(out)
	if err != nil {
		t.Fatalf("parseNameStatus: %v", err)
	}
	want := []NameStatusEntry{
		{Code: "M", Path: "src/a.ts"},
		{Code: "A", Path: "src/b.ts"},
		{Code: "D", Path: "README.md"},
		{Code: "R100", Path: "new/name.md"},
	}
	if len(entries) != len(want) {
		t.Fatalf("entries = %v, want %v", entries, want)
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Fatalf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestParseNameStatusQuotedPath(t *testing.T) {
	entries, err := parseNameStatus("M\t\"sp\\303\\244ce.txt\"\n")
	if err != nil {
		t.Fatalf("parseNameStatus: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %v", entries)
	}
	if entries[0].Path == "\"sp\\303\\244ce.txt\"" {
		t.Fatalf("quoted path was not decoded: %q", entries[0].Path)
	}
}
