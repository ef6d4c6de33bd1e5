package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/runner"
)

// Failure taxonomy for git invocations. Callers match with errors.Is; anything
// not classified stays a generic wrapped error.
var (
	ErrNotARepository = errors.New("not a git repository")
	ErrNoCommits      = errors.New("repository has no commits")
	ErrAmbiguousRef   = errors.New("ambiguous reference")
)

// Classify maps a failed git invocation to the taxonomy by inspecting stderr.
// The match is heuristic: git prints stable-enough phrases for the cases we
// care about, and everything else passes through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var rerr *runner.Error
	if !errors.As(err, &rerr) {
		return err
	}
	msg := strings.ToLower(rerr.Stderr)
	switch {
	case strings.Contains(msg, "not a git repository"):
		return fmt.Errorf("%w: %v", ErrNotARepository, err)
	case strings.Contains(msg, "does not have any commits"),
		strings.Contains(msg, "bad default revision"),
		strings.Contains(msg, "needed a single revision"),
		// Only bare HEAD failing to resolve means an unborn branch. Range
		// arguments like "base...HEAD" produce the same phrasing when base
		// is merely missing, so they must stay generic.
		strings.Contains(msg, "ambiguous argument 'head'"):
		return fmt.Errorf("%w: %v", ErrNoCommits, err)
	case strings.Contains(msg, "is ambiguous"):
		return fmt.Errorf("%w: %v", ErrAmbiguousRef, err)
	default:
		return err
	}
}
