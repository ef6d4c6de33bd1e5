// Package changeset loads the list of files that differ between the
// comparison branch and the current HEAD.
package changeset

import (
	"context"
	"fmt"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
)

// Status classifies a changed file by its one-character diff code.
type Status string

const (
	StatusModified Status = "modified"
	StatusAdded    Status = "added"
	StatusDeleted  Status = "deleted"
	StatusRenamed  Status = "renamed"
	StatusUnknown  Status = "unknown"

	// StatusNone marks entries shown without a change, such as the
	// full-tree fallback listing.
	StatusNone Status = ""
)

// ChangeRecord is one changed file. Path is repo-relative with forward
// slashes. Records are produced fresh on every load and never mutated.
type ChangeRecord struct {
	Path   string
	Status Status
}

// Loader produces ChangeRecords by running a three-dot comparison between a
// base branch and HEAD.
type Loader struct {
	client client.Client
	logger logging.Logger
}

func NewLoader(c client.Client, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Loader{client: c, logger: logger}
}

// Load returns one record per path changed between base...HEAD. Empty output
// means zero changes, not an error. For renames only the destination path is
// kept; the status letter alone carries the classification.
func (l *Loader) Load(ctx context.Context, root, base string) ([]ChangeRecord, error) {
	entries, err := l.client.DiffNameStatus(ctx, root, base)
	if err != nil {
		return nil, fmt.Errorf("load change set against %s: %w", base, err)
	}
	records := make([]ChangeRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, ChangeRecord{Path: e.Path, Status: StatusFromCode(e.Code)})
	}
	l.logger.Debug("change set loaded", "base", base, "files", len(records))
	return records, nil
}

// StatusFromCode maps a raw name-status field to a Status. Only the leading
// letter is significant; rename scores ("R100") and anything unrecognized
// collapse accordingly.
func StatusFromCode(code string) Status {
	if code == "" {
		return StatusUnknown
	}
	switch code[0] {
	case 'M':
		return StatusModified
	case 'A':
		return StatusAdded
	case 'D':
		return StatusDeleted
	case 'R':
		return StatusRenamed
	default:
		return StatusUnknown
	}
}
