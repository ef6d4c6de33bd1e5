package diffview

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
)

// Strategy selects how the branch side of a comparison is produced.
type Strategy string

const (
	// StrategyVirtual serves branch content through gitdelta URIs resolved
	// on demand. Preferred: no filesystem cleanup races.
	StrategyVirtual Strategy = "virtual"
	// StrategyTempFile materializes branch content to disposable files.
	StrategyTempFile Strategy = "tempfile"
)

// ParseStrategy maps a config string to a Strategy, defaulting to virtual.
func ParseStrategy(s string) Strategy {
	if Strategy(s) == StrategyTempFile {
		return StrategyTempFile
	}
	return StrategyVirtual
}

// Request describes one two-pane comparison for the host to open. Exactly one
// of LeftURI and LeftPath is set, depending on the strategy.
type Request struct {
	Title     string `json:"title"`
	LeftURI   string `json:"leftUri,omitempty"`
	LeftPath  string `json:"leftPath,omitempty"`
	RightPath string `json:"rightPath"`
}

// Launcher builds comparison requests for changed files.
type Launcher struct {
	client   client.Client
	strategy Strategy
	temp     *TempMaterializer
	logger   logging.Logger
}

func NewLauncher(c client.Client, strategy Strategy, logger logging.Logger) *Launcher {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Launcher{
		client:   c,
		strategy: strategy,
		temp:     NewTempMaterializer(c, logger),
		logger:   logger,
	}
}

// Open prepares the comparison of path at ref against the working copy under
// root. Failures are per-invocation and never touch the panel's tree state.
func (l *Launcher) Open(ctx context.Context, root, ref, path string) (Request, error) {
	req := Request{
		Title:     fmt.Sprintf("%s (%s vs working tree)", path, ref),
		RightPath: filepath.Join(root, filepath.FromSlash(path)),
	}
	switch l.strategy {
	case StrategyTempFile:
		left, err := l.temp.Materialize(ctx, root, ref, path)
		if err != nil {
			return Request{}, err
		}
		req.LeftPath = left
	default:
		req.LeftURI = FormatURI(path, ref)
	}
	l.logger.Debug("diff prepared", "path", path, "ref", ref, "strategy", string(l.strategy))
	return req, nil
}
