package diffview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
)

// DefaultCleanupDelay outlives the viewer's initial read of a materialized
// file before the best-effort delete fires.
const DefaultCleanupDelay = 30 * time.Second

// TempMaterializer implements the legacy diff strategy: write the branch
// version of a file to a uniquely named temporary file and remove it later.
// Uniqueness per invocation stands in for locking; cleanup failures are
// ignored, so files may leak on abnormal termination.
type TempMaterializer struct {
	client client.Client
	dir    string
	delay  time.Duration
	logger logging.Logger
}

func NewTempMaterializer(c client.Client, logger logging.Logger) *TempMaterializer {
	if logger == nil {
		logger = logging.Nop()
	}
	return &TempMaterializer{client: c, dir: os.TempDir(), delay: DefaultCleanupDelay, logger: logger}
}

// SetCleanupDelay overrides the delete delay; values <= 0 keep the default.
func (m *TempMaterializer) SetCleanupDelay(d time.Duration) {
	if d > 0 {
		m.delay = d
	}
}

// Materialize writes the content of path at ref to a disposable file and
// returns its location. Deletion is scheduled immediately and never reported.
func (m *TempMaterializer) Materialize(ctx context.Context, root, ref, path string) (string, error) {
	content, err := m.client.ShowFile(ctx, root, ref, path)
	if err != nil {
		return "", fmt.Errorf("%s is not available at %s: %w", path, ref, err)
	}
	name := fmt.Sprintf("gitdelta-%s-%s", uuid.NewString(), filepath.Base(path))
	target := filepath.Join(m.dir, name)
	if err := os.WriteFile(target, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("write temporary diff file: %w", err)
	}
	time.AfterFunc(m.delay, func() {
		if err := os.Remove(target); err != nil {
			m.logger.Debug("temporary diff file cleanup skipped", "path", target, "error", err)
		}
	})
	return target, nil
}
