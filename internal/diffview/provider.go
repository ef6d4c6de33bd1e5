package diffview

import (
	"context"
	"fmt"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
)

// ContentProvider resolves virtual URIs to branch content. It is the on-demand
// half of the virtual strategy: nothing is read until the viewer requests it.
type ContentProvider struct {
	client client.Client
	root   string
	logger logging.Logger
}

func NewContentProvider(c client.Client, root string, logger logging.Logger) *ContentProvider {
	if logger == nil {
		logger = logging.Nop()
	}
	return &ContentProvider{client: c, root: root, logger: logger}
}

// Provide returns the text content addressed by a gitdelta URI. A path that
// does not exist at the ref (a newly added file) yields a readable error, not
// a crash in the viewer.
func (p *ContentProvider) Provide(ctx context.Context, uri string) (string, error) {
	path, ref, err := ParseURI(uri)
	if err != nil {
		return "", err
	}
	content, err := p.client.ShowFile(ctx, p.root, ref, path)
	if err != nil {
		p.logger.Debug("branch content unavailable", "path", path, "ref", ref, "error", err)
		return "", fmt.Errorf("%s is not available at %s: %w", path, ref, err)
	}
	return content, nil
}
