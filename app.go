package main

import (
	"context"
	"database/sql"
	"os"

	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/RicardoDalcin/git-delta-tree/internal/config"
	"github.com/RicardoDalcin/git-delta-tree/internal/diffview"
	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
	"github.com/RicardoDalcin/git-delta-tree/internal/panel"
	"github.com/RicardoDalcin/git-delta-tree/internal/storage/state"
	"github.com/RicardoDalcin/git-delta-tree/internal/tree"
	"github.com/RicardoDalcin/git-delta-tree/internal/watchers"
)

// treeUpdatedEvent is emitted to the frontend after every reload; the panel
// re-reads its items in response.
const treeUpdatedEvent = "panel:tree-updated"

// App exposes the panel to the frontend: refresh, view toggling, item
// listing, diff opening, and virtual content resolution.
type App struct {
	ctx      context.Context
	logger   logging.Logger
	settings config.Settings
	repoRoot string

	db       *sql.DB
	git      client.Client
	service  *panel.Service
	provider *diffview.ContentProvider
	watcher  *watchers.RepoWatcher
}

func NewApp(repoRoot string, settings config.Settings, gitClient client.Client, db *sql.DB, logger logging.Logger) *App {
	if logger == nil {
		logger = logging.Nop()
	}
	return &App{
		repoRoot: repoRoot,
		settings: settings,
		git:      gitClient,
		db:       db,
		logger:   logger,
	}
}

// startup wires the panel service, restores persisted state, starts the
// worktree watcher, and runs the first load.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	strategy := diffview.ParseStrategy(a.settings.DiffStrategy)
	initialMode := tree.ParseMode(a.settings.ViewMode)
	a.service = panel.NewService(a.git, a.repoRoot, strategy, initialMode, a.logger)
	a.provider = diffview.NewContentProvider(a.git, a.repoRoot, a.logger)

	if a.db != nil {
		a.service.SetStateStore(ctx, state.NewRepository(a.db))
	}
	a.service.Subscribe(func() {
		if a.ctx != nil {
			wailsruntime.EventsEmit(a.ctx, treeUpdatedEvent)
		}
	})

	a.watcher = watchers.New(a.repoRoot, func() {
		a.service.Reload(context.Background())
	}, a.logger)
	a.watcher.SetDebounce(a.settings.WatchDebounce())
	if err := a.watcher.Start(); err != nil {
		a.logger.Warn("live refresh disabled", "error", err)
	}

	a.service.Reload(ctx)
}

func (a *App) shutdown(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

// Refresh re-runs the full load.
func (a *App) Refresh() {
	a.service.Reload(a.ctx)
}

// ToggleViewMode flips hierarchical/flat and reloads.
func (a *App) ToggleViewMode() {
	a.service.ToggleView(a.ctx)
}

// ViewMode returns the current view mode string.
func (a *App) ViewMode() string {
	return string(a.service.Mode())
}

// ComparisonBranch returns the branch the change set is diffed against.
func (a *App) ComparisonBranch() string {
	return a.service.Branch()
}

// SetComparisonBranch pins an explicit comparison branch ("" re-enables
// inference) and reloads.
func (a *App) SetComparisonBranch(name string) {
	a.service.SetBranchOverride(a.ctx, name)
	a.service.Reload(a.ctx)
}

// LastError returns the user-facing message of the last failed reload.
func (a *App) LastError() string {
	return a.service.LastError()
}

// ListChildren returns the rendered entries under parentPath ("" for the
// top level).
func (a *App) ListChildren(parentPath string) []panel.Item {
	return a.service.Items(parentPath)
}

// OpenFile prepares the side-by-side comparison for a listed file.
func (a *App) OpenFile(path string) (diffview.Request, error) {
	return a.service.Open(a.ctx, path)
}

// ResolveBranchContent serves the read-only branch side of a comparison for
// a gitdelta URI.
func (a *App) ResolveBranchContent(uri string) (string, error) {
	return a.provider.Provide(a.ctx, uri)
}

// WorkingDirectory reports the repository the panel is attached to.
func (a *App) WorkingDirectory() string {
	return a.repoRoot
}

func currentWorkingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
