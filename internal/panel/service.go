// Package panel holds the presentation state of the branch-comparison view:
// the materialized tree, the view mode, and the observer wiring the host
// re-renders on.
package panel

import (
	"context"
	"errors"
	"sync"

	"github.com/RicardoDalcin/git-delta-tree/internal/branch"
	"github.com/RicardoDalcin/git-delta-tree/internal/changeset"
	"github.com/RicardoDalcin/git-delta-tree/internal/diffview"
	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
	"github.com/RicardoDalcin/git-delta-tree/internal/logging"
	"github.com/RicardoDalcin/git-delta-tree/internal/tree"
)

// StateStore persists per-repository panel preferences across sessions.
type StateStore interface {
	Load(ctx context.Context, repoPath string) (mode, branchOverride string, err error)
	Save(ctx context.Context, repoPath, mode, branchOverride string) error
}

// Service owns the panel data model. Every reload rebuilds the tree wholesale
// and swaps it in one step, so readers observe either the old tree or the new
// one, never a partial rebuild.
type Service struct {
	client   client.Client
	resolver *branch.Resolver
	loader   *changeset.Loader
	launcher *diffview.Launcher
	logger   logging.Logger
	root     string

	store StateStore

	mu         sync.Mutex
	mode       tree.Mode
	override   string
	current    *tree.Node
	branchName string
	lastErr    string
	nextGen    uint64
	appliedGen uint64

	subsMu sync.Mutex
	subs   []func()
}

// NewService builds a panel over the repository at root. mode is the initial
// view; state restored later via SetStateStore takes precedence over it.
func NewService(c client.Client, root string, strategy diffview.Strategy, mode tree.Mode, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Service{
		client:   c,
		resolver: branch.NewResolver(c, logger),
		loader:   changeset.NewLoader(c, logger),
		launcher: diffview.NewLauncher(c, strategy, logger),
		logger:   logger,
		root:     root,
		mode:     tree.ParseMode(string(mode)),
		current:  tree.NewRoot(),
	}
}

// SetStateStore enables persistence of the view mode and branch override.
// Stored values for this repository are restored immediately.
func (s *Service) SetStateStore(ctx context.Context, store StateStore) {
	if store == nil {
		return
	}
	s.mu.Lock()
	s.store = store
	s.mu.Unlock()
	mode, override, err := store.Load(ctx, s.root)
	if err != nil {
		s.logger.Warn("panel state restore failed", "repo", s.root, "error", err)
		return
	}
	s.mu.Lock()
	if mode != "" {
		s.mode = tree.ParseMode(mode)
	}
	s.override = override
	s.mu.Unlock()
}

// Subscribe registers fn to run after every reload, successful or not.
// Callbacks run synchronously on the reloading goroutine.
func (s *Service) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	s.subsMu.Lock()
	s.subs = append(s.subs, fn)
	s.subsMu.Unlock()
}

func (s *Service) notify() {
	s.subsMu.Lock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.subsMu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Reload re-runs the full pipeline: resolve the comparison branch, load the
// change set, materialize the tree, swap it in. Concurrent reloads race
// freely; a completion whose generation is older than the last applied one is
// discarded, so rapid refreshes cannot resurrect stale data.
func (s *Service) Reload(ctx context.Context) {
	s.mu.Lock()
	s.nextGen++
	gen := s.nextGen
	mode := s.mode
	override := s.override
	s.mu.Unlock()

	root, branchName, err := s.rebuild(ctx, mode, override)
	if err != nil {
		s.logger.Warn("panel reload failed", "repo", s.root, "error", err)
		s.apply(gen, tree.NewRoot(), branchName, userMessage(err))
		return
	}
	s.apply(gen, root, branchName, "")
}

func (s *Service) rebuild(ctx context.Context, mode tree.Mode, override string) (*tree.Node, string, error) {
	branchName := override
	if branchName == "" {
		resolved, err := s.resolver.Resolve(ctx, s.root)
		if err != nil {
			return nil, "", err
		}
		branchName = resolved
	}

	records, err := s.loader.Load(ctx, s.root, branchName)
	if err != nil {
		return nil, branchName, err
	}

	if len(records) == 0 && mode == tree.Hierarchical {
		// Convenience view only: show the branch's full structure instead of
		// an empty panel. Enumeration failure degrades to empty, silently.
		paths, err := s.client.TrackedFiles(ctx, s.root, branchName)
		if err != nil {
			s.logger.Debug("full-tree fallback unavailable", "branch", branchName, "error", err)
			return tree.NewRoot(), branchName, nil
		}
		return tree.BuildFallback(paths), branchName, nil
	}

	return tree.Build(records, mode), branchName, nil
}

// apply commits a reload result unless a newer one already landed.
func (s *Service) apply(gen uint64, root *tree.Node, branchName, errMsg string) {
	s.mu.Lock()
	if gen < s.appliedGen {
		s.mu.Unlock()
		s.logger.Debug("stale reload discarded", "generation", gen)
		return
	}
	s.appliedGen = gen
	s.current = root
	s.branchName = branchName
	s.lastErr = errMsg
	s.mu.Unlock()
	s.notify()
}

// ToggleView flips hierarchical/flat, persists the choice, and reloads.
func (s *Service) ToggleView(ctx context.Context) {
	s.mu.Lock()
	s.mode = s.mode.Toggle()
	mode := s.mode
	override := s.override
	store := s.store
	s.mu.Unlock()
	if store != nil {
		if err := store.Save(ctx, s.root, string(mode), override); err != nil {
			s.logger.Warn("panel state save failed", "repo", s.root, "error", err)
		}
	}
	s.Reload(ctx)
}

// SetBranchOverride pins the comparison branch, bypassing resolution; an
// empty name restores inference. Takes effect on the next reload.
func (s *Service) SetBranchOverride(ctx context.Context, name string) {
	s.mu.Lock()
	s.override = name
	mode := s.mode
	store := s.store
	s.mu.Unlock()
	if store != nil {
		if err := store.Save(ctx, s.root, string(mode), name); err != nil {
			s.logger.Warn("panel state save failed", "repo", s.root, "error", err)
		}
	}
}

// Open prepares the two-pane comparison for a listed file. Failures are
// reported to the caller and leave the tree untouched.
func (s *Service) Open(ctx context.Context, path string) (diffview.Request, error) {
	s.mu.Lock()
	branchName := s.branchName
	s.mu.Unlock()
	if branchName == "" {
		branchName = s.resolver.Resolved()
	}
	if branchName == "" {
		return diffview.Request{}, errors.New("no comparison branch resolved yet")
	}
	return s.launcher.Open(ctx, s.root, branchName, path)
}

// Mode returns the current view mode.
func (s *Service) Mode() tree.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Branch returns the comparison branch of the last applied reload.
func (s *Service) Branch() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.branchName
}

// LastError returns the user-facing message of the last failed reload, or ""
// after a successful one.
func (s *Service) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Tree returns the currently applied root.
func (s *Service) Tree() *tree.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// userMessage folds the failure taxonomy into one readable warning.
func userMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrNotARepository):
		return "The workspace is not a git repository."
	case errors.Is(err, client.ErrNoCommits):
		return "The repository has no commits to compare against."
	case errors.Is(err, client.ErrAmbiguousRef):
		return "The comparison branch name is ambiguous."
	default:
		return "Could not load changed files: " + err.Error()
	}
}
