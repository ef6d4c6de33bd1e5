package client

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/runner"
)

// ExecClient implements Client using the git binary.
type ExecClient struct{ r runner.Runner }

func NewExecClient(bin string) *ExecClient { return &ExecClient{r: runner.NewExecRunner(bin)} }

// NewExecClientWithRunner is used by tests to substitute a fake runner.
func NewExecClientWithRunner(r runner.Runner) *ExecClient { return &ExecClient{r: r} }

func (c *ExecClient) IsRepoPath(ctx context.Context, path string) (bool, error) {
	out, err := c.r.Run(ctx, path, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		return false, nil
	}
	return strings.TrimSpace(out) == "true", nil
}

func (c *ExecClient) CurrentRef(ctx context.Context, root string) (string, error) {
	if out, err := c.r.Run(ctx, root, "symbolic-ref", "--short", "-q", "HEAD"); err == nil {
		if b := strings.TrimSpace(out); b != "" {
			return b, nil
		}
	}
	out, err := c.r.Run(ctx, root, "rev-parse", "HEAD")
	if err != nil {
		return "", Classify(err)
	}
	return strings.TrimSpace(out), nil
}

func (c *ExecClient) DefaultBranchSetting(ctx context.Context, root string) (string, error) {
	// git config exits non-zero when the key is unset; that is not a failure.
	out, err := c.r.Run(ctx, root, "config", "--get", "init.defaultBranch")
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

func (c *ExecClient) ResolveRef(ctx context.Context, root, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", fmt.Errorf("ref is required")
	}
	out, err := c.r.Run(ctx, root, "rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", Classify(err)
	}
	return strings.TrimSpace(out), nil
}

func (c *ExecClient) DiffNameStatus(ctx context.Context, root, base string) ([]NameStatusEntry, error) {
	out, err := c.r.Run(ctx, root, "diff", "--name-status", base+"...HEAD")
	if err != nil {
		return nil, Classify(err)
	}
	return parseNameStatus(out)
}

// parseNameStatus reads tab-separated "code<TAB>path" lines. Rename and copy
// rows carry two paths; only the destination is kept.
func parseNameStatus(out string) ([]NameStatusEntry, error) {
	var entries []NameStatusEntry
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		code := strings.TrimSpace(fields[0])
		path := strings.TrimSpace(fields[len(fields)-1])
		if code == "" || path == "" {
			continue
		}
		if strings.HasPrefix(path, "\"") {
			if decoded, err := strconv.Unquote(path); err == nil {
				path = decoded
			}
		}
		entries = append(entries, NameStatusEntry{Code: code, Path: path})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan name-status output: %w", err)
	}
	return entries, nil
}

func (c *ExecClient) TrackedFiles(ctx context.Context, root, ref string) ([]string, error) {
	out, err := c.r.Run(ctx, root, "ls-tree", "-r", "--name-only", ref)
	if err != nil {
		return nil, Classify(err)
	}
	var paths []string
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		p := strings.TrimSpace(scanner.Text())
		if p == "" {
			continue
		}
		if strings.HasPrefix(p, "\"") {
			if decoded, err := strconv.Unquote(p); err == nil {
				p = decoded
			}
		}
		paths = append(paths, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan ls-tree output: %w", err)
	}
	return paths, nil
}

func (c *ExecClient) ShowFile(ctx context.Context, root, ref, path string) (string, error) {
	out, err := c.r.Run(ctx, root, "show", ref+":"+path)
	if err != nil {
		return "", Classify(err)
	}
	return out, nil
}
