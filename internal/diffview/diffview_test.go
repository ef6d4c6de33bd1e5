package diffview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/RicardoDalcin/git-delta-tree/internal/git/client"
)

type fakeGit struct {
	files map[string]string // "ref:path" -> content
}

func (f *fakeGit) IsRepoPath(ctx context.Context, path string) (bool, error) { return true, nil }
func (f *fakeGit) CurrentRef(ctx context.Context, root string) (string, error) {
	return "feature", nil
}
func (f *fakeGit) DefaultBranchSetting(ctx context.Context, root string) (string, error) {
	return "", nil
}
func (f *fakeGit) ResolveRef(ctx context.Context, root, ref string) (string, error) {
	return "abc", nil
}
func (f *fakeGit) DiffNameStatus(ctx context.Context, root, base string) ([]client.NameStatusEntry, error) {
	return nil, nil
}
func (f *fakeGit) TrackedFiles(ctx context.Context, root, ref string) ([]string, error) {
	return nil, nil
}
func (f *fakeGit) ShowFile(ctx context.Context, root, ref, path string) (string, error) {
	if content, ok := f.files[ref+":"+path]; ok {
		return content, nil
	}
	return "", fmt.Errorf("path %q does not exist in %q", path, ref)
}

func TestURIRoundTrip(t *testing.T) {
	uri := FormatURI("src/util/a name.ts", "release/2.0")
	path, ref, err := ParseURI(uri)
	if err != nil {
		t.Fatalf("ParseURI(%q): %v", uri, err)
	}
	if path != "src/util/a name.ts" {
		t.Fatalf("path = %q", path)
	}
	if ref != "release/2.0" {
		t.Fatalf("ref = %q", ref)
	}
}

func TestParseURIRejectsForeignScheme(t *testing.T) {
	if _, _, err := ParseURI("https://example.com/x?ref=main"); err == nil {
		t.Fatalf("expected scheme rejection")
	}
	if _, _, err := ParseURI(Scheme + ":///x"); err == nil {
		t.Fatalf("expected missing ref rejection")
	}
	if _, _, err := ParseURI(Scheme + ":///?ref=main"); err == nil {
		t.Fatalf("expected missing path rejection")
	}
}

func TestContentProvider(t *testing.T) {
	fake := &fakeGit{files: map[string]string{"main:src/a.ts": "left side\n"}}
	p := NewContentProvider(fake, "/repo", nil)

	content, err := p.Provide(context.Background(), FormatURI("src/a.ts", "main"))
	if err != nil {
		t.Fatalf("Provide: %v", err)
	}
	if content != "left side\n" {
		t.Fatalf("content = %q", content)
	}
}

func TestContentProviderMissingFileIsReadable(t *testing.T) {
	p := NewContentProvider(&fakeGit{}, "/repo", nil)
	_, err := p.Provide(context.Background(), FormatURI("added.ts", "main"))
	if err == nil {
		t.Fatalf("expected error for a file absent at the ref")
	}
	if !strings.Contains(err.Error(), "added.ts") {
		t.Fatalf("error should name the path: %v", err)
	}
}

func TestLauncherVirtual(t *testing.T) {
	l := NewLauncher(&fakeGit{}, StrategyVirtual, nil)
	req, err := l.Open(context.Background(), "/repo", "main", "src/a.ts")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if req.LeftURI == "" || req.LeftPath != "" {
		t.Fatalf("virtual request = %+v", req)
	}
	if req.RightPath != filepath.Join("/repo", "src", "a.ts") {
		t.Fatalf("right path = %q", req.RightPath)
	}
	if !strings.Contains(req.Title, "src/a.ts") || !strings.Contains(req.Title, "main") {
		t.Fatalf("title = %q", req.Title)
	}
}

func TestLauncherTempFile(t *testing.T) {
	fake := &fakeGit{files: map[string]string{"main:src/a.ts": "branch copy\n"}}
	l := NewLauncher(fake, StrategyTempFile, nil)
	l.temp.SetCleanupDelay(50 * time.Millisecond)

	req, err := l.Open(context.Background(), "/repo", "main", "src/a.ts")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if req.LeftPath == "" || req.LeftURI != "" {
		t.Fatalf("tempfile request = %+v", req)
	}
	data, err := os.ReadFile(req.LeftPath)
	if err != nil {
		t.Fatalf("read temp file: %v", err)
	}
	if string(data) != "branch copy\n" {
		t.Fatalf("temp content = %q", data)
	}

	// cleanup fires after the delay and is best-effort
	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, err := os.Stat(req.LeftPath); os.IsNotExist(err) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("temp file was not cleaned up")
		}
		time.Sleep(20 * time.Millisecond)
	}
}

func TestTempFileNamesAreUnique(t *testing.T) {
	fake := &fakeGit{files: map[string]string{"main:a.ts": "x"}}
	m := NewTempMaterializer(fake, nil)
	m.SetCleanupDelay(5 * time.Second)

	first, err := m.Materialize(context.Background(), "/repo", "main", "a.ts")
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	second, err := m.Materialize(context.Background(), "/repo", "main", "a.ts")
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if first == second {
		t.Fatalf("two invocations shared a temp path: %q", first)
	}
	_ = os.Remove(first)
	_ = os.Remove(second)
}

func TestLauncherMissingFileFails(t *testing.T) {
	l := NewLauncher(&fakeGit{}, StrategyTempFile, nil)
	if _, err := l.Open(context.Background(), "/repo", "main", "added.ts"); err == nil {
		t.Fatalf("expected per-invocation failure for a missing branch file")
	}
}

func TestParseStrategy(t *testing.T) {
	if ParseStrategy("tempfile") != StrategyTempFile {
		t.Fatalf("tempfile")
	}
	if ParseStrategy("") != StrategyVirtual || ParseStrategy("other") != StrategyVirtual {
		t.Fatalf("default must be virtual")
	}
}
