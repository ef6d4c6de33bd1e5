// Package diffview opens side-by-side comparisons between a file at the
// comparison branch and its working-copy version.
package diffview

import (
	"fmt"
	"net/url"
	"strings"
)

// Scheme addresses read-only branch content. The repo-relative path is the
// URI path and the branch travels as the "ref" query parameter, so content
// can be resolved on demand when the viewer asks for it.
const Scheme = "gitdelta"

// FormatURI encodes a repo-relative path and a branch into a virtual URI.
func FormatURI(path, ref string) string {
	u := url.URL{
		Scheme:   Scheme,
		Path:     "/" + strings.TrimPrefix(path, "/"),
		RawQuery: url.Values{"ref": []string{ref}}.Encode(),
	}
	return u.String()
}

// ParseURI reverses FormatURI, returning the repo-relative path and branch.
func ParseURI(raw string) (path, ref string, err error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse content uri: %w", err)
	}
	if u.Scheme != Scheme {
		return "", "", fmt.Errorf("unexpected scheme %q in content uri", u.Scheme)
	}
	path = strings.TrimPrefix(u.Path, "/")
	if path == "" {
		return "", "", fmt.Errorf("content uri has no path")
	}
	ref = u.Query().Get("ref")
	if ref == "" {
		return "", "", fmt.Errorf("content uri has no ref parameter")
	}
	return path, ref, nil
}
