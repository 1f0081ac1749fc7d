// Package resolve expands the filenames and glob patterns given to the
// tick CLI into a concrete file list, and reads local or remote content
// uniformly.
package resolve

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolveAllFiles expands each of paths into a sorted, de-duplicated list
// of concrete file paths. A path may be a plain file, a directory (only
// direct *.yaml/*.yml children unless recursive is set), a glob pattern,
// or a URL (returned unexpanded; ReadFileContent dereferences it later).
func ResolveAllFiles(paths []string, recursive bool) ([]string, error) {
	seen := map[string]struct{}{}
	var out []string

	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range paths {
		if IsURL(p) {
			add(p)
			continue
		}

		info, err := os.Stat(p)
		switch {
		case err == nil && info.IsDir():
			if walkErr := walkDir(p, recursive, add); walkErr != nil {
				return nil, walkErr
			}
		case err == nil:
			add(p)
		default:
			matches, globErr := filepath.Glob(p)
			if globErr != nil || len(matches) == 0 {
				return nil, fmt.Errorf("resolve: %s: %w", p, err)
			}
			for _, m := range matches {
				add(m)
			}
		}
	}

	sort.Strings(out)
	return out, nil
}

func walkDir(root string, recursive bool, add func(string)) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("resolve: reading directory %s: %w", root, err)
	}
	for _, e := range entries {
		full := filepath.Join(root, e.Name())
		if e.IsDir() {
			if recursive {
				if err := walkDir(full, recursive, add); err != nil {
					return err
				}
			}
			continue
		}
		if isYAMLFile(e.Name()) {
			add(full)
		}
	}
	return nil
}

func isYAMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// IsURL reports whether filename names a remote resource rather than a
// local path.
func IsURL(filename string) bool {
	u, err := url.Parse(filename)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// ReadRemoteFileContent fetches a URL's body. Asset-definition bundles are
// expected to be small, static files, so no retry or streaming is needed.
func ReadRemoteFileContent(rawURL string) ([]byte, error) {
	resp, err := http.Get(rawURL) //nolint:gosec,noctx // caller-supplied, operator-trusted config source
	if err != nil {
		return nil, fmt.Errorf("resolve: fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("resolve: fetching %s: status %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("resolve: reading body of %s: %w", rawURL, err)
	}
	return body, nil
}

// ReadFileContent reads filename's content, dispatching to a remote fetch
// when filename is a URL.
func ReadFileContent(filename string) ([]byte, error) {
	if IsURL(filename) {
		return ReadRemoteFileContent(filename)
	}
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("resolve: reading %s: %w", filename, err)
	}
	return content, nil
}
