package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashmap-kz/assetsensor/internal/asset"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_BasicGraph(t *testing.T) {
	path := writeTemp(t, "assets.yaml", `
assets:
  - name: d
    parents: [a, b]
  - name: e
    parents: [b, c]
  - name: f
    parents: [d, e]
`)

	univ, err := Load([]string{path}, false)
	require.NoError(t, err)

	assert.ElementsMatch(t, univ.Parents(asset.New("d")), []asset.Key{asset.New("a"), asset.New("b")})
	// a/b/c were referenced only as parents: implicitly materialized as
	// source assets, excluded from All().
	all := univ.All()
	assert.Contains(t, all, asset.New("d"))
	assert.Contains(t, all, asset.New("f"))
	assert.NotContains(t, all, asset.New("a"))
}

func TestLoad_Groups(t *testing.T) {
	path := writeTemp(t, "assets.yaml", `
assets:
  - name: d
    groups: [core]
  - name: e
    groups: [core, extra]
`)

	univ, err := Load([]string{path}, false)
	require.NoError(t, err)

	members, ok := univ.Group("core")
	require.True(t, ok)
	assert.ElementsMatch(t, members, []asset.Key{asset.New("d"), asset.New("e")})

	_, ok = univ.Group("does-not-exist")
	assert.False(t, ok)
}

func TestLoad_DuplicateNameFails(t *testing.T) {
	path := writeTemp(t, "assets.yaml", `
assets:
  - name: d
  - name: d
`)
	_, err := Load([]string{path}, false)
	assert.Error(t, err)
}

func TestLoad_MissingNameFails(t *testing.T) {
	path := writeTemp(t, "assets.yaml", `
assets:
  - parents: [a]
`)
	_, err := Load([]string{path}, false)
	assert.Error(t, err)
}

func TestLoad_NoMatchingFilesFails(t *testing.T) {
	_, err := Load([]string{filepath.Join(t.TempDir(), "missing.yaml")}, false)
	assert.Error(t, err)
}

func TestLoad_InvalidDocumentFails(t *testing.T) {
	path := writeTemp(t, "assets.yaml", "assets: [\n  not: [valid\n")
	_, err := Load([]string{path}, false)
	assert.Error(t, err, "a document that fails to parse at all is surfaced, not silently dropped")
}
