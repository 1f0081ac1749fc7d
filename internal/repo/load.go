// Package repo loads asset definitions from YAML files into the in-memory
// graph.Universe the sensor ticks against, and resolves selection
// expressions into concrete key sets.
package repo

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/hashmap-kz/assetsensor/internal/asset"
	"github.com/hashmap-kz/assetsensor/internal/graph"
	"github.com/hashmap-kz/assetsensor/internal/resolve"
)

// AssetDoc is one YAML document describing a monitored, derived asset.
type AssetDoc struct {
	Name    string   `yaml:"name"`
	Parents []string `yaml:"parents"`
	Groups  []string `yaml:"groups"`
	// SourceAsset marks a leaf with no parents of its own inside this
	// system: it can still be named as a parent by others, but it is
	// never itself considered for launch.
	SourceAsset bool `yaml:"source_asset"`
}

// bundle is the top-level shape of one asset-definition file: a mapping
// whose "assets" key lists the asset documents. Load decodes only the
// first YAML document of each file; documents after a "---" separator
// are not read.
type bundle struct {
	Assets []AssetDoc `yaml:"assets"`
}

// Universe is the loaded, validated asset-definition graph. It implements
// graph.Universe.
type Universe struct {
	defs   map[asset.Key]AssetDoc
	groups map[string]asset.Set
}

var _ graph.Universe = (*Universe)(nil)

// Parents implements graph.Universe.
func (u *Universe) Parents(k asset.Key) []asset.Key {
	doc, ok := u.defs[k]
	if !ok {
		return nil
	}
	out := make([]asset.Key, 0, len(doc.Parents))
	for _, p := range doc.Parents {
		out = append(out, asset.New(p))
	}
	return out
}

// All returns every non-source asset key known to the universe, sorted.
func (u *Universe) All() []asset.Key {
	keys := make(asset.Set, len(u.defs))
	for k, doc := range u.defs {
		if !doc.SourceAsset {
			keys.Add(k)
		}
	}
	return keys.Sorted()
}

// Group returns the sorted members of a named group, or (nil, false) if
// the group is unknown (SPEC_FULL.md §4: "group:<name>" selection).
func (u *Universe) Group(name string) ([]asset.Key, bool) {
	s, ok := u.groups[name]
	if !ok {
		return nil, false
	}
	return s.Sorted(), true
}

// Load parses one or more asset-definition YAML files, resolving glob
// patterns, directories and URLs per internal/resolve, and builds a
// Universe. Parent references to names absent from every loaded file are
// treated as source assets implicitly. A document that fails to parse at
// all is surfaced as an error rather than silently dropped, since it is
// an operator error worth surfacing, not swallowing.
func Load(paths []string, recursive bool) (*Universe, error) {
	files, err := resolve.ResolveAllFiles(paths, recursive)
	if err != nil {
		return nil, fmt.Errorf("repo: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("repo: no asset-definition files matched %v", paths)
	}

	u := &Universe{
		defs:   make(map[asset.Key]AssetDoc),
		groups: make(map[string]asset.Set),
	}

	for _, f := range files {
		content, err := resolve.ReadFileContent(f)
		if err != nil {
			return nil, fmt.Errorf("repo: %w", err)
		}

		var b bundle
		if err := yaml.Unmarshal(content, &b); err != nil {
			return nil, fmt.Errorf("repo: parsing %s: %w", f, err)
		}

		for _, doc := range b.Assets {
			if doc.Name == "" {
				return nil, fmt.Errorf("repo: %s: asset document missing name", f)
			}
			key := asset.New(doc.Name)
			if _, dup := u.defs[key]; dup {
				return nil, fmt.Errorf("repo: %s: duplicate asset name %q", f, doc.Name)
			}
			u.defs[key] = doc
			for _, g := range doc.Groups {
				if u.groups[g] == nil {
					u.groups[g] = asset.NewSet()
				}
				u.groups[g].Add(key)
			}
		}
	}

	// Implicitly materialize source assets referenced only as a parent.
	// Collected before writing back: mutating u.defs while ranging over
	// it leaves newly-inserted keys' visitation undefined.
	var implicit []string
	for _, doc := range u.defs {
		for _, p := range doc.Parents {
			if _, ok := u.defs[asset.New(p)]; !ok {
				implicit = append(implicit, p)
			}
		}
	}
	for _, p := range implicit {
		u.defs[asset.New(p)] = AssetDoc{Name: p, SourceAsset: true}
	}

	return u, nil
}
