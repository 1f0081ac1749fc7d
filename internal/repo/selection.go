package repo

import (
	"fmt"
	"strings"

	"github.com/hashmap-kz/assetsensor/internal/asset"
	"github.com/hashmap-kz/assetsensor/internal/graph"
)

// Selection is a parsed asset-selection expression, extended beyond a
// bare key list with a "group:<name>" term. It implements
// sensor.Selection.
type Selection struct {
	raw []string
}

// ParseSelection splits a selection expression into its terms. Accepted
// terms: "*" (every monitored asset), a bare asset name, or
// "group:<name>".
func ParseSelection(expr string) Selection {
	fields := strings.Fields(expr)
	return Selection{raw: fields}
}

// Resolve implements sensor.Selection against a *Universe.
func (s Selection) Resolve(univ graph.Universe) ([]asset.Key, error) {
	u, ok := univ.(*Universe)
	if !ok {
		return nil, fmt.Errorf("repo: selection requires a *repo.Universe, got %T", univ)
	}

	out := asset.NewSet()
	for _, term := range s.raw {
		switch {
		case term == "*":
			for _, k := range u.All() {
				out.Add(k)
			}
		case strings.HasPrefix(term, "group:"):
			name := strings.TrimPrefix(term, "group:")
			members, ok := u.Group(name)
			if !ok {
				return nil, fmt.Errorf("repo: unknown group %q", name)
			}
			for _, k := range members {
				out.Add(k)
			}
		default:
			k := asset.New(term)
			doc, ok := u.defs[k]
			if !ok {
				return nil, fmt.Errorf("repo: unknown asset %q", term)
			}
			if doc.SourceAsset {
				return nil, fmt.Errorf("repo: %q is a source asset and cannot be selected for monitoring", term)
			}
			out.Add(k)
		}
	}
	return out.Sorted(), nil
}
