// Package cursor implements the per-asset high-watermark map carried
// between ticks and its opaque-string codec.
package cursor

import "github.com/hashmap-kz/assetsensor/internal/asset"

// Cursor maps a monitored asset's canonical key string to a timestamp:
// "materializations of any parent of this asset with timestamp <= t have
// already been reflected." A missing key means 0.
type Cursor map[string]float64

// Get returns the cursor value for k, defaulting to 0 when absent —
// modeling the mapping with explicit get(key, 0) semantics rather than
// relying on host-collection defaulting.
func (c Cursor) Get(k asset.Key) float64 {
	if c == nil {
		return 0
	}
	return c[k.String()]
}

// Set assigns the cursor value for k. A nil receiver is a programmer
// error; callers always go through a freshly-made Cursor (see Clone/New).
func (c Cursor) Set(k asset.Key, t float64) {
	c[k.String()] = t
}

// New returns an empty Cursor.
func New() Cursor {
	return make(Cursor)
}

// Clone returns a deep copy of c so tick-scoped mutation never aliases the
// previously-persisted cursor.
func (c Cursor) Clone() Cursor {
	out := make(Cursor, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
