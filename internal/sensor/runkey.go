package sensor

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/hashmap-kz/assetsensor/internal/cursor"
)

// RunKey derives a stable idempotency key for a tick's RunRequest from its
// resulting cursor, so the job execution system can deduplicate retried or
// re-delivered run requests without re-running work. Hashing the post-tick
// cursor rather than a random value means two ticks that land on the exact
// same cursor state produce the exact same key, which is precisely the
// retried/re-delivered case.
func RunKey(next cursor.Cursor) string {
	keys := make([]string, 0, len(next))
	for k := range next {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	canonical := make([][2]any, len(keys))
	for i, k := range keys {
		canonical[i] = [2]any{k, next[k]}
	}

	raw, err := json.Marshal(canonical)
	if err != nil {
		panic("sensor: unexpected marshal failure computing run key: " + err.Error())
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
