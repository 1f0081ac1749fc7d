package cursor

import (
	"encoding/base64"
	"encoding/json"
)

// Encode serializes c into the opaque string persisted by the sensor
// framework between ticks. The encoding is base64-of-JSON: JSON preserves
// full float64 precision for every cursor entry, and base64 keeps the
// blob opaque to any caller that might otherwise be tempted to parse it.
func Encode(c Cursor) string {
	if len(c) == 0 {
		return ""
	}
	raw, err := json.Marshal(c)
	if err != nil {
		// Cursor is a flat map[string]float64; it cannot fail to marshal.
		panic("cursor: unexpected marshal failure: " + err.Error())
	}
	return base64.StdEncoding.EncodeToString(raw)
}

// Decode parses an opaque cursor string produced by Encode. An empty input
// decodes to an empty Cursor (the framework passes "" before the first
// tick ever runs). A malformed blob is treated as CursorDecodeFailure:
// Decode returns an empty Cursor and ok=false so the caller can log a
// warning and proceed — a corrupt cursor must never wedge the sensor.
func Decode(blob string) (c Cursor, ok bool) {
	if blob == "" {
		return New(), true
	}
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return New(), false
	}
	var decoded Cursor
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return New(), false
	}
	if decoded == nil {
		decoded = New()
	}
	return decoded, true
}
