package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hashmap-kz/assetsensor/internal/asset"
)

func TestCursor_GetDefaultsToZero(t *testing.T) {
	c := New()
	assert.Equal(t, float64(0), c.Get(asset.New("d")))
}

func TestCursor_SetGet(t *testing.T) {
	c := New()
	c.Set(asset.New("d"), 42)
	assert.Equal(t, float64(42), c.Get(asset.New("d")))
}

func TestCursor_Clone_IsIndependent(t *testing.T) {
	c := New()
	c.Set(asset.New("d"), 1)
	clone := c.Clone()
	clone.Set(asset.New("d"), 2)
	assert.Equal(t, float64(1), c.Get(asset.New("d")))
	assert.Equal(t, float64(2), clone.Get(asset.New("d")))
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	c := New()
	c.Set(asset.New("d"), 2)
	c.Set(asset.New("e"), 3.5)

	blob := Encode(c)
	assert.NotEmpty(t, blob)

	got, ok := Decode(blob)
	assert.True(t, ok)
	assert.Equal(t, c, got)
}

func TestEncode_EmptyCursorProducesEmptyBlob(t *testing.T) {
	assert.Equal(t, "", Encode(New()))
}

func TestDecode_EmptyBlobProducesEmptyCursor(t *testing.T) {
	c, ok := Decode("")
	assert.True(t, ok)
	assert.Empty(t, c)
}

func TestDecode_MalformedBlobDegradesGracefully(t *testing.T) {
	c, ok := Decode("not valid base64!!!")
	assert.False(t, ok)
	assert.Empty(t, c)
}

func TestDecode_ValidBase64InvalidJSONDegradesGracefully(t *testing.T) {
	// base64 of "not json"
	c, ok := Decode("bm90IGpzb24=")
	assert.False(t, ok)
	assert.Empty(t, c)
}
