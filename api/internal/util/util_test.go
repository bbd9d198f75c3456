package util

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare JSON", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\":1}\n```  ", `{"a":1}`},
		{"no closing fence", "```json\n{\"a\":1}", `{"a":1}`},
		{"prose untouched", "not json", "not json"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StripCodeFences(tc.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcde...", Truncate("abcdefgh", 5))
	assert.Equal(t, "trimmed", Truncate("  trimmed  ", 10))
	// Rune-safe with multibyte text.
	assert.Equal(t, "привет...", Truncate("привет мир", 6))
}

func TestDecodeBase64MaybeDataURL(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	b64 := base64.StdEncoding.EncodeToString(raw)

	t.Run("bare base64", func(t *testing.T) {
		b, mime, err := DecodeBase64MaybeDataURL(b64)
		require.NoError(t, err)
		assert.Equal(t, raw, b)
		assert.Empty(t, mime)
	})
	t.Run("data URL carries mime", func(t *testing.T) {
		b, mime, err := DecodeBase64MaybeDataURL("data:image/jpeg;base64," + b64)
		require.NoError(t, err)
		assert.Equal(t, raw, b)
		assert.Equal(t, "image/jpeg", mime)
	})
	t.Run("url-safe alphabet", func(t *testing.T) {
		urlB64 := base64.URLEncoding.EncodeToString([]byte{0xFB, 0xEF, 0xBE})
		b, _, err := DecodeBase64MaybeDataURL(urlB64)
		require.NoError(t, err)
		assert.Equal(t, []byte{0xFB, 0xEF, 0xBE}, b)
	})
	t.Run("garbage", func(t *testing.T) {
		_, _, err := DecodeBase64MaybeDataURL("!!not base64!!")
		assert.Error(t, err)
	})
}

func TestPickMIME(t *testing.T) {
	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

	assert.Equal(t, "image/png", PickMIME("image/png", "image/jpeg", jpeg))
	assert.Equal(t, "image/webp", PickMIME("", "image/webp", jpeg))
	assert.Equal(t, "image/jpeg", PickMIME("", "", jpeg))
	assert.Equal(t, "image/jpeg", PickMIME("", "", nil))
}

func TestMakeDataURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AAAA", MakeDataURL("image/png", "AAAA"))
}
