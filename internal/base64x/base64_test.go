package base64x

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_SaltVector(t *testing.T) {
	got := Encode(bytes.Repeat([]byte("0"), 16))
	assert.Equal(t, "KB.uKB.uKB.uKB.uKB.uK.", string(got))
}

func TestEncodedLen(t *testing.T) {
	assert.Equal(t, 22, EncodedLen(16))
	assert.Equal(t, 31, EncodedLen(23))
	assert.Equal(t, 0, EncodedLen(0))
}

func TestDecode_RoundTrip(t *testing.T) {
	for n := 1; n <= 32; n++ {
		src := make([]byte, n)
		for i := range src {
			src[i] = byte(i*37 + n)
		}
		enc := Encode(src)
		got, err := Decode(enc, n)
		require.NoError(t, err, "n=%d", n)
		assert.Equal(t, src, got)
	}
}

func TestDecode_Alphabet(t *testing.T) {
	got, err := Decode([]byte(Alphabet[:21]+"."), 16)
	require.NoError(t, err)
	assert.Len(t, got, 16)
	assert.Equal(t, byte(0x00), got[0])
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
	}{
		{name: "short", input: "cVWp4XaNU8a4v1uMRum2S", n: 16},
		{name: "long", input: "cVWp4XaNU8a4v1uMRum2SOx", n: 16},
		{name: "standard base64 symbol", input: "cVWp4XaNU8a4v1uMRum2+O", n: 16},
		{name: "padding", input: "cVWp4XaNU8a4v1uMRum2S=", n: 16},
		{name: "newline", input: "cVWp4XaNU8a4v1uMRum2\nO", n: 16},
		{name: "dollar", input: "cVWp4XaNU8a4v1uMRum$SO", n: 16},
		{name: "non-zero trailing bits", input: "cVWp4XaNU8a4v1uMRum2SP", n: 16},
		{name: "empty", input: "", n: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input), tt.n)
			assert.ErrorIs(t, err, ErrInvalidEncoding)
		})
	}
}
