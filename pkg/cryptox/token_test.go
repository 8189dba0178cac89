package cryptox

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
		{"custom size", 24, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.wantLen)

			raw, err := base64.RawURLEncoding.DecodeString(token)
			require.NoError(t, err)
			require.Len(t, raw, tt.size)

			token2, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestRandomString(t *testing.T) {
	const alphabet = "ABC"

	s, err := RandomString(nil, alphabet, 64)
	require.NoError(t, err)
	require.Len(t, s, 64)
	for _, r := range s {
		require.True(t, strings.ContainsRune(alphabet, r), "unexpected rune %q", r)
	}
}

func TestRandomStringDeterministicReader(t *testing.T) {
	// rand.Int over a 3 symbol alphabet reads one byte per draw and keeps
	// values below 4, so 0x00,0x01,0x02 map straight onto the alphabet.
	r := bytes.NewReader([]byte{0x00, 0x01, 0x02})

	s, err := RandomString(r, "XYZ", 3)
	require.NoError(t, err)
	require.Equal(t, "XYZ", s)
}

func TestRandomStringErrors(t *testing.T) {
	_, err := RandomString(nil, "", 4)
	require.Error(t, err)

	_, err = RandomString(nil, "AB", 0)
	require.Error(t, err)

	_, err = RandomString(bytes.NewReader(nil), "AB", 4)
	require.Error(t, err)
}
