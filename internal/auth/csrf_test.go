package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueProducesHighEntropyTokens(t *testing.T) {
	issuer := NewCSRFIssuer()

	token, err := issuer.Issue()
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, raw, csrfTokenBytes)
}

func TestIssueDoesNotRepeat(t *testing.T) {
	issuer := NewCSRFIssuer()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := issuer.Issue()
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup, "issuer repeated a token")
		seen[token] = struct{}{}
	}
}

func TestCSRFMatch(t *testing.T) {
	tests := []struct {
		name   string
		header string
		cookie string
		want   bool
	}{
		{name: "matching pair", header: "abc123", cookie: "abc123", want: true},
		{name: "mismatch", header: "abc123", cookie: "xyz789", want: false},
		{name: "empty header", header: "", cookie: "abc123", want: false},
		{name: "empty cookie", header: "abc123", cookie: "", want: false},
		{name: "both empty", header: "", cookie: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CSRFMatch(tt.header, tt.cookie))
		})
	}
}
