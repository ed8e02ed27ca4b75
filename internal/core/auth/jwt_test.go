package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTer() *JWTer {
	return &JWTer{Secret: []byte("test-secret"), Issuer: "go-shop-api", TTL: time.Hour}
}

func TestIssueParseRoundtrip(t *testing.T) {
	j := newTestJWTer()

	tok, err := j.Issue("user-1", false)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.False(t, claims.Admin)
}

func TestIssueParse_AdminFlag(t *testing.T) {
	j := newTestJWTer()
	tok, err := j.Issue("admin-1", true)
	require.NoError(t, err)

	claims, err := j.Parse(tok)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
}

func TestParse_WrongSecret(t *testing.T) {
	j := newTestJWTer()
	tok, err := j.Issue("user-1", false)
	require.NoError(t, err)

	other := &JWTer{Secret: []byte("other"), Issuer: j.Issuer, TTL: j.TTL}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParse_WrongIssuer(t *testing.T) {
	j := newTestJWTer()
	tok, err := j.Issue("user-1", false)
	require.NoError(t, err)

	other := &JWTer{Secret: j.Secret, Issuer: "someone-else", TTL: j.TTL}
	_, err = other.Parse(tok)
	assert.Error(t, err)
}

func TestParse_Garbage(t *testing.T) {
	j := newTestJWTer()
	_, err := j.Parse("not.a.jwt")
	assert.Error(t, err)
}
