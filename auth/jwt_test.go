package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestIssueAndVerify(t *testing.T) {
	v := NewJWTVerifier(testSecret, "SyncNotes", "SyncNotes")

	token, err := v.Issue("alice")
	require.NoError(t, err)

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", id)
}

func TestVerifyNameIdentifierClaim(t *testing.T) {
	v := NewJWTVerifier(testSecret, "SyncNotes", "SyncNotes")
	token := sign(t, testSecret, jwt.MapClaims{
		nameIdClaim: "bob",
		"iss":       "SyncNotes",
		"aud":       "SyncNotes",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	id, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "bob", id)
}

func TestVerifyRejects(t *testing.T) {
	v := NewJWTVerifier(testSecret, "SyncNotes", "SyncNotes")
	valid := jwt.MapClaims{
		"sub": "alice",
		"iss": "SyncNotes",
		"aud": "SyncNotes",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	with := func(key string, value any) jwt.MapClaims {
		c := jwt.MapClaims{}
		for k, v := range valid {
			c[k] = v
		}
		if value == nil {
			delete(c, key)
		} else {
			c[key] = value
		}
		return c
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", sign(t, []byte("other"), valid)},
		{"expired", sign(t, testSecret, with("exp", time.Now().Add(-time.Hour).Unix()))},
		{"no expiry", sign(t, testSecret, with("exp", nil))},
		{"wrong issuer", sign(t, testSecret, with("iss", "someone-else"))},
		{"wrong audience", sign(t, testSecret, with("aud", "someone-else"))},
		{"no subject", sign(t, testSecret, with("sub", nil))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := v.Verify(tt.token)
			assert.Error(t, err)
			assert.Empty(t, id)
		})
	}
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	v := NewJWTVerifier(testSecret, "", "")
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "alice",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(testSecret)
	require.NoError(t, err)

	_, err = v.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func sign(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}
