package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront/internal/domain"
)

func TestDecodeRoleFromIssuedToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)
	token, _, err := tm.GenerateToken("1", "bob", domain.RoleSeller)
	require.NoError(t, err)

	role, ok := DecodeRole(token)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleSeller, role)
}

func TestDecodeRoleIgnoresSignature(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"role":"ROLE_SELLER"}`))
	token := header + "." + payload + ".bogus-signature"

	role, ok := DecodeRole(token)
	assert.True(t, ok)
	assert.Equal(t, domain.RoleSeller, role)
}

func TestDecodeRoleAbsentOnFailure(t *testing.T) {
	cases := map[string]string{
		"empty":               "",
		"not a token":         "not-a-token",
		"undecodable payload": "eyJhbGciOiJIUzI1NiJ9.!!!not-base64!!!.sig",
		"two segments":        "a.b",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			role, ok := DecodeRole(token)
			assert.False(t, ok)
			assert.Empty(t, role)
		})
	}
}

func TestDecodeRoleAbsentWhenClaimMissing(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"1"}`))
	token := header + "." + payload + ".sig"

	_, ok := DecodeRole(token)
	assert.False(t, ok)
}

func TestParseTokenRejectsTampering(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)
	token, _, err := tm.GenerateToken("1", "bob", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret", 5).ParseToken(token)
	assert.Error(t, err)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "1", claims.Subject)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}
