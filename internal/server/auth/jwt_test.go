package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/focussync/internal/common"
)

var secret = []byte("test-secret")

func TestGenerateAndVerify_RoundTrip(t *testing.T) {
	token, err := GenerateToken("user-1", TypeAccess, secret, time.Minute)
	require.NoError(t, err)

	userID, err := GetUserIDFromToken(token, TypeAccess, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerify_WrongType(t *testing.T) {
	token, err := GenerateToken("user-1", TypeRefresh, secret, time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, TypeAccess, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken,
		"a refresh token must not pass access verification")
}

func TestVerify_Expired(t *testing.T) {
	token, err := GenerateToken("user-1", TypeAccess, secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, TypeAccess, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerify_BadSignature(t *testing.T) {
	token, err := GenerateToken("user-1", TypeAccess, []byte("other-secret"), time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, TypeAccess, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	_, err := GetUserIDFromToken("not.a.jwt", TypeAccess, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = GetUserIDFromToken("", TypeAccess, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
