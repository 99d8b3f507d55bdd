package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	tok, exp, err := iss.Issue("round-1", time.Now())
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Second)

	id, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "round-1", id)
}

func TestVerifyRejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)

	expired, _, err := iss.Issue("round-1", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = iss.Verify(expired)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, _, err := NewIssuer("other", time.Hour).Issue("round-1", time.Now())
	require.NoError(t, err)
	_, err = iss.Verify(other)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Verify("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, RoundClaims{RoundID: "round-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = iss.Verify(none)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
