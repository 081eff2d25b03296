package token_test

import (
	"testing"
	"time"

	"go-careermatch-backend/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecIssueAndVerify(t *testing.T) {
	codec := token.NewCodec([]byte("test-secret"))

	tok, err := codec.Issue("lovel1a", "recruiter", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := codec.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "lovel1a", claims.Subject)
	assert.Equal(t, "recruiter", claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestCodecExpiry(t *testing.T) {
	current := time.Now()
	codec := token.NewCodecWithClock([]byte("test-secret"), func() time.Time { return current })

	tok, err := codec.Issue("lovel1a", "candidate", time.Hour)
	require.NoError(t, err)

	t.Run("Valid immediately after issuance", func(t *testing.T) {
		_, err := codec.Verify(tok)
		assert.NoError(t, err)
	})

	t.Run("Expired after TTL elapses", func(t *testing.T) {
		current = current.Add(time.Hour + time.Minute)
		_, err := codec.Verify(tok)
		assert.ErrorIs(t, err, token.ErrExpiredToken)
	})
}

func TestCodecRejectsTampering(t *testing.T) {
	codec := token.NewCodec([]byte("test-secret"))

	tok, err := codec.Issue("lovel1a", "candidate", time.Hour)
	require.NoError(t, err)

	t.Run("Altered character", func(t *testing.T) {
		tampered := []byte(tok)
		if tampered[len(tampered)-1] == 'A' {
			tampered[len(tampered)-1] = 'B'
		} else {
			tampered[len(tampered)-1] = 'A'
		}
		_, err := codec.Verify(string(tampered))
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("Garbage input", func(t *testing.T) {
		_, err := codec.Verify("not-a-token")
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := token.NewCodec([]byte("different-secret"))
		_, err := other.Verify(tok)
		assert.ErrorIs(t, err, token.ErrInvalidToken)
	})
}
