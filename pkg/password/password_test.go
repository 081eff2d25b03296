package password_test

import (
	"testing"

	"go-careermatch-backend/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Run("Should verify the original password against its hash", func(t *testing.T) {
		hash, err := password.Hash("S3cure-pass!")
		require.NoError(t, err)
		assert.NotEqual(t, "S3cure-pass!", hash)
		assert.True(t, password.Verify(hash, "S3cure-pass!"))
	})

	t.Run("Should reject a wrong password", func(t *testing.T) {
		hash, err := password.Hash("S3cure-pass!")
		require.NoError(t, err)
		assert.False(t, password.Verify(hash, "s3cure-pass!"))
	})

	t.Run("Should reject a malformed hash", func(t *testing.T) {
		assert.False(t, password.Verify("not-a-bcrypt-hash", "anything"))
	})
}
