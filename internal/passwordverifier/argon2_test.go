package passwordverifier

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hashPattern = regexp.MustCompile(`^\$(\w+)\$v=(\d+)\$m=(\d+),t=(\d+),p=(\d+)\$([0-9a-zA-Z+/=]*)\$([0-9a-zA-Z+/=]*)$`)

func TestArgon2HashCreationFormat(t *testing.T) {
	hash, err := Argon2Verifier{}.Hash("testpassword123")
	require.NoError(t, err)

	m := hashPattern.FindStringSubmatch(hash)
	require.NotNil(t, m, "hash %q did not match the PHC pattern", hash)
	assert.Equal(t, "argon2id", m[1])
	assert.Equal(t, "19", m[2])
	assert.Equal(t, "131072", m[3])
	assert.Equal(t, "3", m[4])
	assert.Equal(t, "8", m[5])
}

func TestArgon2HashVerification(t *testing.T) {
	hash, err := Argon2Verifier{}.Hash("testpassword123")
	require.NoError(t, err)

	ok, err := Argon2Verifier{}.Verify("testpassword123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Argon2Verifier{}.Verify("wrongpassword", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2VerifyWrongFormat(t *testing.T) {
	_, err := Argon2Verifier{}.Verify("testpassword123", "not-a-valid-hash")
	assert.ErrorIs(t, err, ErrPasswordHashWrongFormat)
}
