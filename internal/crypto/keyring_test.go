package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestKeyring_SetGetDelete(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvKey, "")

	k := NewKeyring()
	require.True(t, k.IsAvailable())

	_, err := k.GetKey()
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, k.SetKey("s3cret"))
	got, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)

	require.NoError(t, k.DeleteKey())
	_, err = k.GetKey()
	assert.ErrorIs(t, err, ErrKeyNotFound)
	assert.ErrorIs(t, k.DeleteKey(), ErrKeyNotFound)
}

func TestKeyring_EnvOverride(t *testing.T) {
	keyring.MockInit()
	t.Setenv(EnvKey, "from-env")

	k := NewKeyring()
	require.NoError(t, k.SetKey("from-keyring"))

	got, err := k.GetKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", got)
}

func TestKeyring_RejectsEmptyPassword(t *testing.T) {
	keyring.MockInit()
	assert.Error(t, NewKeyring().SetKey(""))
}
