package ed25519

import (
	"testing"

	"github.com/33cn/wager/common/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenKey(t *testing.T) {
	d := &Driver{}
	key, err := d.GenKey()
	assert.Nil(t, err)
	assert.Equal(t, 64, len(key.Bytes()))
	assert.Equal(t, 32, len(key.PubKey().Bytes()))
}

func TestSignVerify(t *testing.T) {
	c, err := crypto.New(Name)
	require.NoError(t, err)
	key, err := c.GenKey()
	require.NoError(t, err)

	msg := []byte("wager")
	sig := key.Sign(msg)
	assert.False(t, sig.IsZero())
	assert.True(t, key.PubKey().VerifyBytes(msg, sig))
	assert.False(t, key.PubKey().VerifyBytes([]byte("other"), sig))

	sig2, err := c.SignatureFromBytes(sig.Bytes())
	require.NoError(t, err)
	assert.True(t, sig.Equals(sig2))

	pub, err := c.PubKeyFromBytes(key.PubKey().Bytes())
	require.NoError(t, err)
	assert.True(t, pub.Equals(key.PubKey()))
	assert.True(t, pub.VerifyBytes(msg, sig2))
}

func TestPrivKeyFromBytes(t *testing.T) {
	d := &Driver{}
	key, err := d.GenKey()
	require.NoError(t, err)

	full, err := d.PrivKeyFromBytes(key.Bytes())
	require.NoError(t, err)
	assert.True(t, key.Equals(full))

	seed, err := d.PrivKeyFromBytes(key.Bytes()[:32])
	require.NoError(t, err)
	assert.True(t, key.Equals(seed))

	_, err = d.PrivKeyFromBytes([]byte{1, 2})
	assert.Error(t, err)
	_, err = d.PubKeyFromBytes([]byte{1, 2})
	assert.Error(t, err)
	_, err = d.SignatureFromBytes([]byte{1, 2})
	assert.Error(t, err)
}
