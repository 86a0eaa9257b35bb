// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package crypto_test

import (
	"testing"

	"github.com/33cn/wager/common/crypto"
	_ "github.com/33cn/wager/system/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	c, err := crypto.New(crypto.SignNameED25519)
	require.NoError(t, err)

	priv, err := c.GenKey()
	require.NoError(t, err)
	msg := []byte("wager")
	sig := priv.Sign(msg)

	pub, err := c.PubKeyFromBytes(priv.PubKey().Bytes())
	require.NoError(t, err)
	sig2, err := c.SignatureFromBytes(sig.Bytes())
	require.NoError(t, err)
	assert.True(t, pub.VerifyBytes(msg, sig2))
	assert.False(t, pub.VerifyBytes([]byte("other"), sig2))

	_, err = crypto.New("secp256k1")
	assert.Equal(t, crypto.ErrNotSupport, err)

	assert.Panics(t, func() { crypto.Register(crypto.SignNameED25519, c) })
}
