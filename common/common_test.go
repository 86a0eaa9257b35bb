// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHexRoundTrip(t *testing.T) {
	b := []byte{0x01, 0xab, 0xff}
	h := ToHex(b)
	assert.Equal(t, "0x01abff", h)
	assert.True(t, HasHexPrefix(h))

	out, err := FromHex(h)
	assert.Nil(t, err)
	assert.Equal(t, b, out)

	out, err = FromHex("abc")
	assert.Nil(t, err)
	assert.Equal(t, []byte{0x0a, 0xbc}, out)

	_, err = FromHex("0xzz")
	assert.NotNil(t, err)
	assert.Equal(t, "", ToHex(nil))
}

func TestSha256Parts(t *testing.T) {
	whole := Sha256([]byte("BOARDOVERSEgame-1"))
	parts := Sha256Parts([]byte("BOARDOVERSE"), []byte("game-1"))
	assert.Equal(t, whole, parts[:])
}

func TestCopyBytes(t *testing.T) {
	assert.Nil(t, CopyBytes(nil))
	src := []byte("abc")
	dst := CopyBytes(src)
	dst[0] = 'x'
	assert.Equal(t, []byte("abc"), src)
}
