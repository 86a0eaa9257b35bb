// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"testing"

	pkgerr "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	assert.Equal(t, int32(0), ErrorCode(nil))
	assert.Equal(t, int32(6000), ErrorCode(ErrInsufficientFunds))
	wrapped := pkgerr.Wrapf(ErrArithmeticOverflow, "add %d", 1)
	assert.Equal(t, int32(6021), ErrorCode(wrapped))
	assert.Equal(t, "ErrArithmeticOverflow", ErrorName(wrapped))
	assert.Equal(t, int32(-1), ErrorCode(errors.New("other")))
	assert.Equal(t, "ErrUnknown", ErrorName(errors.New("other")))
	assert.Equal(t, "", ErrorName(nil))
}

func TestParseError(t *testing.T) {
	wrapped := pkgerr.Wrap(ErrTransferRejected, "payout")
	assert.Equal(t, ErrTransferRejected, ParseError(wrapped.Error()))
	assert.Equal(t, ErrNotFound, ParseError(" ErrNotFound\n"))
	assert.Equal(t, ErrNotFoundInDb, ParseError("get: ErrNotFoundInDb"))

	unknown := ParseError("something else")
	assert.EqualError(t, unknown, "something else")
	assert.Equal(t, int32(-1), ErrorCode(unknown))
}

func TestRegisterErrorTwice(t *testing.T) {
	assert.NotPanics(t, func() { RegisterError(ErrDecode, 101) })
	assert.Panics(t, func() { RegisterError(errors.New("ErrDecode"), 999) })
}
