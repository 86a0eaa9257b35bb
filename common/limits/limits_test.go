// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows && !plan9
// +build !windows,!plan9

package limits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetLimits(t *testing.T) {
	before, err := GetLimits()
	require.NoError(t, err)
	if before.Max < fileLimitMin {
		t.Skip("hard limit too low")
	}
	require.NoError(t, SetLimits())
	after, err := GetLimits()
	require.NoError(t, err)
	assert.True(t, after.Cur >= fileLimitMin || after.Cur == after.Max)
}
