// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	root := NewRootCmd("wager", DefaultRPCAddr)
	assert.Equal(t, "wager-cli", root.Use)

	for _, path := range [][]string{
		{"account", "balance"},
		{"account", "transfer"},
		{"key", "gen"},
		{"tx", "query"},
		{"version"},
		{"wager", "create"},
		{"wager", "join"},
		{"wager", "resolve"},
		{"wager", "cancel"},
		{"wager", "show"},
		{"wager", "list"},
		{"wager", "addr"},
	} {
		cmd, _, err := root.Find(path)
		require.NoError(t, err, path)
		assert.Equal(t, path[len(path)-1], cmd.Name())
	}

	laddr, err := root.PersistentFlags().GetString("rpc_laddr")
	require.NoError(t, err)
	assert.Equal(t, DefaultRPCAddr, laddr)
}
