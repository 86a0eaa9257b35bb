// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusText(t *testing.T) {
	b, err := json.Marshal(StatusActive)
	require.NoError(t, err)
	assert.Equal(t, `"Active"`, string(b))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"awaitingcounterparty"`), &s))
	assert.Equal(t, StatusAwaitingCounterparty, s)
	assert.Error(t, json.Unmarshal([]byte(`"Closed"`), &s))
	assert.Equal(t, "Unknown", Status(99).String())
}

func TestWagerCodec(t *testing.T) {
	w := &Wager{WagerID: "id", Initiator: address.Address{1}, Arbiter: address.Address{2}, Stake: 5, TotalPot: 5,
		Status: StatusAwaitingCounterparty, Disambiguator: 254}
	var got Wager
	require.NoError(t, types.Decode(types.Encode(w), &got))
	assert.Equal(t, w, &got)
	assert.Nil(t, got.Counterparty)

	cp := address.Address{3}
	w.Counterparty = &cp
	c := w.Clone()
	c.Counterparty[0] = 4
	assert.Equal(t, address.Address{3}, *w.Counterparty)
	assert.True(t, w.IsParty(address.Address{3}))
	assert.False(t, w.IsParty(address.Address{2}))
}

func TestMaxRecordSize(t *testing.T) {
	cp, winner := address.Address{1}, address.Address{2}
	w := &Wager{WagerID: strings.Repeat("a", MaxWagerIDLength), Counterparty: &cp, Winner: &winner,
		Stake: 1 << 62, TotalPot: 1 << 63, Status: StatusActive, Disambiguator: 200}
	assert.LessOrEqual(t, uint64(types.Size(w)), MaxRecordSize)
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, int32(6001), types.ErrorCode(ErrInvalidBetAmount))
	assert.Equal(t, int32(6005), types.ErrorCode(ErrUnauthorizedArbiter))
	assert.Equal(t, int32(6015), types.ErrorCode(ErrInvalidArbiter))
	assert.Equal(t, ErrRecordNotFound, types.ParseError("query: ErrRecordNotFound"))
}

func TestActionGetters(t *testing.T) {
	tx := NewJoinTx(&WagerJoin{WagerID: "id"})
	var action WagerAction
	require.NoError(t, types.Decode(tx.Payload, &action))
	assert.Equal(t, uint32(WagerActionJoin), action.GetTy())
	assert.NotNil(t, action.GetJoin())
	assert.Nil(t, action.GetCreate())
	assert.Nil(t, action.GetResolve())
	assert.Nil(t, action.GetCancel())
	assert.Equal(t, WagerX, string(tx.Execer))
}
