// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types coins 执行器的交易结构
package types

import (
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
)

// action 类型
const (
	CoinsActionTransfer = 1
)

var (
	// CoinsX 执行器名
	CoinsX = types.CoinsX
	// ExecerCoins 执行器名字节
	ExecerCoins = []byte(CoinsX)
	actionName  = map[string]uint32{
		"Transfer": CoinsActionTransfer,
	}
)

// GetTypeMap action 名 -> 类型
func GetTypeMap() map[string]uint32 {
	return actionName
}

// CoinsAction coins 交易 payload
type CoinsAction struct {
	Ty       uint32
	Transfer *CoinsTransfer `rlp:"nil"`
}

// GetTy action 类型
func (a *CoinsAction) GetTy() uint32 {
	return a.Ty
}

// GetTransfer get
func (a *CoinsAction) GetTransfer() *CoinsTransfer {
	if a.Ty != CoinsActionTransfer {
		return nil
	}
	return a.Transfer
}

// CoinsTransfer 转账
type CoinsTransfer struct {
	To     address.Address
	Amount uint64
	Note   string
}

// ReqBalance 余额查询
type ReqBalance struct {
	Addr string `json:"addr"`
}

// NewTransferTx 构造未签名的转账交易
func NewTransferTx(to address.Address, amount uint64, note string) *types.Transaction {
	action := &CoinsAction{
		Ty:       CoinsActionTransfer,
		Transfer: &CoinsTransfer{To: to, Amount: amount, Note: note},
	}
	return types.NewTransaction(CoinsX, types.Encode(action))
}
