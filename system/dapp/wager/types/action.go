// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types wager 执行器的交易, 记录以及错误定义
package types

import (
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
)

// WagerAction wager 交易 payload, 只有 Ty 对应的字段有值
type WagerAction struct {
	Ty      uint32
	Create  *WagerCreate  `rlp:"nil"`
	Join    *WagerJoin    `rlp:"nil"`
	Resolve *WagerResolve `rlp:"nil"`
	Cancel  *WagerCancel  `rlp:"nil"`
}

// GetTy action 类型
func (a *WagerAction) GetTy() uint32 {
	return a.Ty
}

// GetCreate get
func (a *WagerAction) GetCreate() *WagerCreate {
	if a.Ty != WagerActionCreate {
		return nil
	}
	return a.Create
}

// GetJoin get
func (a *WagerAction) GetJoin() *WagerJoin {
	if a.Ty != WagerActionJoin {
		return nil
	}
	return a.Join
}

// GetResolve get
func (a *WagerAction) GetResolve() *WagerResolve {
	if a.Ty != WagerActionResolve {
		return nil
	}
	return a.Resolve
}

// GetCancel get
func (a *WagerAction) GetCancel() *WagerCancel {
	if a.Ty != WagerActionCancel {
		return nil
	}
	return a.Cancel
}

// WagerCreate 创建赌约, 由 Initiator 签名. Addr 为客户端计算的托管地址
type WagerCreate struct {
	WagerID   string
	Addr      address.Address
	Initiator address.Address
	Arbiter   address.Address
	Stake     uint64
}

// WagerJoin 加入赌约, 由 Counterparty 签名. Stake 为对手方同意存入的金额, 必须与记录一致
type WagerJoin struct {
	WagerID      string
	Addr         address.Address
	Counterparty address.Address
	Stake        uint64
}

// WagerResolve 仲裁人宣布赢家
type WagerResolve struct {
	WagerID string
	Addr    address.Address
	Winner  address.Address
}

// WagerCancel 仲裁人取消赌约并退款
type WagerCancel struct {
	WagerID string
	Addr    address.Address
}

func newTx(action *WagerAction) *types.Transaction {
	return types.NewTransaction(WagerX, types.Encode(action))
}

// NewCreateTx 构造未签名的创建交易
func NewCreateTx(create *WagerCreate) *types.Transaction {
	return newTx(&WagerAction{Ty: WagerActionCreate, Create: create})
}

// NewJoinTx 构造未签名的加入交易
func NewJoinTx(join *WagerJoin) *types.Transaction {
	return newTx(&WagerAction{Ty: WagerActionJoin, Join: join})
}

// NewResolveTx 构造未签名的裁决交易
func NewResolveTx(resolve *WagerResolve) *types.Transaction {
	return newTx(&WagerAction{Ty: WagerActionResolve, Resolve: resolve})
}

// NewCancelTx 构造未签名的取消交易
func NewCancelTx(cancel *WagerCancel) *types.Transaction {
	return newTx(&WagerAction{Ty: WagerActionCancel, Cancel: cancel})
}
