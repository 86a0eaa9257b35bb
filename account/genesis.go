// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
	"github.com/ethereum/go-ethereum/common/math"
)

// GenesisInit 生成创世地址账户收据
func (acc *DB) GenesisInit(addr address.Address, amount uint64) (receipt *types.Receipt, err error) {
	if amount == 0 {
		return nil, types.ErrAmount
	}
	accTo := acc.LoadAccount(addr)
	if accTo.Owner != "" {
		return nil, types.ErrAccountInUse
	}
	copyto := *accTo
	balance, overflow := math.SafeAdd(accTo.Balance, amount)
	if overflow {
		return nil, types.ErrArithmeticOverflow
	}
	accTo.Balance = balance
	if err := acc.SaveAccount(accTo); err != nil {
		return nil, err
	}
	return acc.transferReceipt(types.TyLogGenesis, &types.ReceiptAccountTransfer{Prev: &copyto, Current: accTo}), nil
}

// GenesisAlloc 按配置批量创世, 解析地址失败直接返回错误
func (acc *DB) GenesisAlloc(allocs []*types.GenesisAlloc) (*types.Receipt, error) {
	var receipt *types.Receipt
	for _, g := range allocs {
		addr, err := address.NewAddrFromString(g.Addr)
		if err != nil {
			alog.Error("GenesisAlloc", "addr", g.Addr, "err", err)
			return nil, err
		}
		r, err := acc.GenesisInit(addr, g.Amount)
		if err != nil {
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, r)
	}
	if receipt == nil {
		receipt = &types.Receipt{Ty: types.ExecOk}
	}
	return receipt, nil
}
