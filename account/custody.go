// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// RecordOverhead 每个托管账户在存储押金计算中的固定开销(字节)
const RecordOverhead = 128

// Rent 托管账户需要冻结的存储押金: (RecordOverhead + size) * perByte
func Rent(size, perByte uint64) (uint64, error) {
	total, overflow := math.SafeAdd(RecordOverhead, size)
	if overflow {
		return 0, types.ErrArithmeticOverflow
	}
	rent, overflow := math.SafeMul(total, perByte)
	if overflow {
		return 0, types.ErrArithmeticOverflow
	}
	return rent, nil
}

// LoadOwned 读取 owner 执行器托管的账户
func (acc *DB) LoadOwned(addr address.Address, owner string) (*types.Account, error) {
	acc1 := acc.LoadAccount(addr)
	if acc1.Owner != owner {
		return nil, errors.Wrapf(types.ErrTransferRejected, "account %s not owned by %s", addr, owner)
	}
	return acc1, nil
}

// Allocate 创建托管账户, payer 支付的押金冻结在托管账户中
func (acc *DB) Allocate(payer, addr address.Address, owner string, rent uint64) (*types.Receipt, error) {
	if owner == "" {
		return nil, types.ErrExecNameNotAllow
	}
	if payer == addr {
		return nil, types.ErrSendSameToRecv
	}
	custody := acc.LoadAccount(addr)
	if custody.Owner != "" {
		alog.Error("Allocate", "addr", addr, "owner", custody.Owner)
		return nil, types.ErrAccountInUse
	}
	accPayer := acc.LoadAccount(payer)
	if accPayer.Balance < rent {
		return nil, types.ErrInsufficientFunds
	}
	copyPayer := *accPayer
	copyCustody := *custody
	frozen, overflow := math.SafeAdd(custody.Frozen, rent)
	if overflow {
		return nil, types.ErrArithmeticOverflow
	}
	accPayer.Balance -= rent
	custody.Frozen = frozen
	custody.Owner = owner

	if err := acc.SaveAccount(accPayer); err != nil {
		return nil, err
	}
	if err := acc.SaveAccount(custody); err != nil {
		return nil, err
	}
	receipt := acc.transferReceipt(types.TyLogTransfer, &types.ReceiptAccountTransfer{Prev: &copyPayer, Current: accPayer})
	return types.MergeReceipt(receipt, acc.execReceipt(types.TyLogExecFrozen,
		&types.ReceiptExecAccountTransfer{ExecAddr: addr, Prev: &copyCustody, Current: custody})), nil
}

// Deposit from 把 amount 存入 owner 托管的账户 into
func (acc *DB) Deposit(from, into address.Address, owner string, amount uint64) (*types.Receipt, error) {
	if amount == 0 {
		return nil, types.ErrAmount
	}
	if from == into {
		return nil, types.ErrSendSameToRecv
	}
	custody, err := acc.LoadOwned(into, owner)
	if err != nil {
		return nil, err
	}
	accFrom := acc.LoadAccount(from)
	if accFrom.Owner != "" {
		return nil, errors.Wrapf(types.ErrTransferRejected, "deposit from custody account %s", from)
	}
	if accFrom.Balance < amount {
		alog.Error("Deposit", "from", from, "balance", accFrom.Balance, "amount", amount)
		return nil, types.ErrInsufficientFunds
	}
	balance, overflow := math.SafeAdd(custody.Balance, amount)
	if overflow {
		return nil, types.ErrArithmeticOverflow
	}
	copyFrom := *accFrom
	copyCustody := *custody
	accFrom.Balance -= amount
	custody.Balance = balance

	if err := acc.SaveAccount(accFrom); err != nil {
		return nil, err
	}
	if err := acc.SaveAccount(custody); err != nil {
		return nil, err
	}
	receipt := acc.transferReceipt(types.TyLogTransfer, &types.ReceiptAccountTransfer{Prev: &copyFrom, Current: accFrom})
	return types.MergeReceipt(receipt, acc.execReceipt(types.TyLogExecDeposit,
		&types.ReceiptExecAccountTransfer{ExecAddr: into, Prev: &copyCustody, Current: custody})), nil
}

// Payout 从 owner 托管的账户 from 向 to 支付 amount, 只有托管执行器可以调用
func (acc *DB) Payout(from, to address.Address, owner string, amount uint64) (*types.Receipt, error) {
	if amount == 0 {
		return nil, types.ErrAmount
	}
	if from == to {
		return nil, types.ErrSendSameToRecv
	}
	custody, err := acc.LoadOwned(from, owner)
	if err != nil {
		return nil, err
	}
	if custody.Balance < amount {
		alog.Error("Payout", "from", from, "balance", custody.Balance, "amount", amount)
		return nil, types.ErrInsufficientFunds
	}
	accTo := acc.LoadAccount(to)
	if accTo.Owner != "" {
		return nil, errors.Wrapf(types.ErrTransferRejected, "payout to custody account %s", to)
	}
	balance, overflow := math.SafeAdd(accTo.Balance, amount)
	if overflow {
		return nil, types.ErrArithmeticOverflow
	}
	copyCustody := *custody
	copyTo := *accTo
	custody.Balance -= amount
	accTo.Balance = balance

	if err := acc.SaveAccount(custody); err != nil {
		return nil, err
	}
	if err := acc.SaveAccount(accTo); err != nil {
		return nil, err
	}
	receipt := acc.execReceipt(types.TyLogExecWithdraw,
		&types.ReceiptExecAccountTransfer{ExecAddr: from, Prev: &copyCustody, Current: custody})
	return types.MergeReceipt(receipt, acc.transferReceipt(types.TyLogTransfer,
		&types.ReceiptAccountTransfer{Prev: &copyTo, Current: accTo})), nil
}

// CloseAndReclaim 关闭余额为0的托管账户, 冻结的押金退给 rentRecipient, 账户从状态中删除
func (acc *DB) CloseAndReclaim(addr address.Address, owner string, rentRecipient address.Address) (*types.Receipt, error) {
	if addr == rentRecipient {
		return nil, types.ErrSendSameToRecv
	}
	custody, err := acc.LoadOwned(addr, owner)
	if err != nil {
		return nil, err
	}
	if custody.Balance != 0 {
		alog.Error("CloseAndReclaim", "addr", addr, "balance", custody.Balance)
		return nil, errors.Wrapf(types.ErrTransferRejected, "close account %s with balance %d", addr, custody.Balance)
	}
	accTo := acc.LoadAccount(rentRecipient)
	if accTo.Owner != "" {
		return nil, errors.Wrapf(types.ErrTransferRejected, "reclaim to custody account %s", rentRecipient)
	}
	balance, overflow := math.SafeAdd(accTo.Balance, custody.Frozen)
	if overflow {
		return nil, types.ErrArithmeticOverflow
	}
	copyCustody := *custody
	copyTo := *accTo
	accTo.Balance = balance

	key := acc.AccountKey(addr)
	if err := acc.db.Set(key, nil); err != nil {
		return nil, err
	}
	receipt := &types.Receipt{Ty: types.ExecOk}
	receipt.KV = append(receipt.KV, &types.KeyValue{Key: key})
	closed := &types.ReceiptExecAccountTransfer{ExecAddr: addr, Prev: &copyCustody, Current: &types.Account{Addr: addr}}
	receipt.Logs = append(receipt.Logs, &types.ReceiptLog{Ty: types.TyLogExecClose, Log: types.Encode(closed)})

	if copyCustody.Frozen > 0 {
		if err := acc.SaveAccount(accTo); err != nil {
			return nil, err
		}
		receipt = types.MergeReceipt(receipt, acc.transferReceipt(types.TyLogTransfer,
			&types.ReceiptAccountTransfer{Prev: &copyTo, Current: accTo}))
	}
	return receipt, nil
}

func (acc *DB) execReceipt(ty uint32, r *types.ReceiptExecAccountTransfer) *types.Receipt {
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(r.Current),
		Logs: []*types.ReceiptLog{{Ty: ty, Log: types.Encode(r)}},
	}
}
