// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"testing"

	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "wager"

func TestRent(t *testing.T) {
	rent, err := Rent(100, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(456), rent)
	rent, err = Rent(100, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), rent)
	_, err = Rent(^uint64(0), 1)
	assert.Equal(t, types.ErrArithmeticOverflow, err)
	_, err = Rent(1<<62, 8)
	assert.Equal(t, types.ErrArithmeticOverflow, err)
}

func TestCustodyLifecycle(t *testing.T) {
	acc, memdb := genAccDB(t)
	payer, other, recipient := genAddr(t), genAddr(t), genAddr(t)
	custody := derivedAddr(t, "lifecycle")
	fund(t, acc, payer, 1000)
	fund(t, acc, other, 1000)

	receipt, err := acc.Allocate(payer, custody, owner, 50)
	require.NoError(t, err)
	require.Len(t, receipt.Logs, 2)
	assert.Equal(t, uint32(types.TyLogExecFrozen), receipt.Logs[1].Ty)
	c := acc.LoadAccount(custody)
	assert.Equal(t, owner, c.Owner)
	assert.Equal(t, uint64(50), c.Frozen)
	assert.Equal(t, uint64(950), acc.LoadAccount(payer).Balance)

	_, err = acc.Allocate(payer, custody, owner, 50)
	assert.Equal(t, types.ErrAccountInUse, err)

	_, err = acc.Deposit(payer, custody, owner, 100)
	require.NoError(t, err)
	_, err = acc.Deposit(other, custody, owner, 100)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), acc.LoadAccount(custody).Balance)

	// 托管账户不能被普通转账转出
	_, err = acc.Transfer(custody, payer, 1)
	assert.Equal(t, types.ErrTransferRejected, errors.Cause(err))
	// 非托管执行器不能支付
	_, err = acc.Payout(custody, payer, "other", 1)
	assert.Equal(t, types.ErrTransferRejected, errors.Cause(err))

	_, err = acc.Payout(custody, other, owner, 201)
	assert.Equal(t, types.ErrInsufficientFunds, err)
	_, err = acc.Payout(custody, other, owner, 200)
	require.NoError(t, err)
	assert.Equal(t, uint64(1100), acc.LoadAccount(other).Balance)

	receipt, err = acc.CloseAndReclaim(custody, owner, recipient)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), acc.LoadAccount(recipient).Balance)
	assert.Equal(t, acc.AccountKey(custody), receipt.KV[0].Key)
	assert.Nil(t, receipt.KV[0].Value)
	assert.Equal(t, uint32(types.TyLogExecClose), receipt.Logs[0].Ty)

	_, err = memdb.Get(acc.AccountKey(custody))
	assert.NotNil(t, err)
	// 关闭后可以重新创建
	_, err = acc.Allocate(payer, custody, owner, 50)
	assert.NoError(t, err)
}

func TestCustodyErrors(t *testing.T) {
	acc, _ := genAccDB(t)
	payer, poor := genAddr(t), genAddr(t)
	custody := derivedAddr(t, "errors")
	fund(t, acc, payer, 100)
	fund(t, acc, poor, 1)

	_, err := acc.Allocate(poor, custody, owner, 2)
	assert.Equal(t, types.ErrInsufficientFunds, err)
	_, err = acc.Deposit(payer, custody, owner, 1)
	assert.Equal(t, types.ErrTransferRejected, errors.Cause(err), "not allocated")
	_, err = acc.Allocate(payer, custody, "", 0)
	assert.Equal(t, types.ErrExecNameNotAllow, err)

	_, err = acc.Allocate(payer, custody, owner, 0)
	require.NoError(t, err)
	_, err = acc.Deposit(poor, custody, owner, 2)
	assert.Equal(t, types.ErrInsufficientFunds, err)
	_, err = acc.Deposit(payer, custody, owner, 0)
	assert.Equal(t, types.ErrAmount, err)
	_, err = acc.Deposit(payer, custody, owner, 10)
	require.NoError(t, err)

	_, err = acc.CloseAndReclaim(custody, owner, payer)
	assert.Equal(t, types.ErrTransferRejected, errors.Cause(err), "balance not zero")
	_, err = acc.Payout(custody, custody, owner, 10)
	assert.Equal(t, types.ErrSendSameToRecv, err)

	// 失败的操作不改变任何余额
	assert.Equal(t, uint64(90), acc.LoadAccount(payer).Balance)
	assert.Equal(t, uint64(10), acc.LoadAccount(custody).Balance)
}

func TestPayoutOverflow(t *testing.T) {
	acc, _ := genAccDB(t)
	payer, rich := genAddr(t), genAddr(t)
	custody := derivedAddr(t, "overflow")
	fund(t, acc, payer, 100)
	fund(t, acc, rich, ^uint64(0))

	_, err := acc.Allocate(payer, custody, owner, 0)
	require.NoError(t, err)
	_, err = acc.Deposit(payer, custody, owner, 10)
	require.NoError(t, err)
	_, err = acc.Payout(custody, rich, owner, 10)
	assert.Equal(t, types.ErrArithmeticOverflow, err)
	assert.Equal(t, uint64(10), acc.LoadAccount(custody).Balance)
}
