// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 账户资产操作

	1. load from db
	2. save to db
	3. KVSet
	4. Transfer
	5. 执行器托管账户: Allocate / Deposit / Payout / CloseAndReclaim
*/
package account

import (
	"strings"

	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/common/log"
	"github.com/33cn/wager/types"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db               dbm.KV
	accountKeyPerfix []byte
}

// NewCoinsAccount 基础资产账户
func NewCoinsAccount(db dbm.KV) *DB {
	acc := newAccountDB(SymbolPrefix(types.CoinsX))
	return acc.SetDB(db)
}

// NewAccountDB 指定资产名的账户数据库, 资产名中不能有 "-"
func NewAccountDB(execer string, db dbm.KV) (*DB, error) {
	if strings.ContainsRune(execer, '-') || execer == "" {
		return nil, types.ErrExecNameNotAllow
	}
	acc := newAccountDB(SymbolPrefix(execer))
	return acc.SetDB(db), nil
}

func newAccountDB(prefix string) *DB {
	return &DB{accountKeyPerfix: []byte(prefix)}
}

// SetDB 切换底层状态数据库, 执行器在每笔交易开始时调用
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

// LoadAccount 读取账户, 不存在时返回空账户
func (acc *DB) LoadAccount(addr address.Address) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil || len(value) == 0 {
		return &types.Account{Addr: addr}
	}
	var acc1 types.Account
	types.MustDecode(value, &acc1) //数据库已经损坏
	return &acc1
}

// LoadAccounts 批量读取
func (acc *DB) LoadAccounts(addrs []address.Address) []*types.Account {
	accs := make([]*types.Account, 0, len(addrs))
	for _, addr := range addrs {
		accs = append(accs, acc.LoadAccount(addr))
	}
	return accs
}

// CheckTransfer 检查 from 能否向 to 转账 amount
func (acc *DB) CheckTransfer(from, to address.Address, amount uint64) error {
	if amount == 0 {
		return types.ErrAmount
	}
	if from == to {
		return types.ErrSendSameToRecv
	}
	accFrom := acc.LoadAccount(from)
	if accFrom.Owner != "" {
		return errors.Wrapf(types.ErrTransferRejected, "account owned by %s", accFrom.Owner)
	}
	if accFrom.Balance < amount {
		return types.ErrInsufficientFunds
	}
	// 没有私钥的派生地址只能通过托管操作入账
	if !address.IsOnCurve(to[:]) {
		return errors.Wrap(types.ErrTransferRejected, "transfer to derived address")
	}
	return nil
}

// Transfer 普通账户之间转账
func (acc *DB) Transfer(from, to address.Address, amount uint64) (*types.Receipt, error) {
	if err := acc.CheckTransfer(from, to, amount); err != nil {
		return nil, err
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	copyfrom := *accFrom
	copyto := *accTo

	balance, overflow := math.SafeAdd(accTo.Balance, amount)
	if overflow {
		return nil, types.ErrArithmeticOverflow
	}
	accFrom.Balance -= amount
	accTo.Balance = balance

	if err := acc.SaveAccount(accFrom); err != nil {
		return nil, err
	}
	if err := acc.SaveAccount(accTo); err != nil {
		return nil, err
	}
	return acc.transferReceipt(types.TyLogTransfer,
		&types.ReceiptAccountTransfer{Prev: &copyfrom, Current: accFrom},
		&types.ReceiptAccountTransfer{Prev: &copyto, Current: accTo}), nil
}

func (acc *DB) transferReceipt(ty uint32, receipts ...*types.ReceiptAccountTransfer) *types.Receipt {
	receipt := &types.Receipt{Ty: types.ExecOk}
	for _, r := range receipts {
		receipt.Logs = append(receipt.Logs, &types.ReceiptLog{Ty: ty, Log: types.Encode(r)})
		receipt.KV = append(receipt.KV, acc.GetKVSet(r.Current)...)
	}
	return receipt
}

// SaveAccount 写入状态数据库
func (acc *DB) SaveAccount(acc1 *types.Account) error {
	for _, kv := range acc.GetKVSet(acc1) {
		if err := acc.db.Set(kv.Key, kv.Value); err != nil {
			alog.Error("SaveAccount", "addr", acc1.Addr, "err", err)
			return err
		}
	}
	return nil
}

// GetKVSet 账户数据转为数据库存储kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.AccountKey(acc1.Addr),
		Value: value,
	})
	return kvset
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(addr address.Address) (key []byte) {
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(addr.String())...)
	return key
}

// SymbolPrefix 账户 key 前缀
func SymbolPrefix(execer string) string {
	return types.StatePrefix + execer + "-"
}
