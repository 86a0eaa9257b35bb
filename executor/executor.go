// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 交易执行模块
//
// 交易逐笔串行执行: 验证签名, 加载执行器, 在内存事务中执行,
// 失败时回滚, 成功时状态写入, 本地索引以及交易回执在同一个 batch 中落盘.
// 签名合法的交易无论成功失败都会记录回执, 同一笔交易只能执行一次.
package executor

import (
	"sync"
	"time"

	"github.com/33cn/wager/account"
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/common/log"
	"github.com/33cn/wager/metrics"
	"github.com/33cn/wager/pluginmgr"
	_ "github.com/33cn/wager/system" //register dapps
	drivers "github.com/33cn/wager/system/dapp"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
)

var elog = log.New("module", "execs")

var genesisFlagKey = []byte(types.FlagPrefix + "genesis")

// Executor 执行器
type Executor struct {
	mu  sync.RWMutex
	db  dbm.DB
	cfg *types.Config
}

// New new executor
func New(cfg *types.Config, db dbm.DB) *Executor {
	pluginmgr.InitExec()
	if cfg == nil {
		cfg = types.DefaultConfig()
	}
	return &Executor{db: db, cfg: cfg}
}

// Config 当前配置
func (e *Executor) Config() *types.Config {
	return e.cfg
}

func (e *Executor) loadDriver(execer string, statedb dbm.KV) (drivers.Driver, error) {
	d, err := drivers.LoadDriver(execer)
	if err != nil {
		return nil, err
	}
	d.SetStateDB(statedb)
	d.SetLocalDB(e.db)
	d.SetExecConfig(&e.cfg.Exec)
	return d, nil
}

// ExecTx 执行一笔交易. 执行失败时状态不发生任何变化
func (e *Executor) ExecTx(tx *types.Transaction) (*types.ReceiptData, error) {
	if tx == nil {
		return nil, types.ErrEmptyTx
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	begin := time.Now()
	defer func() {
		metrics.Timer("executor/exec").UpdateSince(begin)
	}()

	hash := tx.Hash()
	if _, err := e.db.Get(types.TxReceiptKey(hash)); err == nil {
		return nil, types.ErrTxDup
	}
	signers, err := tx.Signers()
	if err != nil {
		return nil, err
	}
	statedb := NewStateDB(e.db)
	d, err := e.loadDriver(string(tx.Execer), statedb)
	if err != nil {
		return e.saveFailed(hash, tx, string(tx.Execer), err)
	}
	d.SetSigners(signers)
	action := string(tx.Execer) + "/" + d.GetActionName(tx)
	if err := d.CheckTx(tx, 0); err != nil {
		return e.saveFailed(hash, tx, action, err)
	}

	statedb.Begin()
	receipt, err := d.Exec(tx, 0)
	if err == nil && receipt == nil {
		err = types.ErrActionNotSupport
	}
	if err == nil {
		err = checkKV(statedb.GetSetKeys(), receipt.KV)
	}
	if err != nil {
		statedb.Rollback()
		return e.saveFailed(hash, tx, action, err)
	}
	statedb.Commit()

	rdata := &types.ReceiptData{Ty: receipt.Ty, Logs: receipt.Logs}
	set, err := d.ExecLocal(tx, rdata, 0)
	if err != nil {
		metrics.Outcome(action, err)
		return nil, err
	}

	batch := e.db.NewBatch(true)
	statedb.Flush(batch)
	for _, kv := range set.KV {
		batch.Set(kv.Key, kv.Value)
	}
	batch.Set(types.TxReceiptKey(hash), types.Encode(&types.TxResult{Hash: hash, Tx: tx, Receipt: rdata}))
	if err := batch.Write(); err != nil {
		elog.Error("write batch", "hash", hashHex(hash), "err", err)
		metrics.Outcome(action, err)
		return nil, err
	}
	metrics.Outcome(action, nil)
	elog.Info("exec tx", "hash", hashHex(hash), "action", action, "logs", len(rdata.Logs))
	return rdata, nil
}

// saveFailed 签名合法但执行失败的交易只写入错误回执, 状态不变.
// 交易哈希同样被占用, 之后重放返回 ErrTxDup
func (e *Executor) saveFailed(hash []byte, tx *types.Transaction, action string, err error) (*types.ReceiptData, error) {
	metrics.Outcome(action, err)
	elog.Debug("exec tx failed", "hash", hashHex(hash), "action", action, "err", err)
	rdata := failReceipt(err)
	batch := e.db.NewBatch(true)
	batch.Set(types.TxReceiptKey(hash), types.Encode(&types.TxResult{Hash: hash, Tx: tx, Receipt: rdata}))
	if werr := batch.Write(); werr != nil {
		elog.Error("write failed receipt", "hash", hashHex(hash), "err", werr)
		return nil, werr
	}
	return rdata, err
}

func failReceipt(err error) *types.ReceiptData {
	return &types.ReceiptData{
		Ty:   types.ExecErr,
		Logs: []*types.ReceiptLog{{Ty: types.TyLogErr, Log: []byte(err.Error())}},
	}
}

// checkKV 执行器通过 statedb 写入的 key 必须全部出现在回执中
func checkKV(memset []string, kvs []*types.KeyValue) error {
	keys := make(map[string]bool)
	for _, kv := range kvs {
		keys[string(kv.Key)] = true
	}
	for _, key := range memset {
		if !keys[key] {
			elog.Error("err memset key", "key", key)
			return types.ErrNotAllowMemSetKey
		}
	}
	return nil
}

// Query 只读查询, params 为 json 编码的请求
func (e *Executor) Query(execer, funcName string, params []byte) (interface{}, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	d, err := e.loadDriver(execer, NewStateDB(e.db))
	if err != nil {
		return nil, err
	}
	return d.Query(funcName, params)
}

// GetTx 按交易哈希查询交易及回执
func (e *Executor) GetTx(hash []byte) (*types.TxResult, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	value, err := e.db.Get(types.TxReceiptKey(hash))
	if err != nil {
		if errors.Cause(err) == dbm.ErrNotFoundInDb {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	var result types.TxResult
	if err := types.Decode(value, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenesisInit 按配置初始化账户余额, 只能执行一次
func (e *Executor) GenesisInit(allocs []*types.GenesisAlloc) (*types.Receipt, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.db.Get(genesisFlagKey); err == nil {
		return nil, types.ErrGenesisInited
	}
	statedb := NewStateDB(e.db)
	receipt, err := account.NewCoinsAccount(statedb).GenesisAlloc(allocs)
	if err != nil {
		return nil, err
	}
	batch := e.db.NewBatch(true)
	statedb.Flush(batch)
	batch.Set(genesisFlagKey, []byte{1})
	if err := batch.Write(); err != nil {
		return nil, err
	}
	elog.Info("genesis init", "accounts", len(allocs))
	return receipt, nil
}

// GetBalance 基础资产余额
func (e *Executor) GetBalance(addr address.Address) *types.Account {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return account.NewCoinsAccount(NewStateDB(e.db)).LoadAccount(addr)
}

func hashHex(hash []byte) string {
	return common.ToHex(hash)
}
