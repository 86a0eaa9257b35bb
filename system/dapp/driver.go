// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dapp 执行器驱动的基础框架
//
// 每个执行器嵌入 DriverBase, 按 action 名实现
//
//	Exec_<Action>(payload, tx, index) (*types.Receipt, error)
//	ExecLocal_<Action>(payload, tx, receipt, index) (*types.LocalDBSet, error)
//	Query_<Func>(req) (interface{}, error)
//
// DriverBase 通过反射完成分发.
package dapp

import (
	"encoding/json"
	"reflect"

	"github.com/33cn/wager/account"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/common/log"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
)

var blog = log.New("module", "execs.base")

// LocalDB 本地索引数据库, 只在 ExecLocal 和查询中使用
type LocalDB interface {
	dbm.KV
	PrefixScan(prefix []byte) ([][]byte, error)
}

// Driver 执行器驱动
type Driver interface {
	SetStateDB(dbm.KV)
	GetStateDB() dbm.KV
	SetLocalDB(LocalDB)
	GetLocalDB() LocalDB
	GetCoinsAccount() *account.DB
	// 本笔交易中验证通过的签名者
	SetSigners(types.Signers)
	GetSigners() types.Signers
	SetExecConfig(*types.Exec)
	GetExecConfig() *types.Exec
	//驱动的名字，这个名称是固定的
	GetDriverName() string
	GetName() string
	SetName(string)
	GetActionName(tx *types.Transaction) string
	CheckTx(tx *types.Transaction, index int) error
	Exec(tx *types.Transaction, index int) (*types.Receipt, error)
	ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error)
	Query(funcName string, params []byte) (interface{}, error)
	GetFuncMap() map[string]reflect.Method
	GetExecutorType() ExecutorType
}

// DriverBase 执行器公共部分
type DriverBase struct {
	statedb      dbm.KV
	localdb      LocalDB
	coinsaccount *account.DB
	signers      types.Signers
	execcfg      *types.Exec
	name         string
	child        Driver
	childValue   reflect.Value
	ety          ExecutorType
}

// SetExecutorType set
func (d *DriverBase) SetExecutorType(e ExecutorType) {
	d.ety = e
}

// GetExecutorType get
func (d *DriverBase) GetExecutorType() ExecutorType {
	return d.ety
}

// GetFuncMap 子类的方法表
func (d *DriverBase) GetFuncMap() map[string]reflect.Method {
	if d.ety == nil {
		return nil
	}
	return d.ety.GetFuncMap()
}

// SetChild 设置实际的执行器, 反射调用的接收者
func (d *DriverBase) SetChild(e Driver) {
	d.child = e
	d.childValue = reflect.ValueOf(e)
}

// SetStateDB set
func (d *DriverBase) SetStateDB(db dbm.KV) {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(db)
	}
	d.statedb = db
	d.coinsaccount.SetDB(db)
}

// GetStateDB get
func (d *DriverBase) GetStateDB() dbm.KV {
	return d.statedb
}

// SetLocalDB set
func (d *DriverBase) SetLocalDB(db LocalDB) {
	d.localdb = db
}

// GetLocalDB get
func (d *DriverBase) GetLocalDB() LocalDB {
	return d.localdb
}

// GetCoinsAccount 基础资产账户, 与 statedb 共享同一个事务
func (d *DriverBase) GetCoinsAccount() *account.DB {
	if d.coinsaccount == nil {
		d.coinsaccount = account.NewCoinsAccount(d.statedb)
	}
	return d.coinsaccount
}

// SetSigners set
func (d *DriverBase) SetSigners(signers types.Signers) {
	d.signers = signers
}

// GetSigners get
func (d *DriverBase) GetSigners() types.Signers {
	return d.signers
}

// SetExecConfig set
func (d *DriverBase) SetExecConfig(cfg *types.Exec) {
	d.execcfg = cfg
}

// GetExecConfig 未设置时返回默认配置
func (d *DriverBase) GetExecConfig() *types.Exec {
	if d.execcfg == nil {
		return &types.DefaultConfig().Exec
	}
	return d.execcfg
}

// GetName 执行器名, 未设置时为驱动名
func (d *DriverBase) GetName() string {
	if d.name == "" {
		return d.child.GetDriverName()
	}
	return d.name
}

// SetName set
func (d *DriverBase) SetName(name string) {
	d.name = name
}

// GetActionName 交易的 action 名
func (d *DriverBase) GetActionName(tx *types.Transaction) string {
	if d.ety == nil {
		return "unknown"
	}
	return d.ety.ActionName(tx)
}

// CheckTx 默认只检查执行器名
func (d *DriverBase) CheckTx(tx *types.Transaction, index int) error {
	if string(tx.Execer) != d.GetName() {
		return types.ErrExecNameNotAllow
	}
	return nil
}

// Exec 调用子类的 Exec_<Action>
func (d *DriverBase) Exec(tx *types.Transaction, index int) (receipt *types.Receipt, err error) {
	if d.ety == nil {
		return nil, types.ErrActionNotSupport
	}
	defer func() {
		if r := recover(); r != nil {
			blog.Error("call exec error", "tx.exec", string(tx.Execer), "info", r)
			err = types.ErrActionNotSupport
			receipt = nil
		}
	}()
	name, value, err := d.ety.DecodePayloadValue(tx)
	if err != nil {
		return nil, err
	}
	funcname := "Exec_" + name
	method, ok := d.child.GetFuncMap()[funcname]
	if !ok {
		return nil, types.ErrActionNotSupport
	}
	valueret := method.Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(index)})
	r1, err := splitReturn(valueret)
	if err != nil {
		return nil, err
	}
	if r1 != nil {
		r, ok := r1.(*types.Receipt)
		if !ok {
			return nil, errMethodReturnType
		}
		receipt = r
	}
	return receipt, nil
}

// ExecLocal 调用子类的 ExecLocal_<Action>, 没有实现时返回空集合
func (d *DriverBase) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set := &types.LocalDBSet{}
	if d.ety == nil {
		return set, nil
	}
	name, value, err := d.ety.DecodePayloadValue(tx)
	if err != nil {
		return nil, err
	}
	method, ok := d.child.GetFuncMap()["ExecLocal_"+name]
	if !ok {
		return set, nil
	}
	valueret := method.Func.Call([]reflect.Value{d.childValue, value, reflect.ValueOf(tx), reflect.ValueOf(receipt), reflect.ValueOf(index)})
	r1, err := splitReturn(valueret)
	if err != nil {
		blog.Error("call ExecLocal", "tx.Execer", string(tx.Execer), "err", err)
		return nil, err
	}
	if r1 != nil {
		lset, ok := r1.(*types.LocalDBSet)
		if !ok {
			return nil, errMethodReturnType
		}
		set.KV = append(set.KV, lset.KV...)
	}
	return set, nil
}

// Query 调用子类的 Query_<funcname>, params 为 json
func (d *DriverBase) Query(funcname string, params []byte) (interface{}, error) {
	funcname = "Query_" + funcname
	method, ok := d.child.GetFuncMap()[funcname]
	if !ok {
		blog.Error(funcname+" funcname not find", "func", funcname)
		return nil, types.ErrActionNotSupport
	}
	ty := method.Type
	if ty.NumIn() != 2 || ty.In(1).Kind() != reflect.Ptr {
		blog.Error(funcname+" err param", "num", ty.NumIn())
		return nil, types.ErrActionNotSupport
	}
	in := reflect.New(ty.In(1).Elem())
	if len(params) > 0 {
		if err := json.Unmarshal(params, in.Interface()); err != nil {
			return nil, errors.Wrap(types.ErrInvalidParam, err.Error())
		}
	}
	return splitReturn(method.Func.Call([]reflect.Value{d.childValue, in}))
}

var errMethodReturnType = errors.New("ErrMethodReturnType")

// splitReturn 拆分 (value, error) 形式的返回值
func splitReturn(list []reflect.Value) (interface{}, error) {
	if len(list) != 2 {
		return nil, errMethodReturnType
	}
	var err error
	if !isNilVal(list[1]) {
		e, ok := list[1].Interface().(error)
		if !ok {
			return nil, errMethodReturnType
		}
		err = e
	}
	if isNilVal(list[0]) {
		return nil, err
	}
	return list[0].Interface(), err
}

func isNilVal(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
