// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
wager 托管赌约执行器

每个赌约保存在由 (namespace, wagerId) 派生出的托管地址上, 该地址同时是一个
由本执行器托管的账户, 账户余额即奖池.

主要提供的操作：
Create  -> 发起人创建赌约并存入 stake
Join    -> 对手方加入并存入 stake
Resolve -> 仲裁人宣布赢家, 奖池全部支付给赢家
Cancel  -> 仲裁人取消, 各自退回 stake

Resolve 和 Cancel 之后记录以及托管账户都被删除.
*/

import (
	"fmt"
	"sync"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/common/log"
	drivers "github.com/33cn/wager/system/dapp"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
)

var wlog = log.New("module", "execs.wager")

var driverName = wty.WagerX

var (
	once sync.Once
	ety  drivers.ExecutorType
	// 托管地址都绑定在 wager 执行器地址上
	deriver = address.NewDeriver(wty.WagerX)
)

// Init 注册执行器, 多次调用只注册一次
func Init() {
	once.Do(func() {
		ety = drivers.NewExecTypeBase(driverName, func() drivers.ExecutorAction { return &wty.WagerAction{} }, wty.GetTypeMap(), &Wager{})
		drivers.Register(driverName, newWager)
	})
}

// GetName 执行器名
func GetName() string {
	return driverName
}

// Wager 执行器
type Wager struct {
	drivers.DriverBase
}

func newWager() drivers.Driver {
	w := &Wager{}
	w.SetChild(w)
	w.SetExecutorType(ety)
	return w
}

// GetDriverName 驱动名
func (w *Wager) GetDriverName() string {
	return driverName
}

// DeriveAddress 赌约的托管地址以及 bump
func DeriveAddress(namespace, wagerID string) (address.Address, uint8, error) {
	if err := checkWagerID(wagerID); err != nil {
		return address.Address{}, 0, err
	}
	return deriver.Derive(namespace, wagerID)
}

func checkWagerID(id string) error {
	if len(id) == 0 || len(id) > wty.MaxWagerIDLength {
		return wty.ErrInvalidWagerID
	}
	return nil
}

// ExecLocal 按回执日志维护参与方索引
func (w *Wager) ExecLocal(tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	set, err := w.DriverBase.ExecLocal(tx, receipt, index)
	if err != nil {
		return nil, err
	}
	if receipt.Ty != types.ExecOk {
		return set, nil
	}
	for _, item := range receipt.Logs {
		switch item.Ty {
		case wty.TyLogWagerCreate, wty.TyLogWagerJoin, wty.TyLogWagerResolve, wty.TyLogWagerCancel:
			var r wty.ReceiptWager
			if err := types.Decode(item.Log, &r); err != nil {
				panic(err) //数据错误了，已经被修改了
			}
			set.KV = append(set.KV, updateIndex(item.Ty, &r)...)
		}
	}
	return set, nil
}

//更新索引
func updateIndex(ty uint32, r *wty.ReceiptWager) (kvs []*types.KeyValue) {
	w := r.Wager
	switch ty {
	case wty.TyLogWagerCreate:
		kvs = append(kvs, addPartyIndex(w.Initiator, w.WagerID))
		if w.Arbiter != w.Initiator {
			kvs = append(kvs, addPartyIndex(w.Arbiter, w.WagerID))
		}
	case wty.TyLogWagerJoin:
		if w.Counterparty != nil && *w.Counterparty != w.Arbiter {
			kvs = append(kvs, addPartyIndex(*w.Counterparty, w.WagerID))
		}
	case wty.TyLogWagerResolve, wty.TyLogWagerCancel:
		kvs = append(kvs, delPartyIndex(w.Initiator, w.WagerID))
		if w.Arbiter != w.Initiator {
			kvs = append(kvs, delPartyIndex(w.Arbiter, w.WagerID))
		}
		if w.Counterparty != nil && *w.Counterparty != w.Arbiter {
			kvs = append(kvs, delPartyIndex(*w.Counterparty, w.WagerID))
		}
	}
	return kvs
}

func calcPartyIndexPrefix(addr address.Address) []byte {
	return []byte(fmt.Sprintf("%swager-party:%s:", types.LocalPrefix, addr))
}

func calcPartyIndexKey(addr address.Address, id string) []byte {
	return append(calcPartyIndexPrefix(addr), []byte(id)...)
}

func addPartyIndex(addr address.Address, id string) *types.KeyValue {
	return &types.KeyValue{Key: calcPartyIndexKey(addr, id), Value: []byte(id)}
}

func delPartyIndex(addr address.Address, id string) *types.KeyValue {
	return &types.KeyValue{Key: calcPartyIndexKey(addr, id)}
}
