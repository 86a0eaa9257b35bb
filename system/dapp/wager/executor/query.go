// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/wager/common/address"
	wty "github.com/33cn/wager/system/dapp/wager/types"
)

// Query_GetWager 按 wagerId 读取记录, 已经结束的赌约返回 ErrRecordNotFound
func (w *Wager) Query_GetWager(in *wty.ReqWagerID) (interface{}, error) {
	addr, _, err := DeriveAddress(w.GetExecConfig().WagerNamespace, in.WagerID)
	if err != nil {
		return nil, err
	}
	record, err := readWager(w.GetStateDB(), addr)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Query_ListWagers 参与方或仲裁人相关的进行中的赌约
func (w *Wager) Query_ListWagers(in *wty.ReqWagerParty) (interface{}, error) {
	party, err := address.NewAddrFromString(in.Addr)
	if err != nil {
		return nil, err
	}
	values, err := w.GetLocalDB().PrefixScan(calcPartyIndexPrefix(party))
	if err != nil {
		return nil, err
	}
	namespace := w.GetExecConfig().WagerNamespace
	reply := &wty.ReplyWagerList{}
	for _, id := range values {
		addr, _, err := DeriveAddress(namespace, string(id))
		if err != nil {
			continue
		}
		record, err := readWager(w.GetStateDB(), addr)
		if err != nil {
			wlog.Debug("ListWagers stale index", "id", string(id), "err", err)
			continue
		}
		reply.Wagers = append(reply.Wagers, record)
	}
	return reply, nil
}

// Query_DeriveAddress 计算托管地址, 客户端构造交易时使用
func (w *Wager) Query_DeriveAddress(in *wty.ReqWagerID) (interface{}, error) {
	addr, bump, err := DeriveAddress(w.GetExecConfig().WagerNamespace, in.WagerID)
	if err != nil {
		return nil, err
	}
	return &wty.ReplyWagerAddress{WagerID: in.WagerID, Addr: addr, Disambiguator: bump}, nil
}
