// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"

	"github.com/33cn/wager/common"
	"github.com/33cn/wager/system/dapp"
	cty "github.com/33cn/wager/system/dapp/coins/types"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
)

// Chain33 json rpc 服务, 方法名为 Chain33.<Method>
type Chain33 struct {
	api API
}

// SendTransaction 执行一笔已签名交易, 执行失败时返回错误
func (c *Chain33) SendTransaction(in RawParm, result *interface{}) error {
	tx, err := types.DecodeTx(in.Data)
	if err != nil {
		return err
	}
	receipt, err := c.api.ExecTx(tx)
	if err != nil {
		rlog.Debug("SendTransaction", "execer", string(tx.Execer), "err", err)
		return err
	}
	*result = &ReplySendTx{Hash: common.ToHex(tx.Hash()), Receipt: types.DecodeReceipt(receipt)}
	return nil
}

// QueryTransaction 按哈希查询交易
func (c *Chain33) QueryTransaction(in QueryParm, result *interface{}) error {
	hash, err := common.FromHex(in.Hash)
	if err != nil {
		return errors.Wrap(types.ErrInvalidParam, err.Error())
	}
	reply, err := c.api.GetTx(hash)
	if err != nil {
		return err
	}
	//重新格式化数据
	tx := reply.Tx
	detail := &TransactionDetail{
		Hash: common.ToHex(reply.Hash),
		Tx: &Transaction{
			Execer:  string(tx.Execer),
			Action:  "unknown",
			Payload: common.ToHex(tx.Payload),
			Nonce:   tx.Nonce,
		},
		Receipt: types.DecodeReceipt(reply.Receipt),
	}
	if d, err := dapp.LoadDriver(string(tx.Execer)); err == nil {
		detail.Tx.Action = d.GetActionName(tx)
	}
	if signers, err := tx.Signers(); err == nil {
		for _, s := range signers {
			detail.Tx.Signers = append(detail.Tx.Signers, s.String())
		}
	}
	*result = detail
	return nil
}

func (c *Chain33) query(execer, funcName string, req interface{}, result *interface{}) error {
	params, err := json.Marshal(req)
	if err != nil {
		return err
	}
	reply, err := c.api.Query(execer, funcName, params)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// Query 通用查询
func (c *Chain33) Query(in Query4Jrpc, result *interface{}) error {
	reply, err := c.api.Query(in.Execer, in.FuncName, in.Payload)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetWager 读取赌约记录
func (c *Chain33) GetWager(in wty.ReqWagerID, result *interface{}) error {
	return c.query(wty.WagerX, wty.FuncNameGetWager, &in, result)
}

// ListWagers 参与方的赌约
func (c *Chain33) ListWagers(in wty.ReqWagerParty, result *interface{}) error {
	return c.query(wty.WagerX, wty.FuncNameListWagers, &in, result)
}

// DeriveWagerAddress 赌约的托管地址
func (c *Chain33) DeriveWagerAddress(in wty.ReqWagerID, result *interface{}) error {
	return c.query(wty.WagerX, wty.FuncNameDeriveAddress, &in, result)
}

// GetBalance 账户余额
func (c *Chain33) GetBalance(in cty.ReqBalance, result *interface{}) error {
	return c.query(cty.CoinsX, "GetBalance", &in, result)
}

// Version 节点版本
func (c *Chain33) Version(in *ReqNil, result *interface{}) error {
	*result = &VersionInfo{Version: types.Version}
	return nil
}
