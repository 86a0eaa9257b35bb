// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"

	"github.com/33cn/wager/types"
)

// RawParm hex 编码的已签名交易
type RawParm struct {
	Data string `json:"data"`
}

// QueryParm 交易哈希
type QueryParm struct {
	Hash string `json:"hash"`
}

// ReqNil 无参数
type ReqNil struct{}

// Query4Jrpc 通用查询, Payload 为对应查询函数的 json 请求
type Query4Jrpc struct {
	Execer   string          `json:"execer"`
	FuncName string          `json:"funcName"`
	Payload  json.RawMessage `json:"payload"`
}

// ReplySendTx 交易执行结果
type ReplySendTx struct {
	Hash    string                   `json:"hash"`
	Receipt *types.ReceiptDataResult `json:"receipt"`
}

// Transaction 交易的 json 表示
type Transaction struct {
	Execer  string   `json:"execer"`
	Action  string   `json:"actionName"`
	Payload string   `json:"payload"`
	Nonce   uint64   `json:"nonce"`
	Signers []string `json:"signers"`
}

// TransactionDetail 交易以及回执
type TransactionDetail struct {
	Hash    string                   `json:"hash"`
	Tx      *Transaction             `json:"tx"`
	Receipt *types.ReceiptDataResult `json:"receipt"`
}

// VersionInfo 版本
type VersionInfo struct {
	Version string `json:"version"`
}
