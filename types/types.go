// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 基础数据结构, 编码, 错误以及配置
package types

import (
	"encoding/json"

	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	"github.com/ethereum/go-ethereum/rlp"
)

// KeyValue 状态数据库的一次写入, Value 为 nil 表示删除
type KeyValue struct {
	Key   []byte
	Value []byte
}

// ReceiptLog 执行日志
type ReceiptLog struct {
	Ty  uint32
	Log []byte
}

// Receipt 交易执行结果, KV 为写入状态数据库的数据
type Receipt struct {
	Ty   uint32
	KV   []*KeyValue
	Logs []*ReceiptLog
}

// ReceiptData 持久化的交易回执, 不包含 KV
type ReceiptData struct {
	Ty   uint32
	Logs []*ReceiptLog
}

// LocalDBSet 本地索引写入集合
type LocalDBSet struct {
	KV []*KeyValue
}

// Account 账户. Owner 非空表示该账户由执行器托管
type Account struct {
	Addr    address.Address
	Balance uint64
	Frozen  uint64
	Owner   string
}

// ReceiptAccountTransfer 账户变更前后的快照
type ReceiptAccountTransfer struct {
	Prev    *Account
	Current *Account
}

// ReceiptExecAccountTransfer 托管账户变更, ExecAddr 为托管地址
type ReceiptExecAccountTransfer struct {
	ExecAddr address.Address
	Prev     *Account
	Current  *Account
}

// Encode rlp 编码, 数据结构错误时 panic
func Encode(data interface{}) []byte {
	b, err := rlp.EncodeToBytes(data)
	if err != nil {
		panic(err)
	}
	return b
}

// Size 编码后的大小
func Size(data interface{}) int {
	return len(Encode(data))
}

// Decode rlp 解码
func Decode(data []byte, msg interface{}) error {
	if err := rlp.DecodeBytes(data, msg); err != nil {
		return ErrDecode
	}
	return nil
}

// MustDecode 解码失败 panic, 用于读取已经写入数据库的数据
func MustDecode(data []byte, msg interface{}) {
	if err := rlp.DecodeBytes(data, msg); err != nil {
		panic(err)
	}
}

// MergeReceipt appends r2 into r1
func MergeReceipt(r1, r2 *Receipt) *Receipt {
	if r1 == nil {
		return r2
	}
	if r2 == nil {
		return r1
	}
	r1.Logs = append(r1.Logs, r2.Logs...)
	r1.KV = append(r1.KV, r2.KV...)
	return r1
}

// ReceiptLogResult json 友好的日志
type ReceiptLogResult struct {
	Ty  uint32          `json:"ty"`
	Log json.RawMessage `json:"log,omitempty"`
	Raw string          `json:"rawLog"`
}

// ReceiptDataResult json 友好的回执
type ReceiptDataResult struct {
	Ty    uint32              `json:"ty"`
	TyStr string              `json:"tyName"`
	Logs  []*ReceiptLogResult `json:"logs"`
}

// LogDecoder 将一种日志解码为可展示的结构
type LogDecoder func(log []byte) (interface{}, error)

var logDecoders = map[uint32]LogDecoder{}

// RegisterLogDecoder 注册日志解码器, 执行器在 init 中调用
func RegisterLogDecoder(ty uint32, dec LogDecoder) {
	logDecoders[ty] = dec
}

func init() {
	accountLog := func(log []byte) (interface{}, error) {
		var r ReceiptAccountTransfer
		err := Decode(log, &r)
		return &r, err
	}
	execLog := func(log []byte) (interface{}, error) {
		var r ReceiptExecAccountTransfer
		err := Decode(log, &r)
		return &r, err
	}
	RegisterLogDecoder(TyLogTransfer, accountLog)
	RegisterLogDecoder(TyLogGenesis, accountLog)
	RegisterLogDecoder(TyLogDeposit, accountLog)
	RegisterLogDecoder(TyLogExecDeposit, execLog)
	RegisterLogDecoder(TyLogExecWithdraw, execLog)
	RegisterLogDecoder(TyLogExecFrozen, execLog)
	RegisterLogDecoder(TyLogExecClose, execLog)
}

// DecodeReceipt 转换为 json 友好的回执
func DecodeReceipt(r *ReceiptData) *ReceiptDataResult {
	result := &ReceiptDataResult{Ty: r.Ty, TyStr: "ExecErr"}
	if r.Ty == ExecOk {
		result.TyStr = "ExecOk"
	} else if r.Ty == ExecPack {
		result.TyStr = "ExecPack"
	}
	for _, l := range r.Logs {
		item := &ReceiptLogResult{Ty: l.Ty, Raw: common.ToHex(l.Log)}
		if l.Ty == TyLogErr {
			item.Log, _ = json.Marshal(string(l.Log))
		} else if dec, ok := logDecoders[l.Ty]; ok {
			if v, err := dec(l.Log); err == nil {
				item.Log, _ = json.Marshal(v)
			}
		}
		result.Logs = append(result.Logs, item)
	}
	return result
}
