// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Version 软件版本
const Version = "1.0.0"

// Coin 1 coin = 1e8 最小单位
const Coin uint64 = 1e8

// CoinsX 基础资产执行器名
const CoinsX = "coins"

//log type
const (
	TyLogReserved = 0
	TyLogErr      = 1
	TyLogFee      = 2
	//TyLogTransfer coins
	TyLogTransfer     = 3
	TyLogGenesis      = 4
	TyLogDeposit      = 5
	TyLogExecTransfer = 6
	TyLogExecWithdraw = 7
	TyLogExecDeposit  = 8
	TyLogExecFrozen   = 9
	TyLogExecActive   = 10
	TyLogExecClose    = 13
)

//exec type
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// key prefixes of the persisted namespaces
const (
	// StatePrefix 状态数据 key 前缀
	StatePrefix = "mavl-"
	// LocalPrefix 本地索引 key 前缀
	LocalPrefix = "LODB-"
	// TxReceiptPrefix 交易回执 key 前缀
	TxReceiptPrefix = "TX-"
	// FlagPrefix 内部标志 key 前缀
	FlagPrefix = "FLAG-"
)
