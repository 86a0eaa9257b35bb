// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// WagerX 执行器名
const WagerX = "wager"

// ExecerWager 执行器名字节
var ExecerWager = []byte(WagerX)

// action 类型
const (
	WagerActionCreate = iota + 1
	WagerActionJoin
	WagerActionResolve
	WagerActionCancel
)

// log 类型
const (
	TyLogWagerCreate  = 801
	TyLogWagerJoin    = 802
	TyLogWagerResolve = 803
	TyLogWagerCancel  = 804
)

// 查询函数名
const (
	FuncNameGetWager      = "GetWager"
	FuncNameListWagers    = "ListWagers"
	FuncNameDeriveAddress = "DeriveAddress"
)

// MaxWagerIDLength wagerId 作为派生种子使用, 长度受种子长度限制
const MaxWagerIDLength = 32

var actionName = map[string]uint32{
	"Create":  WagerActionCreate,
	"Join":    WagerActionJoin,
	"Resolve": WagerActionResolve,
	"Cancel":  WagerActionCancel,
}

// GetTypeMap action 名 -> 类型
func GetTypeMap() map[string]uint32 {
	return actionName
}
