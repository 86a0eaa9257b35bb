// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"

	"github.com/33cn/wager/types"
)

var (
	// ErrInvalidBetAmount stake 必须大于 0
	ErrInvalidBetAmount = errors.New("ErrInvalidBetAmount")
	// ErrWrongStatus 当前状态不允许该操作
	ErrWrongStatus = errors.New("ErrWrongStatus")
	// ErrCannotPlayAgainstSelf 对手方不能是发起人
	ErrCannotPlayAgainstSelf = errors.New("ErrCannotPlayAgainstSelf")
	// ErrUnauthorizedArbiter 签名者不是记录中的仲裁人
	ErrUnauthorizedArbiter = errors.New("ErrUnauthorizedArbiter")
	// ErrInvalidWinner 赢家不是参与方
	ErrInvalidWinner = errors.New("ErrInvalidWinner")
	// ErrUnauthorizedPlayer 参与方没有签名
	ErrUnauthorizedPlayer = errors.New("ErrUnauthorizedPlayer")
	// ErrAlreadyInitialized 派生地址上已经存在记录
	ErrAlreadyInitialized = errors.New("ErrAlreadyInitialized")
	// ErrAddressMismatch 提供的地址或 bump 与派生结果不一致
	ErrAddressMismatch = errors.New("ErrAddressMismatch")
	// ErrRecordNotFound 记录不存在或已经结束
	ErrRecordNotFound = errors.New("ErrRecordNotFound")
	// ErrInvalidWagerID wagerId 为空或超过派生种子的长度
	ErrInvalidWagerID = errors.New("ErrInvalidWagerID")
	// ErrInvalidArbiter 仲裁人不是可以签名的账户
	ErrInvalidArbiter = errors.New("ErrInvalidArbiter")
)

func init() {
	types.RegisterError(ErrInvalidBetAmount, 6001)
	types.RegisterError(ErrWrongStatus, 6002)
	types.RegisterError(ErrCannotPlayAgainstSelf, 6004)
	types.RegisterError(ErrUnauthorizedArbiter, 6005)
	types.RegisterError(ErrInvalidWinner, 6007)
	types.RegisterError(ErrUnauthorizedPlayer, 6008)
	types.RegisterError(ErrAlreadyInitialized, 6011)
	types.RegisterError(ErrAddressMismatch, 6012)
	types.RegisterError(ErrRecordNotFound, 6013)
	types.RegisterError(ErrInvalidWagerID, 6014)
	types.RegisterError(ErrInvalidArbiter, 6015)
}
