// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"strings"
	"sync"

	pkgerr "github.com/pkg/errors"
)

var (
	ErrNotFound          = errors.New("ErrNotFound")
	ErrNotFoundInDb      = errors.New("ErrNotFoundInDb")
	ErrDecode            = errors.New("ErrDecode")
	ErrInvalidParam      = errors.New("ErrInvalidParam")
	ErrActionNotSupport  = errors.New("ErrActionNotSupport")
	ErrExecNotFound      = errors.New("ErrExecNotFound")
	ErrExecNameNotAllow  = errors.New("ErrExecNameNotAllow")
	ErrNotAllowMemSetKey = errors.New("ErrNotAllowMemSetKey")
	ErrSign              = errors.New("ErrSign")
	ErrNoSignature       = errors.New("ErrNoSignature")
	ErrTxDup             = errors.New("ErrTxDup")
	ErrEmptyTx           = errors.New("ErrEmptyTx")
	ErrAmount            = errors.New("ErrAmount")
	ErrSendSameToRecv    = errors.New("ErrSendSameToRecv")
	ErrAccountInUse      = errors.New("ErrAccountInUse")
	ErrGenesisInited     = errors.New("ErrGenesisInited")

	// ErrInsufficientFunds source balance is lower than the transfer amount
	ErrInsufficientFunds = errors.New("ErrInsufficientFunds")
	// ErrTransferRejected the ledger refused the transfer for any other reason
	ErrTransferRejected = errors.New("ErrTransferRejected")
	// ErrArithmeticOverflow an amount sum does not fit in 64 bits
	ErrArithmeticOverflow = errors.New("ErrArithmeticOverflow")
)

type errInfo struct {
	code int32
	name string
}

var (
	errMu    sync.RWMutex
	errCodes = map[error]errInfo{}
	errNames = map[string]error{}
)

// RegisterError 为错误分配稳定的错误码, 错误码会随失败的调用返回给客户端
func RegisterError(err error, code int32) {
	errMu.Lock()
	defer errMu.Unlock()
	name := err.Error()
	if old, ok := errNames[name]; ok && old != err {
		panic("error name registered twice: " + name)
	}
	errCodes[err] = errInfo{code: code, name: name}
	errNames[name] = err
}

func init() {
	RegisterError(ErrInsufficientFunds, 6000)
	RegisterError(ErrTransferRejected, 6020)
	RegisterError(ErrArithmeticOverflow, 6021)

	RegisterError(ErrNotFound, 100)
	RegisterError(ErrDecode, 101)
	RegisterError(ErrInvalidParam, 102)
	RegisterError(ErrActionNotSupport, 103)
	RegisterError(ErrExecNotFound, 104)
	RegisterError(ErrNotAllowMemSetKey, 105)
	RegisterError(ErrSign, 106)
	RegisterError(ErrNoSignature, 107)
	RegisterError(ErrTxDup, 108)
	RegisterError(ErrEmptyTx, 109)
	RegisterError(ErrAccountInUse, 110)
	RegisterError(ErrNotFoundInDb, 112)
	RegisterError(ErrExecNameNotAllow, 113)
	RegisterError(ErrAmount, 114)
	RegisterError(ErrSendSameToRecv, 115)
	RegisterError(ErrGenesisInited, 116)
}

// ErrorCode 返回错误链根因的错误码, 未注册的错误返回 -1
func ErrorCode(err error) int32 {
	if err == nil {
		return 0
	}
	errMu.RLock()
	defer errMu.RUnlock()
	if info, ok := errCodes[pkgerr.Cause(err)]; ok {
		return info.code
	}
	return -1
}

// ErrorName 返回错误链根因的名字
func ErrorName(err error) string {
	if err == nil {
		return ""
	}
	errMu.RLock()
	defer errMu.RUnlock()
	if info, ok := errCodes[pkgerr.Cause(err)]; ok {
		return info.name
	}
	return "ErrUnknown"
}

// ParseError 从 rpc 返回的错误信息中还原已注册的错误.
// pkg/errors 的包装把根因放在信息末尾.
func ParseError(msg string) error {
	errMu.RLock()
	defer errMu.RUnlock()
	msg = strings.TrimSpace(msg)
	var found error
	best := 0
	for name, err := range errNames {
		if strings.HasSuffix(msg, name) && len(name) > best {
			found, best = err, len(name)
		}
	}
	if found == nil {
		return errors.New(msg)
	}
	return found
}
