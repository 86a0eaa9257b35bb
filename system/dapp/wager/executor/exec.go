// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
)

// Exec_Create 创建
func (w *Wager) Exec_Create(payload *wty.WagerCreate, tx *types.Transaction, index int) (*types.Receipt, error) {
	return NewAction(w, tx).Create(payload)
}

// Exec_Join 加入
func (w *Wager) Exec_Join(payload *wty.WagerJoin, tx *types.Transaction, index int) (*types.Receipt, error) {
	return NewAction(w, tx).Join(payload)
}

// Exec_Resolve 裁决
func (w *Wager) Exec_Resolve(payload *wty.WagerResolve, tx *types.Transaction, index int) (*types.Receipt, error) {
	return NewAction(w, tx).Resolve(payload)
}

// Exec_Cancel 取消
func (w *Wager) Exec_Cancel(payload *wty.WagerCancel, tx *types.Transaction, index int) (*types.Receipt, error) {
	return NewAction(w, tx).Cancel(payload)
}
