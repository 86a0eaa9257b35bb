// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	cty "github.com/33cn/wager/system/dapp/coins/types"
	"github.com/33cn/wager/types"
)

// Exec_Transfer 从第一个签名者转出
func (c *Coins) Exec_Transfer(transfer *cty.CoinsTransfer, tx *types.Transaction, index int) (*types.Receipt, error) {
	if len(c.GetSigners()) == 0 {
		return nil, types.ErrNoSignature
	}
	from := c.GetSigners()[0]
	return c.GetCoinsAccount().Transfer(from, transfer.To, transfer.Amount)
}
