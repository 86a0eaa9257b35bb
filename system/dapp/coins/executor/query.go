// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/wager/common/address"
	cty "github.com/33cn/wager/system/dapp/coins/types"
)

// Query_GetBalance 账户余额, 托管账户同样适用
func (c *Coins) Query_GetBalance(in *cty.ReqBalance) (interface{}, error) {
	addr, err := address.NewAddrFromString(in.Addr)
	if err != nil {
		return nil, err
	}
	return c.GetCoinsAccount().LoadAccount(addr), nil
}
