// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
coins 是一个货币的exec。内置货币的执行器。

主要提供的操作：
Transfer -> 转移资产
*/

import (
	"sync"

	drivers "github.com/33cn/wager/system/dapp"
	cty "github.com/33cn/wager/system/dapp/coins/types"
)

var driverName = cty.CoinsX

var (
	once sync.Once
	ety  drivers.ExecutorType
)

// Init 注册执行器, 多次调用只注册一次
func Init() {
	once.Do(func() {
		//初始化过程比较重量级，有很多反射, 所以弄成全局的
		ety = drivers.NewExecTypeBase(driverName, func() drivers.ExecutorAction { return &cty.CoinsAction{} }, cty.GetTypeMap(), &Coins{})
		drivers.Register(driverName, newCoins)
	})
}

// GetName 执行器名
func GetName() string {
	return driverName
}

// Coins 执行器
type Coins struct {
	drivers.DriverBase
}

func newCoins() drivers.Driver {
	c := &Coins{}
	c.SetChild(c)
	c.SetExecutorType(ety)
	return c
}

// GetDriverName 驱动名
func (c *Coins) GetDriverName() string {
	return driverName
}
