// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coins 系统币 dapp, 转账命令在 system/dapp/commands 中
package coins

import (
	"github.com/33cn/wager/pluginmgr"
	"github.com/33cn/wager/system/dapp/coins/executor"
	cty "github.com/33cn/wager/system/dapp/coins/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     cty.CoinsX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
	})
}
