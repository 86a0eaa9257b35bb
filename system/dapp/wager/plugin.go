// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wager 托管赌约 dapp
package wager

import (
	"github.com/33cn/wager/pluginmgr"
	"github.com/33cn/wager/system/dapp/wager/commands"
	"github.com/33cn/wager/system/dapp/wager/executor"
	wty "github.com/33cn/wager/system/dapp/wager/types"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     wty.WagerX,
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.Cmd,
	})
}
