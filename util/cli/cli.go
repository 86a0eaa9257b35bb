// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli 节点以及命令行程序的入口
package cli

import (
	"fmt"
	"os"

	clog "github.com/33cn/wager/common/log"
	"github.com/33cn/wager/pluginmgr"
	_ "github.com/33cn/wager/system" //register dapps
	"github.com/33cn/wager/system/dapp/commands"
	"github.com/spf13/cobra"
)

// DefaultRPCAddr 命令行默认连接的节点
const DefaultRPCAddr = "http://localhost:8801"

// NewRootCmd 命令行根命令, 各 dapp 的命令通过 pluginmgr 添加
func NewRootCmd(name, rpcAddr string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   name + "-cli",
		Short: name + " client tools",
	}
	rootCmd.PersistentFlags().String("rpc_laddr", rpcAddr, "http url")
	rootCmd.AddCommand(
		commands.AccountCmd(),
		commands.KeyCmd(),
		commands.TxCmd(),
		commands.VersionCmd(),
	)
	pluginmgr.AddCmd(rootCmd)
	return rootCmd
}

//Run :
func Run(name, rpcAddr string) {
	clog.SetLogLevel("error")
	if rpcAddr == "" {
		rpcAddr = DefaultRPCAddr
	}
	if err := NewRootCmd(name, rpcAddr).Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
