// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 系统级dapp相关命令包
package commands

import (
	"github.com/33cn/wager/rpc"
	"github.com/33cn/wager/rpc/jsonclient"
	"github.com/spf13/cobra"
)

// VersionCmd version command
func VersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get node version",
		Run:   version,
	}
	return cmd
}

func version(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	var res rpc.VersionInfo
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain33.Version", &rpc.ReqNil{}, &res)
	ctx.Run()
}
