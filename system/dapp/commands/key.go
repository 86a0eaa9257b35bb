// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"

	"github.com/33cn/wager/rpc/jsonclient"
	commandtypes "github.com/33cn/wager/system/dapp/commands/types"
	"github.com/spf13/cobra"
)

// KeyCmd 本地密钥工具, 不需要连接节点
func KeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Key tools",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		genKeyCmd(),
		keyAddrCmd(),
	)
	return cmd
}

func genKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen",
		Short: "Generate a new ed25519 private key",
		Run: func(cmd *cobra.Command, args []string) {
			key, err := commandtypes.GenKey()
			if err != nil {
				jsonclient.PrintError(err)
				return
			}
			printJSON(key)
		},
	}
}

func keyAddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Get address of a private key",
		Run: func(cmd *cobra.Command, args []string) {
			key, _ := cmd.Flags().GetString("key")
			_, addr, err := commandtypes.LoadKey(key)
			if err != nil {
				jsonclient.PrintError(err)
				return
			}
			fmt.Println(addr.String())
		},
	}
	cmd.Flags().StringP("key", "k", "", "private key (hex)")
	cmd.MarkFlagRequired("key")
	return cmd
}

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		jsonclient.PrintError(err)
		return
	}
	fmt.Println(string(data))
}
