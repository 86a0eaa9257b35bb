// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/rpc/jsonclient"
	commandtypes "github.com/33cn/wager/system/dapp/commands/types"
	cty "github.com/33cn/wager/system/dapp/coins/types"
	"github.com/33cn/wager/types"
	"github.com/spf13/cobra"
)

// AccountCmd account command
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		GetBalanceCmd(),
		TransferCmd(),
	)
	return cmd
}

// GetBalanceCmd get balance of an address, custody addresses included
func GetBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of a account address",
		Run:   balance,
	}
	cmd.Flags().StringP("addr", "a", "", "account address")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func balance(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addr, _ := cmd.Flags().GetString("addr")
	if err := address.CheckAddress(addr); err != nil {
		fmt.Fprintln(os.Stderr, types.ErrInvalidParam)
		return
	}
	var res types.Account
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain33.GetBalance", &cty.ReqBalance{Addr: addr}, &res)
	ctx.SetResultCb(parseBalance)
	ctx.Run()
}

func parseBalance(arg interface{}) (interface{}, error) {
	return commandtypes.DecodeAccount(arg.(*types.Account)), nil
}

// TransferCmd 普通转账
func TransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send coins to another account",
		Run:   transfer,
	}
	cmd.Flags().StringP("key", "k", "", "private key of sender (hex)")
	cmd.MarkFlagRequired("key")
	cmd.Flags().StringP("to", "t", "", "receiver account address")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringP("amount", "a", "", "transfer amount, in coins")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().StringP("note", "n", "", "transaction note info")
	return cmd
}

func transfer(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	key, _ := cmd.Flags().GetString("key")
	to, _ := cmd.Flags().GetString("to")
	amountStr, _ := cmd.Flags().GetString("amount")
	note, _ := cmd.Flags().GetString("note")

	priv, _, err := commandtypes.LoadKey(key)
	if err != nil {
		jsonclient.PrintError(err)
		return
	}
	toAddr, err := address.NewAddrFromString(to)
	if err != nil {
		jsonclient.PrintError(err)
		return
	}
	amount, err := commandtypes.ParseAmount(amountStr)
	if err != nil {
		jsonclient.PrintError(err)
		return
	}
	commandtypes.SendTx(rpcLaddr, cty.NewTransferTx(toAddr, amount, note), priv)
}
