// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands wager 命令行
package commands

import (
	"fmt"
	"os"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/rpc/jsonclient"
	commandtypes "github.com/33cn/wager/system/dapp/commands/types"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/spf13/cobra"
)

// Cmd wager 命令
func Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wager",
		Short: "Escrow wager management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		WagerCreateCmd(),
		WagerJoinCmd(),
		WagerResolveCmd(),
		WagerCancelCmd(),
		WagerShowCmd(),
		WagerListCmd(),
		WagerAddrCmd(),
	)
	return cmd
}

func addKeyFlag(cmd *cobra.Command, who string) {
	cmd.Flags().StringP("key", "k", "", "private key of the "+who+" (hex)")
	cmd.MarkFlagRequired("key")
}

func addWagerIDFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("wagerId", "g", "", "wager id")
	cmd.MarkFlagRequired("wagerId")
}

// prepare 解析私钥以及向节点查询托管地址
func prepare(cmd *cobra.Command) (rpcLaddr string, key *signer, derived *wty.ReplyWagerAddress, ok bool) {
	rpcLaddr, _ = cmd.Flags().GetString("rpc_laddr")
	hexKey, _ := cmd.Flags().GetString("key")
	wagerID, _ := cmd.Flags().GetString("wagerId")
	priv, addr, err := commandtypes.LoadKey(hexKey)
	if err != nil {
		jsonclient.PrintError(err)
		return "", nil, nil, false
	}
	derived, err = commandtypes.DeriveWagerAddress(rpcLaddr, wagerID)
	if err != nil {
		jsonclient.PrintError(err)
		return "", nil, nil, false
	}
	return rpcLaddr, &signer{priv: priv, addr: addr}, derived, true
}

// WagerCreateCmd 创建赌约
func WagerCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a wager and deposit the stake",
		Run:   wagerCreate,
	}
	addKeyFlag(cmd, "initiator")
	cmd.Flags().StringP("wagerId", "g", "", "wager id, generated when empty")
	cmd.Flags().StringP("arbiter", "r", "", "arbiter address")
	cmd.MarkFlagRequired("arbiter")
	cmd.Flags().StringP("stake", "s", "", "stake of each party, in coins")
	cmd.MarkFlagRequired("stake")
	return cmd
}

func wagerCreate(cmd *cobra.Command, args []string) {
	wagerID, _ := cmd.Flags().GetString("wagerId")
	if wagerID == "" {
		wagerID = commandtypes.NewWagerID()
		cmd.Flags().Set("wagerId", wagerID)
		fmt.Fprintln(os.Stderr, "wagerId:", wagerID)
	}
	arbiterStr, _ := cmd.Flags().GetString("arbiter")
	stakeStr, _ := cmd.Flags().GetString("stake")
	arbiter, err := address.NewAddrFromString(arbiterStr)
	if err != nil {
		jsonclient.PrintError(err)
		return
	}
	stake, err := commandtypes.ParseAmount(stakeStr)
	if err != nil {
		jsonclient.PrintError(err)
		return
	}
	rpcLaddr, key, derived, ok := prepare(cmd)
	if !ok {
		return
	}
	tx := wty.NewCreateTx(&wty.WagerCreate{
		WagerID:   wagerID,
		Addr:      derived.Addr,
		Initiator: key.addr,
		Arbiter:   arbiter,
		Stake:     stake,
	})
	commandtypes.SendTx(rpcLaddr, tx, key.priv)
}

// WagerJoinCmd 加入赌约
func WagerJoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Join a waiting wager with an equal stake",
		Run:   wagerJoin,
	}
	addKeyFlag(cmd, "counterparty")
	addWagerIDFlag(cmd)
	cmd.Flags().StringP("stake", "s", "", "stake of the wager, in coins")
	cmd.MarkFlagRequired("stake")
	return cmd
}

func wagerJoin(cmd *cobra.Command, args []string) {
	stakeStr, _ := cmd.Flags().GetString("stake")
	stake, err := commandtypes.ParseAmount(stakeStr)
	if err != nil {
		jsonclient.PrintError(err)
		return
	}
	rpcLaddr, key, derived, ok := prepare(cmd)
	if !ok {
		return
	}
	tx := wty.NewJoinTx(&wty.WagerJoin{
		WagerID:      derived.WagerID,
		Addr:         derived.Addr,
		Counterparty: key.addr,
		Stake:        stake,
	})
	commandtypes.SendTx(rpcLaddr, tx, key.priv)
}

// WagerResolveCmd 仲裁人宣布赢家
func WagerResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Pay the whole pot to the winner",
		Run:   wagerResolve,
	}
	addKeyFlag(cmd, "arbiter")
	addWagerIDFlag(cmd)
	cmd.Flags().StringP("winner", "w", "", "winner address")
	cmd.MarkFlagRequired("winner")
	return cmd
}

func wagerResolve(cmd *cobra.Command, args []string) {
	winnerStr, _ := cmd.Flags().GetString("winner")
	winner, err := address.NewAddrFromString(winnerStr)
	if err != nil {
		jsonclient.PrintError(err)
		return
	}
	rpcLaddr, key, derived, ok := prepare(cmd)
	if !ok {
		return
	}
	tx := wty.NewResolveTx(&wty.WagerResolve{
		WagerID: derived.WagerID,
		Addr:    derived.Addr,
		Winner:  winner,
	})
	commandtypes.SendTx(rpcLaddr, tx, key.priv)
}

// WagerCancelCmd 仲裁人取消赌约
func WagerCancelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a wager and refund the deposits",
		Run:   wagerCancel,
	}
	addKeyFlag(cmd, "arbiter")
	addWagerIDFlag(cmd)
	return cmd
}

func wagerCancel(cmd *cobra.Command, args []string) {
	rpcLaddr, key, derived, ok := prepare(cmd)
	if !ok {
		return
	}
	tx := wty.NewCancelTx(&wty.WagerCancel{
		WagerID: derived.WagerID,
		Addr:    derived.Addr,
	})
	commandtypes.SendTx(rpcLaddr, tx, key.priv)
}

// WagerShowCmd 查询赌约
func WagerShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a live wager",
		Run:   wagerShow,
	}
	addWagerIDFlag(cmd)
	return cmd
}

func wagerShow(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	wagerID, _ := cmd.Flags().GetString("wagerId")
	var res wty.Wager
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain33.GetWager", &wty.ReqWagerID{WagerID: wagerID}, &res)
	ctx.SetResultCb(func(arg interface{}) (interface{}, error) {
		return commandtypes.DecodeWager(arg.(*wty.Wager)), nil
	})
	ctx.Run()
}

// WagerListCmd 参与方或仲裁人的赌约
func WagerListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List live wagers of a party or arbiter",
		Run:   wagerList,
	}
	cmd.Flags().StringP("addr", "a", "", "party or arbiter address")
	cmd.MarkFlagRequired("addr")
	return cmd
}

func wagerList(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addr, _ := cmd.Flags().GetString("addr")
	var res wty.ReplyWagerList
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain33.ListWagers", &wty.ReqWagerParty{Addr: addr}, &res)
	ctx.SetResultCb(func(arg interface{}) (interface{}, error) {
		list := arg.(*wty.ReplyWagerList)
		result := make([]*commandtypes.WagerResult, 0, len(list.Wagers))
		for _, w := range list.Wagers {
			result = append(result, commandtypes.DecodeWager(w))
		}
		return result, nil
	})
	ctx.Run()
}

// WagerAddrCmd 托管地址
func WagerAddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Get the custody address of a wager id",
		Run:   wagerAddr,
	}
	addWagerIDFlag(cmd)
	return cmd
}

func wagerAddr(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	wagerID, _ := cmd.Flags().GetString("wagerId")
	var res wty.ReplyWagerAddress
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain33.DeriveWagerAddress", &wty.ReqWagerID{WagerID: wagerID}, &res)
	ctx.Run()
}
