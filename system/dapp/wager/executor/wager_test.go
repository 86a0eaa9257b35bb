// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor_test

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/33cn/wager/account"
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/common/crypto"
	dbm "github.com/33cn/wager/common/db"
	host "github.com/33cn/wager/executor"
	"github.com/33cn/wager/system/crypto/ed25519"
	wager "github.com/33cn/wager/system/dapp/wager/executor"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fund  = 100 * types.Coin
	stake = 2 * types.Coin
)

type party struct {
	priv crypto.PrivKey
	addr address.Address
}

type testEnv struct {
	t    *testing.T
	exec *host.Executor
	ns   string
	rent uint64
}

func genParty(t *testing.T) *party {
	priv, err := ed25519.Driver{}.GenKey()
	require.NoError(t, err)
	addr, err := address.PubKeyToAddress(priv.PubKey().Bytes())
	require.NoError(t, err)
	return &party{priv: priv, addr: addr}
}

// newEnv 每个参与方在创世时获得 amounts 中对应的余额, 缺省为 fund
func newEnv(t *testing.T, parties []*party, amounts ...uint64) *testEnv {
	memdb, err := dbm.NewGoMemDB("gomemdb", "test", 128)
	require.NoError(t, err)
	cfg := types.DefaultConfig()
	exec := host.New(cfg, memdb)
	var allocs []*types.GenesisAlloc
	for i, p := range parties {
		amount := uint64(fund)
		if i < len(amounts) {
			amount = amounts[i]
		}
		allocs = append(allocs, &types.GenesisAlloc{Addr: p.addr.String(), Amount: amount})
	}
	_, err = exec.GenesisInit(allocs)
	require.NoError(t, err)
	rent, err := account.Rent(wty.MaxRecordSize, cfg.Exec.RentPerByte)
	require.NoError(t, err)
	return &testEnv{t: t, exec: exec, ns: cfg.Exec.WagerNamespace, rent: rent}
}

func (e *testEnv) addr(id string) address.Address {
	addr, _, err := wager.DeriveAddress(e.ns, id)
	require.NoError(e.t, err)
	return addr
}

func (e *testEnv) send(tx *types.Transaction, signers ...*party) error {
	for _, p := range signers {
		tx.Sign(p.priv)
	}
	_, err := e.exec.ExecTx(tx)
	return err
}

func (e *testEnv) create(id string, amount uint64, initiator, arbiter *party) error {
	return e.send(wty.NewCreateTx(&wty.WagerCreate{
		WagerID:   id,
		Addr:      e.addr(id),
		Initiator: initiator.addr,
		Arbiter:   arbiter.addr,
		Stake:     amount,
	}), initiator)
}

func (e *testEnv) join(id string, counterparty *party) error {
	return e.joinStake(id, stake, counterparty)
}

func (e *testEnv) joinStake(id string, amount uint64, counterparty *party) error {
	return e.send(e.joinTx(id, amount, counterparty), counterparty)
}

func (e *testEnv) joinTx(id string, amount uint64, counterparty *party) *types.Transaction {
	return wty.NewJoinTx(&wty.WagerJoin{WagerID: id, Addr: e.addr(id), Counterparty: counterparty.addr, Stake: amount})
}

func (e *testEnv) resolve(id string, winner address.Address, signer *party) error {
	return e.send(wty.NewResolveTx(&wty.WagerResolve{WagerID: id, Addr: e.addr(id), Winner: winner}), signer)
}

func (e *testEnv) cancel(id string, signer *party) error {
	return e.send(wty.NewCancelTx(&wty.WagerCancel{WagerID: id, Addr: e.addr(id)}), signer)
}

func (e *testEnv) fetch(id string) (*wty.Wager, error) {
	params, err := json.Marshal(&wty.ReqWagerID{WagerID: id})
	require.NoError(e.t, err)
	reply, err := e.exec.Query(wty.WagerX, wty.FuncNameGetWager, params)
	if err != nil {
		return nil, err
	}
	return reply.(*wty.Wager), nil
}

func (e *testEnv) balance(addr address.Address) uint64 {
	return e.exec.GetBalance(addr).Balance
}

func TestCreate(t *testing.T) {
	alice, arbiter := genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, arbiter})

	require.NoError(t, e.create("game-1", stake, alice, arbiter))
	w, err := e.fetch("game-1")
	require.NoError(t, err)
	assert.Equal(t, wty.StatusAwaitingCounterparty, w.Status)
	assert.Equal(t, uint64(stake), w.TotalPot)
	assert.Equal(t, uint64(stake), w.Stake)
	assert.Nil(t, w.Counterparty)
	assert.Nil(t, w.Winner)
	assert.Equal(t, alice.addr, w.Initiator)
	assert.Equal(t, arbiter.addr, w.Arbiter)

	_, bump, err := wager.DeriveAddress(e.ns, "game-1")
	require.NoError(t, err)
	assert.Equal(t, bump, w.Disambiguator)

	custody := e.exec.GetBalance(e.addr("game-1"))
	assert.Equal(t, uint64(stake), custody.Balance)
	assert.Equal(t, e.rent, custody.Frozen)
	assert.Equal(t, wty.WagerX, custody.Owner)
	assert.Equal(t, fund-stake-e.rent, e.balance(alice.addr))
}

func TestCreateZeroStake(t *testing.T) {
	alice, arbiter := genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, arbiter})

	assert.Equal(t, wty.ErrInvalidBetAmount, e.create("game-1", 0, alice, arbiter))
	_, err := e.fetch("game-1")
	assert.Equal(t, wty.ErrRecordNotFound, err)
	assert.Equal(t, uint64(fund), e.balance(alice.addr))
	assert.Equal(t, &types.Account{Addr: e.addr("game-1")}, e.exec.GetBalance(e.addr("game-1")))
}

func TestCreateRejects(t *testing.T) {
	alice, bob, arbiter := genParty(t), genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, bob, arbiter})

	require.NoError(t, e.create("game-1", stake, alice, arbiter))
	assert.Equal(t, wty.ErrAlreadyInitialized, e.create("game-1", stake, bob, arbiter))
	assert.Equal(t, uint64(fund), e.balance(bob.addr))

	// 地址属于另一个 wagerId
	err := e.send(wty.NewCreateTx(&wty.WagerCreate{
		WagerID: "game-2", Addr: e.addr("game-3"), Initiator: alice.addr, Arbiter: arbiter.addr, Stake: stake,
	}), alice)
	assert.Equal(t, wty.ErrAddressMismatch, errors.Cause(err))

	// 发起人没有签名
	err = e.send(wty.NewCreateTx(&wty.WagerCreate{
		WagerID: "game-2", Addr: e.addr("game-2"), Initiator: alice.addr, Arbiter: arbiter.addr, Stake: stake,
	}), bob)
	assert.Equal(t, wty.ErrUnauthorizedPlayer, err)

	// 仲裁人没有私钥: 其他托管地址或者本赌约的托管地址
	for _, arb := range []address.Address{e.addr("game-9"), e.addr("game-2")} {
		err = e.send(wty.NewCreateTx(&wty.WagerCreate{
			WagerID: "game-2", Addr: e.addr("game-2"), Initiator: alice.addr, Arbiter: arb, Stake: stake,
		}), alice)
		assert.Equal(t, wty.ErrInvalidArbiter, err)
	}
	_, err = e.fetch("game-2")
	assert.Equal(t, wty.ErrRecordNotFound, err)

	for _, id := range []string{"", strings.Repeat("x", wty.MaxWagerIDLength+1)} {
		err = e.send(wty.NewCreateTx(&wty.WagerCreate{
			WagerID: id, Initiator: alice.addr, Arbiter: arbiter.addr, Stake: stake,
		}), alice)
		assert.Equal(t, wty.ErrInvalidWagerID, err)
	}
	assert.Equal(t, fund-stake-e.rent, e.balance(alice.addr))
}

func TestCreateInsufficientFunds(t *testing.T) {
	alice, arbiter := genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, arbiter}, stake+defaultRent(t)-1)

	// 押金已经扣除之后 stake 不足, 整笔交易回滚
	assert.Equal(t, types.ErrInsufficientFunds, e.create("game-1", stake, alice, arbiter))
	assert.Equal(t, stake+e.rent-1, e.balance(alice.addr))
	_, err := e.fetch("game-1")
	assert.Equal(t, wty.ErrRecordNotFound, err)
	assert.Equal(t, "", e.exec.GetBalance(e.addr("game-1")).Owner)
}

func defaultRent(t *testing.T) uint64 {
	rent, err := account.Rent(wty.MaxRecordSize, types.DefaultConfig().Exec.RentPerByte)
	require.NoError(t, err)
	return rent
}

func TestJoinSelf(t *testing.T) {
	alice, arbiter := genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, arbiter})
	require.NoError(t, e.create("game-1", stake, alice, arbiter))

	assert.Equal(t, wty.ErrCannotPlayAgainstSelf, e.join("game-1", alice))
	w, err := e.fetch("game-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(stake), w.TotalPot)
	assert.Equal(t, wty.StatusAwaitingCounterparty, w.Status)
	assert.Equal(t, fund-stake-e.rent, e.balance(alice.addr))
}

func TestJoin(t *testing.T) {
	alice, bob, carol, arbiter := genParty(t), genParty(t), genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, bob, carol, arbiter})
	require.NoError(t, e.create("game-1", stake, alice, arbiter))

	tx := e.joinTx("game-1", stake, bob)
	require.NoError(t, e.send(tx, bob))
	w, err := e.fetch("game-1")
	require.NoError(t, err)
	assert.Equal(t, wty.StatusActive, w.Status)
	assert.Equal(t, uint64(2*stake), w.TotalPot)
	require.NotNil(t, w.Counterparty)
	assert.Equal(t, bob.addr, *w.Counterparty)
	assert.Equal(t, uint64(fund-stake), e.balance(bob.addr))

	// 重放和重复加入都不会再次扣款
	_, err = e.exec.ExecTx(tx)
	assert.Equal(t, types.ErrTxDup, err)
	assert.Equal(t, wty.ErrWrongStatus, e.join("game-1", bob))
	assert.Equal(t, wty.ErrWrongStatus, e.join("game-1", carol))
	assert.Equal(t, uint64(fund-stake), e.balance(bob.addr))
	assert.Equal(t, uint64(fund), e.balance(carol.addr))
	assert.Equal(t, uint64(2*stake), e.exec.GetBalance(e.addr("game-1")).Balance)
}

func TestJoinRejects(t *testing.T) {
	alice, bob, arbiter := genParty(t), genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, bob, arbiter}, fund, stake-1)
	require.NoError(t, e.create("game-1", stake, alice, arbiter))

	assert.Equal(t, wty.ErrRecordNotFound, e.join("game-2", bob))

	// 对手方没有签名
	err := e.send(e.joinTx("game-1", stake, bob), arbiter)
	assert.Equal(t, wty.ErrUnauthorizedPlayer, err)

	err = e.send(wty.NewJoinTx(&wty.WagerJoin{WagerID: "game-1", Addr: e.addr("game-2"), Counterparty: bob.addr, Stake: stake}), bob)
	assert.Equal(t, wty.ErrAddressMismatch, errors.Cause(err))

	// 签名的金额必须与记录中的 stake 一致
	assert.Equal(t, wty.ErrInvalidBetAmount, e.joinStake("game-1", stake-1, bob))
	assert.Equal(t, wty.ErrInvalidBetAmount, e.joinStake("game-1", stake+1, bob))

	assert.Equal(t, types.ErrInsufficientFunds, e.join("game-1", bob))
	w, err := e.fetch("game-1")
	require.NoError(t, err)
	assert.Equal(t, wty.StatusAwaitingCounterparty, w.Status)
	assert.Equal(t, uint64(stake-1), e.balance(bob.addr))
}

func TestJoinOverflow(t *testing.T) {
	alice, bob, arbiter := genParty(t), genParty(t), genParty(t)
	big := uint64(1) << 63
	e := newEnv(t, []*party{alice, bob, arbiter}, math.MaxUint64, big)
	require.NoError(t, e.create("game-1", big, alice, arbiter))

	assert.Equal(t, types.ErrArithmeticOverflow, e.joinStake("game-1", big, bob))
	assert.Equal(t, big, e.balance(bob.addr))
}

func activeWager(t *testing.T) (*testEnv, *party, *party, *party) {
	alice, bob, arbiter := genParty(t), genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, bob, arbiter})
	require.NoError(t, e.create("game-1", stake, alice, arbiter))
	require.NoError(t, e.join("game-1", bob))
	return e, alice, bob, arbiter
}

func TestResolveUnauthorized(t *testing.T) {
	e, alice, bob, arbiter := activeWager(t)

	assert.Equal(t, wty.ErrUnauthorizedArbiter, e.resolve("game-1", alice.addr, alice))
	assert.Equal(t, wty.ErrUnauthorizedArbiter, e.resolve("game-1", bob.addr, bob))
	// 两个条件同时不满足时先报告仲裁人错误
	assert.Equal(t, wty.ErrUnauthorizedArbiter, e.resolve("game-1", arbiter.addr, bob))
	err := e.send(wty.NewResolveTx(&wty.WagerResolve{WagerID: "game-1", Addr: e.addr("game-2"), Winner: bob.addr}), arbiter)
	assert.Equal(t, wty.ErrAddressMismatch, errors.Cause(err))

	w, err := e.fetch("game-1")
	require.NoError(t, err)
	assert.Equal(t, wty.StatusActive, w.Status)
	assert.Equal(t, uint64(2*stake), w.TotalPot)
	assert.Equal(t, fund-stake-e.rent, e.balance(alice.addr))
	assert.Equal(t, uint64(fund-stake), e.balance(bob.addr))
}

func TestResolveInvalidWinner(t *testing.T) {
	e, _, _, arbiter := activeWager(t)
	outsider := genParty(t)

	assert.Equal(t, wty.ErrInvalidWinner, e.resolve("game-1", arbiter.addr, arbiter))
	assert.Equal(t, wty.ErrInvalidWinner, e.resolve("game-1", outsider.addr, arbiter))
	_, err := e.fetch("game-1")
	assert.NoError(t, err)
}

func TestResolveNotActive(t *testing.T) {
	alice, arbiter := genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, arbiter})
	require.NoError(t, e.create("game-1", stake, alice, arbiter))

	assert.Equal(t, wty.ErrWrongStatus, e.resolve("game-1", alice.addr, arbiter))
}

func TestResolve(t *testing.T) {
	e, alice, bob, arbiter := activeWager(t)

	require.NoError(t, e.resolve("game-1", bob.addr, arbiter))
	assert.Equal(t, uint64(fund+stake), e.balance(bob.addr))
	assert.Equal(t, fund-stake-e.rent, e.balance(alice.addr))
	// 托管账户的押金退给仲裁人
	assert.Equal(t, fund+e.rent, e.balance(arbiter.addr))

	_, err := e.fetch("game-1")
	assert.Equal(t, wty.ErrRecordNotFound, err)
	assert.Equal(t, &types.Account{Addr: e.addr("game-1")}, e.exec.GetBalance(e.addr("game-1")))
}

func TestCancelAwaiting(t *testing.T) {
	alice, arbiter := genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, arbiter})
	require.NoError(t, e.create("game-1", stake, alice, arbiter))

	assert.Equal(t, wty.ErrUnauthorizedArbiter, e.cancel("game-1", alice))
	err := e.send(wty.NewCancelTx(&wty.WagerCancel{WagerID: "game-1", Addr: e.addr("game-2")}), arbiter)
	assert.Equal(t, wty.ErrAddressMismatch, errors.Cause(err))
	assert.Equal(t, fund-stake-e.rent, e.balance(alice.addr))
	require.NoError(t, e.cancel("game-1", arbiter))
	assert.Equal(t, fund-e.rent, e.balance(alice.addr))
	assert.Equal(t, fund+e.rent, e.balance(arbiter.addr))
	_, err = e.fetch("game-1")
	assert.Equal(t, wty.ErrRecordNotFound, err)
}

func TestCancelActive(t *testing.T) {
	e, alice, bob, arbiter := activeWager(t)

	require.NoError(t, e.cancel("game-1", arbiter))
	assert.Equal(t, fund-e.rent, e.balance(alice.addr))
	assert.Equal(t, uint64(fund), e.balance(bob.addr))
	_, err := e.fetch("game-1")
	assert.Equal(t, wty.ErrRecordNotFound, err)
	assert.Equal(t, uint64(0), e.exec.GetBalance(e.addr("game-1")).Balance)
}

func TestTerminalIsFinal(t *testing.T) {
	e, alice, bob, arbiter := activeWager(t)
	require.NoError(t, e.resolve("game-1", alice.addr, arbiter))
	aliceBalance := e.balance(alice.addr)

	assert.Equal(t, wty.ErrRecordNotFound, e.join("game-1", bob))
	assert.Equal(t, wty.ErrRecordNotFound, e.resolve("game-1", alice.addr, arbiter))
	assert.Equal(t, wty.ErrRecordNotFound, e.cancel("game-1", arbiter))
	assert.Equal(t, aliceBalance, e.balance(alice.addr))

	// 同一个 wagerId 可以重新创建
	require.NoError(t, e.create("game-1", stake, bob, arbiter))
	w, err := e.fetch("game-1")
	require.NoError(t, err)
	assert.Equal(t, bob.addr, w.Initiator)
}

// 失败过的加入交易不能用于之后重新创建的同名赌约
func TestFailedJoinReplay(t *testing.T) {
	alice, bob, carol, arbiter := genParty(t), genParty(t), genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, bob, carol, arbiter})
	require.NoError(t, e.create("g", stake, alice, arbiter))
	require.NoError(t, e.join("g", carol))

	late := e.joinTx("g", stake, bob)
	assert.Equal(t, wty.ErrWrongStatus, e.send(late, bob))
	require.NoError(t, e.cancel("g", arbiter))

	// alice 用相同的 id 和 stake 重新创建, 自己担任仲裁人
	require.NoError(t, e.create("g", stake, alice, alice))
	_, err := e.exec.ExecTx(late)
	assert.Equal(t, types.ErrTxDup, err)
	assert.Equal(t, uint64(fund), e.balance(bob.addr))

	w, err := e.fetch("g")
	require.NoError(t, err)
	assert.Equal(t, wty.StatusAwaitingCounterparty, w.Status)
	assert.Nil(t, w.Counterparty)
}

func TestListWagers(t *testing.T) {
	alice, bob, arbiter := genParty(t), genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, bob, arbiter})
	require.NoError(t, e.create("game-1", stake, alice, arbiter))
	require.NoError(t, e.create("game-2", stake, bob, arbiter))
	require.NoError(t, e.join("game-1", bob))

	list := func(p *party) []string {
		params, err := json.Marshal(&wty.ReqWagerParty{Addr: p.addr.String()})
		require.NoError(t, err)
		reply, err := e.exec.Query(wty.WagerX, wty.FuncNameListWagers, params)
		require.NoError(t, err)
		var ids []string
		for _, w := range reply.(*wty.ReplyWagerList).Wagers {
			ids = append(ids, w.WagerID)
		}
		return ids
	}
	assert.Equal(t, []string{"game-1"}, list(alice))
	assert.Equal(t, []string{"game-1", "game-2"}, list(bob))
	assert.Equal(t, []string{"game-1", "game-2"}, list(arbiter))

	require.NoError(t, e.cancel("game-1", arbiter))
	assert.Nil(t, list(alice))
	assert.Equal(t, []string{"game-2"}, list(bob))
	assert.Equal(t, []string{"game-2"}, list(arbiter))
}

func TestQueryDeriveAddress(t *testing.T) {
	e := newEnv(t, nil)
	params, err := json.Marshal(&wty.ReqWagerID{WagerID: "game-1"})
	require.NoError(t, err)
	reply, err := e.exec.Query(wty.WagerX, wty.FuncNameDeriveAddress, params)
	require.NoError(t, err)
	r := reply.(*wty.ReplyWagerAddress)
	assert.Equal(t, e.addr("game-1"), r.Addr)
	assert.False(t, address.IsOnCurve(r.Addr[:]))

	params, err = json.Marshal(&wty.ReqWagerID{})
	require.NoError(t, err)
	_, err = e.exec.Query(wty.WagerX, wty.FuncNameDeriveAddress, params)
	assert.Equal(t, wty.ErrInvalidWagerID, err)
}

func TestDeriveVerifyRoundTrip(t *testing.T) {
	d := address.NewDeriver(wty.WagerX)
	for _, id := range []string{"a", "game-1", strings.Repeat("z", wty.MaxWagerIDLength)} {
		addr, bump, err := wager.DeriveAddress("BOARDOVERSE", id)
		require.NoError(t, err)
		assert.True(t, d.Verify(addr, "BOARDOVERSE", id, bump))
		assert.False(t, d.Verify(addr, "BOARDOVERSE", id+"x", bump))
		assert.False(t, d.Verify(addr, "OTHER", id, bump))
		mutated := addr
		mutated[0] ^= 1
		assert.False(t, d.Verify(mutated, "BOARDOVERSE", id, bump))
	}
}

func TestReceiptLogs(t *testing.T) {
	alice, arbiter := genParty(t), genParty(t)
	e := newEnv(t, []*party{alice, arbiter})
	tx := wty.NewCreateTx(&wty.WagerCreate{
		WagerID: "game-1", Addr: e.addr("game-1"), Initiator: alice.addr, Arbiter: arbiter.addr, Stake: stake,
	})
	tx.Sign(alice.priv)
	receipt, err := e.exec.ExecTx(tx)
	require.NoError(t, err)

	last := receipt.Logs[len(receipt.Logs)-1]
	require.Equal(t, uint32(wty.TyLogWagerCreate), last.Ty)
	var r wty.ReceiptWager
	require.NoError(t, types.Decode(last.Log, &r))
	assert.Equal(t, e.addr("game-1"), r.Addr)
	assert.Equal(t, wty.StatusNone, r.PrevStatus)
	assert.Equal(t, wty.StatusAwaitingCounterparty, r.Wager.Status)

	result := types.DecodeReceipt(receipt)
	assert.Equal(t, "ExecOk", result.TyStr)
	assert.Contains(t, string(result.Logs[len(result.Logs)-1].Log), `"status":"AwaitingCounterparty"`)
}
