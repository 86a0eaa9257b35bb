// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

//database opeartion for executor wager
import (
	"github.com/33cn/wager/account"
	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	dbm "github.com/33cn/wager/common/db"
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"
)

// Key 赌约记录在状态数据库中的 key, 按托管地址索引
func Key(addr address.Address) (key []byte) {
	key = append(key, []byte(types.StatePrefix+wty.WagerX+"-")...)
	key = append(key, []byte(addr.String())...)
	return key
}

// Action 一笔 wager 交易的执行上下文
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	txhash       string
	signers      types.Signers
	namespace    string
	rentPerByte  uint64
}

// NewAction new action
func NewAction(w *Wager, tx *types.Transaction) *Action {
	cfg := w.GetExecConfig()
	return &Action{
		coinsAccount: w.GetCoinsAccount(),
		db:           w.GetStateDB(),
		txhash:       common.ToHex(tx.Hash()),
		signers:      w.GetSigners(),
		namespace:    cfg.WagerNamespace,
		rentPerByte:  cfg.RentPerByte,
	}
}

func isNotFound(err error) bool {
	err = errors.Cause(err)
	return err == types.ErrNotFound || err == dbm.ErrNotFoundInDb
}

func readWager(db dbm.KV, addr address.Address) (*wty.Wager, error) {
	data, err := db.Get(Key(addr))
	if err != nil {
		if isNotFound(err) {
			return nil, wty.ErrRecordNotFound
		}
		wlog.Error("readWager", "addr", addr, "err", err)
		return nil, err
	}
	var w wty.Wager
	if err := types.Decode(data, &w); err != nil {
		wlog.Error("readWager", "addr", addr, "err", err)
		return nil, err
	}
	return &w, nil
}

func (action *Action) saveWager(addr address.Address, w *wty.Wager) []*types.KeyValue {
	value := types.Encode(w)
	action.db.Set(Key(addr), value)
	return []*types.KeyValue{{Key: Key(addr), Value: value}}
}

func (action *Action) deleteWager(addr address.Address) []*types.KeyValue {
	action.db.Set(Key(addr), nil)
	return []*types.KeyValue{{Key: Key(addr)}}
}

func (action *Action) receiptLog(ty uint32, addr address.Address, prev wty.Status, w *wty.Wager) *types.ReceiptLog {
	r := &wty.ReceiptWager{Addr: addr, PrevStatus: prev, Wager: w}
	return &types.ReceiptLog{Ty: ty, Log: types.Encode(r)}
}

// verifyAddress 客户端提供的地址必须等于 (namespace, id) 的派生地址
func (action *Action) verifyAddress(id string, addr address.Address) (uint8, error) {
	expect, bump, err := DeriveAddress(action.namespace, id)
	if err != nil {
		return 0, err
	}
	if expect != addr {
		return 0, errors.Wrapf(wty.ErrAddressMismatch, "wager %s expect %s", id, expect)
	}
	return bump, nil
}

// loadWager 校验地址后读取记录, 记录中的 bump 也要通过校验
func (action *Action) loadWager(id string, addr address.Address) (*wty.Wager, error) {
	if _, err := action.verifyAddress(id, addr); err != nil {
		return nil, err
	}
	w, err := readWager(action.db, addr)
	if err != nil {
		return nil, err
	}
	if w.WagerID != id || !deriver.Verify(addr, action.namespace, w.WagerID, w.Disambiguator) {
		return nil, wty.ErrAddressMismatch
	}
	return w, nil
}

// Create 创建赌约, 发起人支付托管账户的押金并存入 stake
func (action *Action) Create(create *wty.WagerCreate) (*types.Receipt, error) {
	if create.Stake == 0 {
		return nil, wty.ErrInvalidBetAmount
	}
	bump, err := action.verifyAddress(create.WagerID, create.Addr)
	if err != nil {
		wlog.Error("WagerCreate", "id", create.WagerID, "err", err)
		return nil, err
	}
	if _, err := readWager(action.db, create.Addr); err == nil {
		return nil, wty.ErrAlreadyInitialized
	} else if err != wty.ErrRecordNotFound {
		return nil, err
	}
	if !action.signers.Contains(create.Initiator) {
		return nil, wty.ErrUnauthorizedPlayer
	}
	// 仲裁人必须是持有私钥的账户, 否则赌约无法结束
	if !address.IsOnCurve(create.Arbiter[:]) || create.Arbiter == create.Addr {
		wlog.Error("WagerCreate", "id", create.WagerID, "arbiter", create.Arbiter, "err", wty.ErrInvalidArbiter)
		return nil, wty.ErrInvalidArbiter
	}
	rent, err := account.Rent(wty.MaxRecordSize, action.rentPerByte)
	if err != nil {
		return nil, err
	}
	var logs []*types.ReceiptLog
	var kv []*types.KeyValue

	receipt, err := action.coinsAccount.Allocate(create.Initiator, create.Addr, wty.WagerX, rent)
	if err != nil {
		wlog.Error("WagerCreate.Allocate", "id", create.WagerID, "addr", create.Addr, "rent", rent, "err", err)
		if errors.Cause(err) == types.ErrAccountInUse {
			return nil, wty.ErrAlreadyInitialized
		}
		return nil, err
	}
	logs = append(logs, receipt.Logs...)
	kv = append(kv, receipt.KV...)

	receipt, err = action.coinsAccount.Deposit(create.Initiator, create.Addr, wty.WagerX, create.Stake)
	if err != nil {
		wlog.Error("WagerCreate.Deposit", "id", create.WagerID, "initiator", create.Initiator, "stake", create.Stake, "err", err)
		return nil, err
	}
	logs = append(logs, receipt.Logs...)
	kv = append(kv, receipt.KV...)

	w := &wty.Wager{
		WagerID:       create.WagerID,
		Initiator:     create.Initiator,
		Arbiter:       create.Arbiter,
		Stake:         create.Stake,
		TotalPot:      create.Stake,
		Status:        wty.StatusAwaitingCounterparty,
		Disambiguator: bump,
	}
	kv = append(kv, action.saveWager(create.Addr, w)...)
	logs = append(logs, action.receiptLog(wty.TyLogWagerCreate, create.Addr, wty.StatusNone, w))
	wlog.Debug("WagerCreate", "id", w.WagerID, "addr", create.Addr, "tx", action.txhash)
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}

// Join 对手方加入并存入相同的 stake
func (action *Action) Join(join *wty.WagerJoin) (*types.Receipt, error) {
	w, err := action.loadWager(join.WagerID, join.Addr)
	if err != nil {
		wlog.Error("WagerJoin", "id", join.WagerID, "err", err)
		return nil, err
	}
	if !action.signers.Contains(join.Counterparty) {
		return nil, wty.ErrUnauthorizedPlayer
	}
	if w.Status != wty.StatusAwaitingCounterparty {
		wlog.Error("WagerJoin", "id", join.WagerID, "status", w.Status, "err", wty.ErrWrongStatus)
		return nil, wty.ErrWrongStatus
	}
	if join.Counterparty == w.Initiator {
		return nil, wty.ErrCannotPlayAgainstSelf
	}
	if join.Stake != w.Stake {
		wlog.Error("WagerJoin", "id", join.WagerID, "stake", join.Stake, "expect", w.Stake, "err", wty.ErrInvalidBetAmount)
		return nil, wty.ErrInvalidBetAmount
	}
	pot, overflow := math.SafeAdd(w.TotalPot, w.Stake)
	if overflow {
		return nil, types.ErrArithmeticOverflow
	}
	receipt, err := action.coinsAccount.Deposit(join.Counterparty, join.Addr, wty.WagerX, w.Stake)
	if err != nil {
		wlog.Error("WagerJoin.Deposit", "id", join.WagerID, "counterparty", join.Counterparty, "stake", w.Stake, "err", err)
		return nil, err
	}
	counterparty := join.Counterparty
	w.Counterparty = &counterparty
	w.TotalPot = pot
	w.Status = wty.StatusActive

	logs := receipt.Logs
	kv := receipt.KV
	kv = append(kv, action.saveWager(join.Addr, w)...)
	logs = append(logs, action.receiptLog(wty.TyLogWagerJoin, join.Addr, wty.StatusAwaitingCounterparty, w))
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}

// checkArbiter 只有记录中的仲裁人可以结束赌约
func (action *Action) checkArbiter(w *wty.Wager) error {
	if !action.signers.Contains(w.Arbiter) {
		return wty.ErrUnauthorizedArbiter
	}
	return nil
}

// Resolve 奖池全部支付给赢家, 关闭托管账户, 押金退给仲裁人.
// 检查顺序: 地址, 记录, 仲裁人, 状态, 赢家
func (action *Action) Resolve(resolve *wty.WagerResolve) (*types.Receipt, error) {
	w, err := action.loadWager(resolve.WagerID, resolve.Addr)
	if err != nil {
		wlog.Error("WagerResolve", "id", resolve.WagerID, "err", err)
		return nil, err
	}
	if err := action.checkArbiter(w); err != nil {
		return nil, err
	}
	if w.Status != wty.StatusActive {
		return nil, wty.ErrWrongStatus
	}
	if !w.IsParty(resolve.Winner) {
		return nil, wty.ErrInvalidWinner
	}
	var logs []*types.ReceiptLog
	var kv []*types.KeyValue

	receipt, err := action.coinsAccount.Payout(resolve.Addr, resolve.Winner, wty.WagerX, w.TotalPot)
	if err != nil {
		wlog.Error("WagerResolve.Payout", "id", resolve.WagerID, "winner", resolve.Winner, "pot", w.TotalPot, "err", err)
		return nil, err
	}
	logs = append(logs, receipt.Logs...)
	kv = append(kv, receipt.KV...)

	receipt, err = action.close(resolve.Addr, w)
	if err != nil {
		return nil, err
	}
	logs = append(logs, receipt.Logs...)
	kv = append(kv, receipt.KV...)

	prev := w.Status
	winner := resolve.Winner
	w.Winner = &winner
	w.TotalPot = 0
	w.Status = wty.StatusResolved
	logs = append(logs, action.receiptLog(wty.TyLogWagerResolve, resolve.Addr, prev, w))
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}

// Cancel 退回各自的 stake, 关闭托管账户
func (action *Action) Cancel(cancel *wty.WagerCancel) (*types.Receipt, error) {
	w, err := action.loadWager(cancel.WagerID, cancel.Addr)
	if err != nil {
		wlog.Error("WagerCancel", "id", cancel.WagerID, "err", err)
		return nil, err
	}
	if err := action.checkArbiter(w); err != nil {
		return nil, err
	}
	refunds := []address.Address{w.Initiator}
	switch w.Status {
	case wty.StatusAwaitingCounterparty:
	case wty.StatusActive:
		if w.Counterparty == nil {
			return nil, wty.ErrWrongStatus
		}
		refunds = append(refunds, *w.Counterparty)
	default:
		return nil, wty.ErrWrongStatus
	}
	var logs []*types.ReceiptLog
	var kv []*types.KeyValue
	for _, to := range refunds {
		receipt, err := action.coinsAccount.Payout(cancel.Addr, to, wty.WagerX, w.Stake)
		if err != nil {
			wlog.Error("WagerCancel.Payout", "id", cancel.WagerID, "to", to, "stake", w.Stake, "err", err)
			return nil, err
		}
		logs = append(logs, receipt.Logs...)
		kv = append(kv, receipt.KV...)
	}
	receipt, err := action.close(cancel.Addr, w)
	if err != nil {
		return nil, err
	}
	logs = append(logs, receipt.Logs...)
	kv = append(kv, receipt.KV...)

	prev := w.Status
	w.TotalPot = 0
	w.Status = wty.StatusCancelled
	logs = append(logs, action.receiptLog(wty.TyLogWagerCancel, cancel.Addr, prev, w))
	return &types.Receipt{Ty: types.ExecOk, KV: kv, Logs: logs}, nil
}

// close 托管账户押金退给仲裁人, 删除记录
func (action *Action) close(addr address.Address, w *wty.Wager) (*types.Receipt, error) {
	receipt, err := action.coinsAccount.CloseAndReclaim(addr, wty.WagerX, w.Arbiter)
	if err != nil {
		wlog.Error("CloseAndReclaim", "id", w.WagerID, "addr", addr, "err", err)
		return nil, err
	}
	receipt.KV = append(receipt.KV, action.deleteWager(addr)...)
	return receipt, nil
}
