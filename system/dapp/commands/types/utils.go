// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/big"
	"strings"

	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/common/crypto"
	"github.com/33cn/wager/rpc"
	"github.com/33cn/wager/rpc/jsonclient"
	_ "github.com/33cn/wager/system/crypto/ed25519" //register ed25519
	wty "github.com/33cn/wager/system/dapp/wager/types"
	"github.com/33cn/wager/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var coinPrecision = decimal.NewFromInt(int64(types.Coin))

// FormatAmount 最小单位转换为币, 保留 8 位小数
func FormatAmount(amount uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(amount), 0).Div(coinPrecision).StringFixed(8)
}

// ParseAmount 币转换为最小单位, 超过 8 位小数或者不是正数时返回 ErrAmount
func ParseAmount(s string) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.Wrap(types.ErrAmount, err.Error())
	}
	if !d.IsPositive() {
		return 0, types.ErrAmount
	}
	units := d.Mul(coinPrecision)
	if !units.Equal(units.Truncate(0)) {
		return 0, errors.Wrapf(types.ErrAmount, "too many decimals %s", s)
	}
	v := units.BigInt()
	if !v.IsUint64() {
		return 0, types.ErrArithmeticOverflow
	}
	return v.Uint64(), nil
}

// DecodeAccount 格式化账户
func DecodeAccount(acc *types.Account) *AccountResult {
	return &AccountResult{
		Addr:    acc.Addr.String(),
		Balance: FormatAmount(acc.Balance),
		Frozen:  FormatAmount(acc.Frozen),
		Owner:   acc.Owner,
	}
}

// DecodeWager 格式化赌约记录
func DecodeWager(w *wty.Wager) *WagerResult {
	result := &WagerResult{
		WagerID:   w.WagerID,
		Initiator: w.Initiator.String(),
		Arbiter:   w.Arbiter.String(),
		Stake:     FormatAmount(w.Stake),
		TotalPot:  FormatAmount(w.TotalPot),
		Status:    w.Status.String(),
	}
	if w.Counterparty != nil {
		result.Counterparty = w.Counterparty.String()
	}
	return result
}

// NewWagerID 去掉连字符的 uuid, 正好 32 个字符
func NewWagerID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func signer() (crypto.Crypto, error) {
	return crypto.New(crypto.SignNameED25519)
}

// GenKey 生成新的 ed25519 密钥
func GenKey() (*KeyResult, error) {
	c, err := signer()
	if err != nil {
		return nil, err
	}
	priv, err := c.GenKey()
	if err != nil {
		return nil, err
	}
	addr, err := address.PubKeyToAddress(priv.PubKey().Bytes())
	if err != nil {
		return nil, err
	}
	return &KeyResult{
		PrivKey: common.ToHex(priv.Bytes()),
		PubKey:  common.ToHex(priv.PubKey().Bytes()),
		Addr:    addr.String(),
	}, nil
}

// LoadKey 解析 hex 私钥, 同时返回地址
func LoadKey(key string) (crypto.PrivKey, address.Address, error) {
	b, err := common.FromHex(key)
	if err != nil {
		return nil, address.Address{}, errors.Wrap(types.ErrInvalidParam, "private key")
	}
	c, err := signer()
	if err != nil {
		return nil, address.Address{}, err
	}
	priv, err := c.PrivKeyFromBytes(b)
	if err != nil {
		return nil, address.Address{}, err
	}
	addr, err := address.PubKeyToAddress(priv.PubKey().Bytes())
	if err != nil {
		return nil, address.Address{}, err
	}
	return priv, addr, nil
}

// SendTx 签名后发送交易
func SendTx(rpcLaddr string, tx *types.Transaction, privs ...crypto.PrivKey) {
	for _, priv := range privs {
		tx.Sign(priv)
	}
	var res rpc.ReplySendTx
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain33.SendTransaction", &rpc.RawParm{Data: types.EncodeTx(tx)}, &res)
	ctx.Run()
}

// DeriveWagerAddress 由节点计算托管地址, 节点的 namespace 配置决定结果
func DeriveWagerAddress(rpcLaddr, wagerID string) (*wty.ReplyWagerAddress, error) {
	var res wty.ReplyWagerAddress
	ctx := jsonclient.NewRpcCtx(rpcLaddr, "Chain33.DeriveWagerAddress", &wty.ReqWagerID{WagerID: wagerID}, &res)
	if _, err := ctx.RunResult(); err != nil {
		return nil, err
	}
	return &res, nil
}
