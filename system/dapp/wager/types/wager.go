// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"strings"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
)

// Status 赌约状态
type Status uint8

// 状态. 记录中只会出现 AwaitingCounterparty 和 Active,
// Resolved 和 Cancelled 只出现在回执里, 结束后记录被删除
const (
	StatusNone Status = iota
	StatusAwaitingCounterparty
	StatusActive
	StatusResolved
	StatusCancelled
)

var statusName = map[Status]string{
	StatusNone:                 "None",
	StatusAwaitingCounterparty: "AwaitingCounterparty",
	StatusActive:               "Active",
	StatusResolved:             "Resolved",
	StatusCancelled:            "Cancelled",
}

func (s Status) String() string {
	if name, ok := statusName[s]; ok {
		return name
	}
	return "Unknown"
}

// MarshalText json 中使用状态名
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText 按状态名解析, 不区分大小写
func (s *Status) UnmarshalText(text []byte) error {
	for k, v := range statusName {
		if strings.EqualFold(v, string(text)) {
			*s = k
			return nil
		}
	}
	return errors.Wrapf(types.ErrInvalidParam, "status %s", text)
}

// Wager 赌约记录, 保存在派生地址对应的 key 上.
// Counterparty 和 Winner 为 nil 表示未设置
type Wager struct {
	WagerID       string           `json:"wagerId"`
	Initiator     address.Address  `json:"initiator"`
	Counterparty  *address.Address `json:"counterparty" rlp:"nil"`
	Arbiter       address.Address  `json:"arbiter"`
	Stake         uint64           `json:"stake"`
	TotalPot      uint64           `json:"totalPot"`
	Status        Status           `json:"status"`
	Winner        *address.Address `json:"winner" rlp:"nil"`
	Disambiguator uint8            `json:"disambiguator"`
}

// IsParty addr 是否是发起人或对手方
func (w *Wager) IsParty(addr address.Address) bool {
	if w.Initiator == addr {
		return true
	}
	return w.Counterparty != nil && *w.Counterparty == addr
}

// Clone 深拷贝, 回执中保存修改前后的快照
func (w *Wager) Clone() *Wager {
	c := *w
	if w.Counterparty != nil {
		cp := *w.Counterparty
		c.Counterparty = &cp
	}
	if w.Winner != nil {
		wn := *w.Winner
		c.Winner = &wn
	}
	return &c
}

// MaxRecordSize 记录编码后的最大长度, 用于计算托管账户的存储押金
var MaxRecordSize = uint64(types.Size(&Wager{
	WagerID:       strings.Repeat("w", MaxWagerIDLength),
	Counterparty:  &address.Address{},
	Stake:         ^uint64(0),
	TotalPot:      ^uint64(0),
	Status:        StatusCancelled,
	Winner:        &address.Address{},
	Disambiguator: 255,
}))

// ReceiptWager 状态变化回执, Wager 为操作之后的快照
type ReceiptWager struct {
	Addr       address.Address `json:"addr"`
	PrevStatus Status          `json:"prevStatus"`
	Wager      *Wager          `json:"wager"`
}

// ReqWagerID 按 wagerId 查询
type ReqWagerID struct {
	WagerID string `json:"wagerId"`
}

// ReqWagerParty 按参与方或仲裁人查询
type ReqWagerParty struct {
	Addr string `json:"addr"`
}

// ReplyWagerAddress 派生地址
type ReplyWagerAddress struct {
	WagerID       string          `json:"wagerId"`
	Addr          address.Address `json:"addr"`
	Disambiguator uint8           `json:"disambiguator"`
}

// ReplyWagerList 赌约列表
type ReplyWagerList struct {
	Wagers []*Wager `json:"wagers"`
}

func init() {
	dec := func(log []byte) (interface{}, error) {
		var r ReceiptWager
		err := types.Decode(log, &r)
		return &r, err
	}
	types.RegisterLogDecoder(TyLogWagerCreate, dec)
	types.RegisterLogDecoder(TyLogWagerJoin, dec)
	types.RegisterLogDecoder(TyLogWagerResolve, dec)
	types.RegisterLogDecoder(TyLogWagerCancel, dec)
}
