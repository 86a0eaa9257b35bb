// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types commands中结构体定义
package types

// AccountResult defines account result command
type AccountResult struct {
	Addr    string `json:"addr"`
	Balance string `json:"balance"`
	Frozen  string `json:"frozen,omitempty"`
	Owner   string `json:"owner,omitempty"`
}

// KeyResult 生成的密钥
type KeyResult struct {
	PrivKey string `json:"privkey"`
	PubKey  string `json:"pubkey"`
	Addr    string `json:"addr"`
}

// WagerResult 赌约记录, 金额按币显示
type WagerResult struct {
	WagerID      string `json:"wagerId"`
	Initiator    string `json:"initiator"`
	Counterparty string `json:"counterparty,omitempty"`
	Arbiter      string `json:"arbiter"`
	Stake        string `json:"stake"`
	TotalPot     string `json:"totalPot"`
	Status       string `json:"status"`
}
