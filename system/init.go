// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package system 注册系统内置的 dapp
package system

import (
	_ "github.com/33cn/wager/system/dapp/coins" //register coins
	_ "github.com/33cn/wager/system/dapp/wager" //register wager
)
