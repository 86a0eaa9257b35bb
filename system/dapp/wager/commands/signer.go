// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/common/crypto"
)

type signer struct {
	priv crypto.PrivKey
	addr address.Address
}
