// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"

	"github.com/33cn/wager/common"
	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/common/crypto"
	"github.com/33cn/wager/system/crypto/ed25519"
)

// Signature 交易签名, Pubkey 即签名者身份
type Signature struct {
	Pubkey    []byte
	Signature []byte
}

// Transaction 交易. 每笔交易在执行器中原子执行
type Transaction struct {
	Execer    []byte
	Payload   []byte
	Nonce     uint64
	Signature []*Signature
}

// Signers 一笔交易中通过验证的签名者集合
type Signers []address.Address

// Contains 是否包含 addr
func (s Signers) Contains(addr address.Address) bool {
	for _, a := range s {
		if a == addr {
			return true
		}
	}
	return false
}

// NewTransaction 构造未签名交易, nonce 随机
func NewTransaction(execer string, payload []byte) *Transaction {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return &Transaction{
		Execer:  []byte(execer),
		Payload: payload,
		Nonce:   binary.BigEndian.Uint64(b[:]),
	}
}

// Hash 不包含签名的交易哈希
func (tx *Transaction) Hash() []byte {
	copytx := *tx
	copytx.Signature = nil
	return common.Sha256(Encode(&copytx))
}

// Sign 追加一个签名
func (tx *Transaction) Sign(priv crypto.PrivKey) {
	hash := tx.Hash()
	sig := priv.Sign(hash)
	tx.Signature = append(tx.Signature, &Signature{
		Pubkey:    priv.PubKey().Bytes(),
		Signature: sig.Bytes(),
	})
}

// Signers 校验全部签名并返回签名者集合. 任意一个签名不合法则整笔交易无效
func (tx *Transaction) Signers() (Signers, error) {
	if len(tx.Signature) == 0 {
		return nil, ErrNoSignature
	}
	var d ed25519.Driver
	hash := tx.Hash()
	signers := make(Signers, 0, len(tx.Signature))
	for _, s := range tx.Signature {
		pub, err := d.PubKeyFromBytes(s.Pubkey)
		if err != nil {
			return nil, ErrSign
		}
		sig, err := d.SignatureFromBytes(s.Signature)
		if err != nil {
			return nil, ErrSign
		}
		if !pub.VerifyBytes(hash, sig) {
			return nil, ErrSign
		}
		addr, err := address.PubKeyToAddress(s.Pubkey)
		if err != nil {
			return nil, ErrSign
		}
		if !signers.Contains(addr) {
			signers = append(signers, addr)
		}
	}
	return signers, nil
}

// From 第一个签名者
func (tx *Transaction) From() address.Address {
	if len(tx.Signature) == 0 {
		return address.Address{}
	}
	addr, _ := address.PubKeyToAddress(tx.Signature[0].Pubkey)
	return addr
}

// IsExecer 交易是否发往 name 执行器
func (tx *Transaction) IsExecer(name string) bool {
	return bytes.Equal(tx.Execer, []byte(name))
}

// EncodeTx 交易的 hex 编码, 用于 rpc 传输
func EncodeTx(tx *Transaction) string {
	return common.ToHex(Encode(tx))
}

// DecodeTx hex -> 交易
func DecodeTx(data string) (*Transaction, error) {
	b, err := common.FromHex(data)
	if err != nil {
		return nil, ErrDecode
	}
	if len(b) == 0 {
		return nil, ErrEmptyTx
	}
	var tx Transaction
	if err := Decode(b, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// TxResult 持久化的交易及其执行结果
type TxResult struct {
	Hash    []byte
	Tx      *Transaction
	Receipt *ReceiptData
}

// TxReceiptKey 交易回执的存储 key
func TxReceiptKey(hash []byte) []byte {
	return append([]byte(TxReceiptPrefix), hash...)
}
