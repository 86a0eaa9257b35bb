// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address 地址相关: 身份地址, 执行器地址, 以及派生(托管)地址的计算与校验
package address

import (
	"bytes"
	"errors"

	"filippo.io/edwards25519"
	"github.com/33cn/wager/common"
	lru "github.com/hashicorp/golang-lru"
	"github.com/mr-tron/base58"
)

// AddressLength 地址字节长度
const AddressLength = 32

// MaxSeedLength 派生地址单个 seed 的最大长度
const MaxSeedLength = 32

//MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100

var (
	// ErrAddressFormat address is not a base58 encoded 32 byte value
	ErrAddressFormat = errors.New("ErrAddressFormat")
	// ErrMaxSeedLength one of the seeds is longer than MaxSeedLength
	ErrMaxSeedLength = errors.New("ErrMaxSeedLength")
	// ErrInvalidSeeds the derived hash lies on the ed25519 curve
	ErrInvalidSeeds = errors.New("ErrInvalidSeeds")
	// ErrAddressExhausted no bump value yields a valid derived address
	ErrAddressExhausted = errors.New("ErrAddressExhausted")
)

var addrSeed = []byte("address seed bytes for public key")
var derivedMarker = []byte("ProgramDerivedAddress")
var execAddressCache *lru.Cache
var checkAddressCache *lru.Cache

func init() {
	execAddressCache, _ = lru.New(1024)
	checkAddressCache, _ = lru.New(10240)
}

// Address 32 字节地址, 身份地址即 ed25519 公钥
type Address [AddressLength]byte

func (a Address) String() string {
	return base58.Encode(a[:])
}

// Bytes returns a copy of the raw address bytes
func (a Address) Bytes() []byte {
	return common.CopyBytes(a[:])
}

// MarshalText encodes the address as base58 for json output
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText decodes a base58 address
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := NewAddrFromString(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

//NewAddrFromString base58 -> 地址
func NewAddrFromString(s string) (a Address, e error) {
	dec, err := base58.Decode(s)
	if err != nil || len(dec) != AddressLength {
		return a, ErrAddressFormat
	}
	copy(a[:], dec)
	return a, nil
}

//CheckAddress 检查地址
func CheckAddress(addr string) (e error) {
	if value, ok := checkAddressCache.Get(addr); ok {
		if value == nil {
			return nil
		}
		return value.(error)
	}
	_, e = NewAddrFromString(addr)
	checkAddressCache.Add(addr, e)
	return
}

//PubKeyToAddress 公钥转为地址
func PubKeyToAddress(in []byte) (a Address, err error) {
	if len(in) != AddressLength {
		return a, ErrAddressFormat
	}
	copy(a[:], in)
	return a, nil
}

//ExecAddress 执行器地址, 计算量有点大，做一次cache
func ExecAddress(name string) Address {
	if value, ok := execAddressCache.Get(name); ok {
		return value.(Address)
	}
	if len(name) > MaxExecNameLength {
		panic("name too long")
	}
	addr := Address(common.Sha256Parts(addrSeed, []byte(name)))
	execAddressCache.Add(name, addr)
	return addr
}

// IsOnCurve reports whether b is the encoding of a point on the ed25519 curve.
// Derived addresses must be off curve so that no private key can sign for them.
func IsOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}

// CreateDerivedAddress hash(seeds || owner || marker), rejected when on curve
func CreateDerivedAddress(seeds [][]byte, owner Address) (Address, error) {
	parts := make([][]byte, 0, len(seeds)+2)
	for _, s := range seeds {
		if len(s) > MaxSeedLength {
			return Address{}, ErrMaxSeedLength
		}
		parts = append(parts, s)
	}
	parts = append(parts, owner[:], derivedMarker)
	hash := common.Sha256Parts(parts...)
	if IsOnCurve(hash[:]) {
		return Address{}, ErrInvalidSeeds
	}
	return Address(hash), nil
}

// FindDerivedAddress searches the bump from 255 downward and returns the first
// (canonical) off-curve address together with its bump.
func FindDerivedAddress(seeds [][]byte, owner Address) (Address, uint8, error) {
	withBump := make([][]byte, len(seeds)+1)
	copy(withBump, seeds)
	for bump := 255; bump >= 0; bump-- {
		withBump[len(seeds)] = []byte{byte(bump)}
		addr, err := CreateDerivedAddress(withBump, owner)
		if err == ErrInvalidSeeds {
			continue
		}
		if err != nil {
			return Address{}, 0, err
		}
		return addr, uint8(bump), nil
	}
	return Address{}, 0, ErrAddressExhausted
}

type derived struct {
	addr Address
	bump uint8
}

// Deriver computes custody addresses owned by one executor.
// Results are pure functions of the inputs, so they are cached.
type Deriver struct {
	owner Address
	cache *lru.Cache
}

// NewDeriver deriver for addresses owned by the named executor
func NewDeriver(execName string) *Deriver {
	cache, _ := lru.New(4096)
	return &Deriver{owner: ExecAddress(execName), cache: cache}
}

// Owner executor address every derived address is bound to
func (d *Deriver) Owner() Address {
	return d.owner
}

// Derive returns the canonical address and bump for (tag, id)
func (d *Deriver) Derive(tag, id string) (Address, uint8, error) {
	key := tag + "\x00" + id
	if v, ok := d.cache.Get(key); ok {
		r := v.(derived)
		return r.addr, r.bump, nil
	}
	addr, bump, err := FindDerivedAddress([][]byte{[]byte(tag), []byte(id)}, d.owner)
	if err != nil {
		return Address{}, 0, err
	}
	d.cache.Add(key, derived{addr: addr, bump: bump})
	return addr, bump, nil
}

// Verify re-derives (tag, id) and checks both the address and the bump
func (d *Deriver) Verify(addr Address, tag, id string, bump uint8) bool {
	expect, expectBump, err := d.Derive(tag, id)
	if err != nil {
		return false
	}
	return bytes.Equal(expect[:], addr[:]) && expectBump == bump
}
