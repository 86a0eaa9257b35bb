// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package common hex 编码以及哈希工具
package common

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

//ToHex []byte -> 带 0x 前缀的 hex, 空输入返回空字符串
func ToHex(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return "0x" + hex.EncodeToString(b)
}

//FromHex hex -> []byte, 0x 前缀可选, 奇数长度左侧补 0
func FromHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s)%2 == 1 {
		s = "0" + s
	}
	return hex.DecodeString(s)
}

//HasHexPrefix 是否包含0x前缀
func HasHexPrefix(str string) bool {
	return strings.HasPrefix(str, "0x")
}

// CopyBytes Returns an exact copy of the provided bytes
func CopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

//Sha256 sha256 摘要
func Sha256(b []byte) []byte {
	data := sha256.Sum256(b)
	return data[:]
}

// Sha256Parts 依次写入各段再求摘要, 等价于拼接之后的 Sha256
func Sha256Parts(parts ...[]byte) (out [32]byte) {
	s := sha256.New()
	for _, p := range parts {
		s.Write(p)
	}
	copy(out[:], s.Sum(nil))
	return
}
