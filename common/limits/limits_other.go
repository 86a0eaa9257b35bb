// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build windows || plan9
// +build windows plan9

package limits

// SetLimits 其他平台不需要设置
func SetLimits() error {
	return nil
}
