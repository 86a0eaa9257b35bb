// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows && !plan9
// +build !windows,!plan9

// Package limits 设置进程可以打开的文件数, leveldb 和 badger 需要较多的文件句柄
package limits

import (
	"syscall"

	"github.com/pkg/errors"
)

const (
	fileLimitWant = 2048
	fileLimitMin  = 1024
)

// SetLimits 提高 RLIMIT_NOFILE, 至少需要 fileLimitMin
func SetLimits() error {
	rLimit, err := GetLimits()
	if err != nil {
		return err
	}
	if rLimit.Cur > fileLimitWant {
		return nil
	}
	if rLimit.Max < fileLimitMin {
		return errors.Errorf("need at least %v file descriptors", fileLimitMin)
	}
	rLimit.Cur = fileLimitWant
	if rLimit.Max < fileLimitWant {
		rLimit.Cur = rLimit.Max
	}
	if err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		// try min value
		rLimit.Cur = fileLimitMin
		return errors.Wrap(syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit), "setrlimit")
	}
	return nil
}

//GetLimits 获取limits
func GetLimits() (syscall.Rlimit, error) {
	var rLimit syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit); err != nil {
		return syscall.Rlimit{}, errors.Wrap(err, "getrlimit")
	}
	return rLimit, nil
}
