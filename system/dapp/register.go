// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"sort"
	"sync"

	"github.com/33cn/wager/common/address"
	"github.com/33cn/wager/common/log"
	"github.com/33cn/wager/types"
)

var elog = log.New("module", "execs")

// DriverCreate defines a drivercreate function
type DriverCreate func() Driver

var (
	mu                 sync.RWMutex
	registedExecDriver = make(map[string]DriverCreate)
	execAddressNameMap = make(map[address.Address]string)
)

// Register register driver, 重复注册 panic
func Register(name string, create DriverCreate) {
	if create == nil {
		panic("Execute: Register driver is nil")
	}
	if len(name) == 0 || len(name) > address.MaxExecNameLength {
		panic("Execute: invalid driver name " + name)
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registedExecDriver[name]; dup {
		panic("Execute: Register called twice for driver " + name)
	}
	registedExecDriver[name] = create
	execAddressNameMap[address.ExecAddress(name)] = name
}

// LoadDriver 创建一个新的驱动实例, 每笔交易使用独立的实例
func LoadDriver(name string) (Driver, error) {
	mu.RLock()
	create, ok := registedExecDriver[name]
	mu.RUnlock()
	if !ok {
		elog.Debug("LoadDriver", "driver", name)
		return nil, types.ErrExecNotFound
	}
	d := create()
	d.SetName(name)
	return d, nil
}

// IsDriverAddress 地址是否是执行器地址
func IsDriverAddress(addr address.Address) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := execAddressNameMap[addr]
	return ok
}

// ListDrivers 已注册的执行器
func ListDrivers() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registedExecDriver))
	for name := range registedExecDriver {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecAddress return exec address
func ExecAddress(name string) address.Address {
	return address.ExecAddress(name)
}
