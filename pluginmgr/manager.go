// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pluginmgr

import (
	"sort"
	"sync"

	"github.com/33cn/wager/common/log"
	"github.com/spf13/cobra"
)

var (
	mgrlog      = log.New("module", "plugin.manager")
	mu          sync.RWMutex
	pluginItems = make(map[string]Plugin)
	once        = &sync.Once{}
)

// InitExec 注册全部执行器, 只执行一次
func InitExec() {
	once.Do(func() {
		for _, item := range sortedItems() {
			mgrlog.Debug("InitExec", "plugin", item.GetName())
			item.InitExec()
		}
	})
}

// HasExec 是否存在该执行器
func HasExec(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	for _, item := range pluginItems {
		if item.GetExecutorName() == name {
			return true
		}
	}
	return false
}

// Register 注册插件, 重名时 panic
func Register(p Plugin) {
	if p == nil {
		panic("plugin param is nil")
	}
	packageName := p.GetName()
	if len(packageName) == 0 {
		panic("plugin package name is empty")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, ok := pluginItems[packageName]; ok {
		panic("execute plugin item is existed. name = " + packageName)
	}
	pluginItems[packageName] = p
}

// AddCmd 按插件名顺序添加命令
func AddCmd(rootCmd *cobra.Command) {
	for _, item := range sortedItems() {
		item.AddCmd(rootCmd)
	}
}

func sortedItems() []Plugin {
	mu.RLock()
	defer mu.RUnlock()
	items := make([]Plugin, 0, len(pluginItems))
	for _, item := range pluginItems {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].GetName() < items[j].GetName() })
	return items
}
