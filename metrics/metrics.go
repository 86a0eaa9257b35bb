// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 执行统计
package metrics

import (
	"fmt"
	"time"

	"github.com/33cn/wager/common/log"
	"github.com/33cn/wager/types"
	go_metrics "github.com/rcrowley/go-metrics"
)

var (
	mlog = log.New("module", "metrics")
	// Registry 本进程使用的注册表
	Registry = go_metrics.NewRegistry()
)

// printfLogger go-metrics 的日志输出到 log15
type printfLogger struct{}

func (printfLogger) Printf(format string, v ...interface{}) {
	mlog.Info(fmt.Sprintf(format, v...))
}

//StartMetrics 根据配置周期性地把统计输出到日志
func StartMetrics(cfg *types.Metrics) {
	if cfg == nil || !cfg.EnableMetrics {
		mlog.Info("Metrics data is not enabled to emit")
		return
	}
	duration := cfg.Duration
	if duration <= 0 {
		duration = 60
	}
	mlog.Info("StartMetrics", "duration", duration)
	go go_metrics.Log(Registry, time.Duration(duration)*time.Second, printfLogger{})
}

// Counter 按名字获取计数器, 不存在时创建
func Counter(name string) go_metrics.Counter {
	return go_metrics.GetOrRegisterCounter(name, Registry)
}

// Timer 按名字获取计时器
func Timer(name string) go_metrics.Timer {
	return go_metrics.GetOrRegisterTimer(name, Registry)
}

// Outcome 记录一次调用的结果: <prefix>/ok 或 <prefix>/fail
func Outcome(prefix string, err error) {
	if err != nil {
		Counter(prefix + "/fail").Inc(1)
		return
	}
	Counter(prefix + "/ok").Inc(1)
}

// Snapshot 所有计数器当前的值
func Snapshot() map[string]int64 {
	counts := make(map[string]int64)
	Registry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case go_metrics.Counter:
			counts[name] = m.Count()
		case go_metrics.Timer:
			counts[name] = m.Count()
		}
	})
	return counts
}
