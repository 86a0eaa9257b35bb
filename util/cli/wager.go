// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/33cn/wager/common/limits"
	clog "github.com/33cn/wager/common/log"
	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/executor"
	"github.com/33cn/wager/metrics"
	"github.com/33cn/wager/rpc"
	"github.com/33cn/wager/types"
	"github.com/33cn/wager/util"
)

var (
	configPath = flag.String("f", "", "configfile")
	datadir    = flag.String("datadir", "", "data dir of wager node, include logs and datas")
	versionCmd = flag.Bool("v", false, "version")
)

var log = clog.New("module", "main")

// RunWager 启动节点, 收到 SIGINT/SIGTERM 后退出
func RunWager(name string) {
	flag.Parse()
	if *versionCmd {
		fmt.Println(types.Version)
		return
	}
	if *configPath == "" {
		if name == "" {
			*configPath = "wager.toml"
		} else {
			*configPath = name + ".toml"
		}
	}
	if err := limits.SetLimits(); err != nil {
		panic(err)
	}
	cfg := types.InitCfg(*configPath)
	if *datadir != "" {
		util.ResetDatadir(cfg, *datadir)
	}
	clog.SetFileLog(&cfg.Log)

	t := time.NewTicker(10 * time.Minute)
	defer t.Stop()
	go func() {
		for range t.C {
			watching()
		}
	}()

	log.Info(cfg.Title + " version:" + types.Version)
	log.Info("loading store", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)
	db, err := dbm.NewDB("wager", cfg.Store.Driver, cfg.Store.DbPath, cfg.Store.DbCache)
	if err != nil {
		panic(err)
	}
	defer func() {
		log.Info("begin close store")
		db.Close()
	}()

	log.Info("loading execs module")
	exec := executor.New(cfg, db)
	if _, err := exec.GenesisInit(cfg.Genesis); err != nil && err != types.ErrGenesisInited {
		panic(err)
	}
	metrics.StartMetrics(&cfg.Metrics)

	log.Info("loading rpc module")
	rpcapi := rpc.NewJSONRPCServer(&cfg.RPC, exec)
	port, err := rpcapi.Listen()
	if err != nil {
		panic(err)
	}
	log.Info("rpc started", "port", port)
	defer func() {
		log.Info("begin close rpc module")
		rpcapi.Close()
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	sig := <-interrupt
	log.Info("exit", "signal", sig)
}

func watching() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Info("info:", "NumGoroutine:", runtime.NumGoroutine())
	log.Info("info:", "Mem:", m.Sys/(1024*1024))
	log.Info("info:", "HeapAlloc:", m.HeapAlloc/(1024*1024))
}
