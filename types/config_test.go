// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCfg = `
title = "local"

[log]
loglevel = "debug"
logFile = "logs/test.log"

[store]
driver = "memdb"
dbPath = "datadir"

[rpc]
jrpcBindAddr = "localhost:9901"
whitelist = ["*"]

[exec]
wagerNamespace = "TESTNS"
rentPerByte = 0

[metrics]
enableMetrics = true
duration = 5

[[genesis]]
addr = "4vJ9JU1bJJE96FWSJKvHsmmFADCg4gpZQff4P3bkLKi"
amount = 100000000

[[genesis]]
addr = "8qbHbw2BbbTHBW1sbeqakYXVKRQM8Ne7pLK7m6CVfeR"
amount = 200000000
`

func TestLoadConfigString(t *testing.T) {
	cfg, err := LoadConfigString(testCfg)
	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Title)
	assert.Equal(t, "debug", cfg.Log.Loglevel)
	// 未配置的项保留默认值
	assert.Equal(t, "info", cfg.Log.LogConsoleLevel)
	assert.Equal(t, uint32(300), cfg.Log.MaxFileSize)
	assert.Equal(t, "memdb", cfg.Store.Driver)
	assert.Equal(t, int32(128), cfg.Store.DbCache)
	assert.Equal(t, "localhost:9901", cfg.RPC.JrpcBindAddr)
	assert.Equal(t, []string{"*"}, cfg.RPC.Whitelist)
	assert.Equal(t, "TESTNS", cfg.Exec.WagerNamespace)
	assert.Equal(t, uint64(0), cfg.Exec.RentPerByte)
	assert.True(t, cfg.Metrics.EnableMetrics)
	assert.Equal(t, int64(5), cfg.Metrics.Duration)
	require.Len(t, cfg.Genesis, 2)
	assert.Equal(t, uint64(2*Coin), cfg.Genesis[1].Amount)
}

func TestDefaultConfig(t *testing.T) {
	cfg, err := LoadConfigString("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "BOARDOVERSE", cfg.Exec.WagerNamespace)
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("WAGER_STORE_DRIVER", "gobadgerdb")
	t.Setenv("WAGER_RPC_WHITELIST", "10.0.0.1,10.0.0.2")
	t.Setenv("WAGER_EXEC_RENT_PER_BYTE", "7")
	t.Setenv("WAGER_LOG_LEVEL", "warn")

	cfg, err := LoadConfigString(testCfg)
	require.NoError(t, err)
	assert.Equal(t, "gobadgerdb", cfg.Store.Driver)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RPC.Whitelist)
	assert.Equal(t, uint64(7), cfg.Exec.RentPerByte)
	assert.Equal(t, "warn", cfg.Log.Loglevel)
	assert.Equal(t, "TESTNS", cfg.Exec.WagerNamespace)
}

func TestConfigErrors(t *testing.T) {
	_, err := LoadConfigString("title = ")
	assert.Error(t, err)

	t.Setenv("WAGER_EXEC_RENT_PER_BYTE", "-1")
	_, err = LoadConfigString("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	assert.Panics(t, func() { InitCfgString("[[") })
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wager.toml")
	require.NoError(t, os.WriteFile(path, []byte(testCfg), 0600))
	cfg := InitCfg(path)
	assert.Equal(t, "local", cfg.Title)
}
