// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"io/ioutil"

	tml "github.com/BurntSushi/toml"
	env "github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

// EnvPrefix 环境变量前缀, 例如 WAGER_STORE_DRIVER
const EnvPrefix = "WAGER_"

// Config 节点配置
type Config struct {
	Title   string          `toml:"title"`
	Log     Log             `toml:"log"`
	Store   Store           `toml:"store"`
	RPC     RPC             `toml:"rpc"`
	Exec    Exec            `toml:"exec"`
	Metrics Metrics         `toml:"metrics"`
	Genesis []*GenesisAlloc `toml:"genesis"`
}

// Log 日志配置
type Log struct {
	// 日志级别，支持debug(dbug)/info/warn/error(eror)/crit
	Loglevel        string `toml:"loglevel" env:"LEVEL"`
	LogConsoleLevel string `toml:"logConsoleLevel" env:"CONSOLE_LEVEL"`
	// 日志文件名，可带目录，所有生成的日志文件都放到此目录下
	LogFile string `toml:"logFile" env:"FILE"`
	// 单个日志文件的最大值（单位：兆）
	MaxFileSize uint32 `toml:"maxFileSize"`
	// 最多保存的历史日志文件个数
	MaxBackups uint32 `toml:"maxBackups"`
	// 最多保存的历史日志消息（单位：天）
	MaxAge uint32 `toml:"maxAge"`
	// 日志文件名是否使用本地事件（否则使用UTC时间）
	LocalTime bool `toml:"localTime"`
	// 历史日志文件是否压缩（压缩格式为gz）
	Compress bool `toml:"compress"`
	// 是否打印调用源文件和行号
	CallerFile bool `toml:"callerFile"`
	// 是否打印调用方法
	CallerFunction bool `toml:"callerFunction"`
	// 文件日志格式: logfmt 或 json
	Format string `toml:"format" env:"FORMAT"`
}

// Store 存储配置
type Store struct {
	// 数据库类型: leveldb, gobadgerdb, memdb
	Driver  string `toml:"driver" env:"DRIVER"`
	DbPath  string `toml:"dbPath" env:"DB_PATH"`
	DbCache int32  `toml:"dbCache" env:"DB_CACHE"`
}

// RPC rpc 配置
type RPC struct {
	JrpcBindAddr string `toml:"jrpcBindAddr" env:"JRPC_BIND_ADDR"`
	// 允许访问的客户端 ip, "*" 或 "0.0.0.0" 表示不限制, 回环地址总是允许
	Whitelist []string `toml:"whitelist" env:"WHITELIST" envSeparator:","`
	// 允许跨域访问的来源, 为空时不允许跨域
	CorsOrigins []string `toml:"corsOrigins" env:"CORS_ORIGINS" envSeparator:","`
}

// Exec 执行器配置
type Exec struct {
	// 托管地址派生使用的命名空间
	WagerNamespace string `toml:"wagerNamespace" env:"WAGER_NAMESPACE"`
	// 托管账户每字节的存储押金, 0 表示不收取
	RentPerByte uint64 `toml:"rentPerByte" env:"RENT_PER_BYTE"`
}

// Metrics 监控配置
type Metrics struct {
	EnableMetrics bool `toml:"enableMetrics" env:"ENABLE"`
	// 日志输出间隔(秒)
	Duration int64 `toml:"duration" env:"DURATION"`
}

// GenesisAlloc 创世分配
type GenesisAlloc struct {
	Addr   string `toml:"addr"`
	Amount uint64 `toml:"amount"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Title: "wager",
		Log: Log{
			Loglevel:        "error",
			LogConsoleLevel: "info",
			LogFile:         "logs/wager.log",
			MaxFileSize:     300,
			MaxBackups:      100,
			MaxAge:          28,
			LocalTime:       true,
			Compress:        true,
			Format:          "logfmt",
		},
		Store: Store{
			Driver:  "leveldb",
			DbPath:  "datadir/wager",
			DbCache: 128,
		},
		RPC: RPC{
			JrpcBindAddr: "localhost:8801",
			Whitelist:    []string{"127.0.0.1"},
		},
		Exec: Exec{
			WagerNamespace: "BOARDOVERSE",
			RentPerByte:    6960,
		},
		Metrics: Metrics{
			EnableMetrics: false,
			Duration:      60,
		},
	}
}

// InitCfgString 解析配置字符串, 配置错误直接 panic
func InitCfgString(cfgstring string) *Config {
	cfg, err := LoadConfigString(cfgstring)
	if err != nil {
		panic(err)
	}
	return cfg
}

// InitCfg 初始化配置
func InitCfg(path string) *Config {
	return InitCfgString(readFile(path))
}

// LoadConfigString 默认配置 <- toml <- 环境变量
func LoadConfigString(cfgstring string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := tml.Decode(cfgstring, cfg); err != nil {
		return nil, errors.Wrap(err, "decode toml")
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig 读取配置文件
func LoadConfig(path string) (*Config, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	return LoadConfigString(string(data))
}

func applyEnv(cfg *Config) error {
	sections := []struct {
		prefix string
		v      interface{}
	}{
		{"LOG_", &cfg.Log},
		{"STORE_", &cfg.Store},
		{"RPC_", &cfg.RPC},
		{"EXEC_", &cfg.Exec},
		{"METRICS_", &cfg.Metrics},
	}
	for _, s := range sections {
		if err := env.ParseWithOptions(s.v, env.Options{Prefix: EnvPrefix + s.prefix}); err != nil {
			return errors.Wrapf(err, "parse env %s%s", EnvPrefix, s.prefix)
		}
	}
	return nil
}

func readFile(path string) string {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		panic(err)
	}
	return string(data)
}
