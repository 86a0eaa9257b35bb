// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 基于 log15 的日志, 控制台输出带颜色, 文件输出按大小轮转
package log

import (
	"os"

	"github.com/33cn/wager/types"
	log15 "github.com/inconshreveable/log15"
	colorable "github.com/mattn/go-colorable"
	"gopkg.in/natefinch/lumberjack.v2"
)

// 文件日志格式
const (
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
)

//SetLogLevel 只输出到控制台
func SetLogLevel(logLevel string) {
	log15.Root().SetHandler(consoleHandler(logLevel))
}

//SetFileLog 按配置同时输出到控制台和文件, 没有配置文件名时只输出到控制台
func SetFileLog(cfg *types.Log) {
	if cfg == nil {
		SetLogLevel(log15.LvlError.String())
		return
	}
	fillDefaultValue(cfg)
	if cfg.LogFile == "" {
		SetLogLevel(cfg.LogConsoleLevel)
		return
	}
	log15.Root().SetHandler(log15.MultiHandler(consoleHandler(cfg.LogConsoleLevel), fileHandler(cfg)))
}

// 保证默认性况下为error级别，防止打印太多日志
func fillDefaultValue(cfg *types.Log) {
	if cfg.Loglevel == "" {
		cfg.Loglevel = log15.LvlError.String()
	}
	if cfg.LogConsoleLevel == "" {
		cfg.LogConsoleLevel = log15.LvlError.String()
	}
	if cfg.Format == "" {
		cfg.Format = FormatLogfmt
	}
}

func consoleHandler(logLevel string) log15.Handler {
	format := log15.TerminalFormat()
	// windows 控制台不支持颜色
	if os.PathSeparator == '\\' {
		format = log15.LogfmtFormat()
	}
	return log15.LvlFilterHandler(getLevel(logLevel), log15.StreamHandler(colorable.NewColorableStdout(), format))
}

func fileHandler(cfg *types.Log) log15.Handler {
	w := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    int(cfg.MaxFileSize),
		MaxBackups: int(cfg.MaxBackups),
		MaxAge:     int(cfg.MaxAge),
		LocalTime:  cfg.LocalTime,
		Compress:   cfg.Compress,
	}
	format := log15.LogfmtFormat()
	if cfg.Format == FormatJSON {
		format = log15.JsonFormat()
	}
	h := log15.LvlFilterHandler(getLevel(cfg.Loglevel), log15.StreamHandler(w, format))
	if cfg.CallerFile {
		h = log15.CallerFileHandler(h)
	}
	if cfg.CallerFunction {
		h = log15.CallerFuncHandler(h)
	}
	return h
}

// 日志级别配置不正确时为error级别
func getLevel(lvlString string) log15.Lvl {
	lvl, err := log15.LvlFromString(lvlString)
	if err != nil {
		return log15.LvlError
	}
	return lvl
}

//New 模块日志, 例如 log.New("module", "wager")
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}
