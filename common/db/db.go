// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db 数据库后端: goleveldb, badger, 内存数据库
package db

import (
	"github.com/33cn/wager/common/log"
	"github.com/33cn/wager/types"
	"github.com/pkg/errors"
)

var dlog = log.New("module", "db")

// ErrNotFoundInDb key 不存在
var ErrNotFoundInDb = types.ErrNotFoundInDb

// KV 状态读写接口, 执行器只通过它访问状态. Set 的 value 为 nil 表示删除
type KV interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
}

// DB 持久化数据库
type DB interface {
	KV
	Delete(key []byte) error
	NewBatch(sync bool) Batch
	// PrefixScan 按 key 的字典序返回前缀下所有的 value
	PrefixScan(prefix []byte) ([][]byte, error)
	Close()
}

// Batch 批量写, Write 原子地落盘
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
	Reset()
}

// backends
const (
	LevelDBBackendStr    = "leveldb" // legacy, defaults to goleveldb.
	GoLevelDBBackendStr  = "goleveldb"
	MemDBBackendStr      = "memdb"
	GoBadgerDBBackendStr = "gobadgerdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB 根据后端名打开数据库
func NewDB(name string, backend string, dir string, cache int32) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		dlog.Error("NewDB", "backend", backend, "err", "not support")
		return nil, errors.Wrapf(types.ErrInvalidParam, "db backend %s", backend)
	}
	db, err := creator(name, dir, int(cache))
	if err != nil {
		dlog.Error("NewDB", "backend", backend, "dir", dir, "err", err)
		return nil, errors.Wrapf(err, "open %s db %s", backend, name)
	}
	return db, nil
}

type kvCache struct {
	key   string
	value []byte
	del   bool
}

// batchCache 记录写入顺序, 供 memdb 以及测试使用
type batchCache struct {
	writes []kvCache
}

func (b *batchCache) Set(key, value []byte) {
	if value == nil {
		b.Delete(key)
		return
	}
	b.writes = append(b.writes, kvCache{key: string(key), value: copyBytes(value)})
}

func (b *batchCache) Delete(key []byte) {
	b.writes = append(b.writes, kvCache{key: string(key), del: true})
}

func (b *batchCache) Reset() {
	b.writes = b.writes[:0]
}

func copyBytes(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
