// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sort"

	dbm "github.com/33cn/wager/common/db"
	"github.com/33cn/wager/types"
)

// StateDB 状态数据库的内存缓存
//
// 写入先进入 txcache, Commit 之后合并到 cache, Rollback 丢弃.
// cache 中的 nil 值表示删除. 落盘由 Executor 通过 Flush 统一完成.
type StateDB struct {
	db      dbm.KV
	cache   map[string][]byte
	txcache map[string][]byte
	keys    []string
	intx    bool
}

// NewStateDB new state db
func NewStateDB(db dbm.KV) *StateDB {
	return &StateDB{
		db:    db,
		cache: make(map[string][]byte),
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = nil
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 事务内的写入合并到 cache
func (s *StateDB) Commit() {
	for k, v := range s.txcache {
		s.cache[k] = v
	}
	s.resetTx()
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get get value from state db
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx && s.txcache != nil {
		if value, ok := s.txcache[skey]; ok {
			return getValue(value)
		}
	}
	if value, ok := s.cache[skey]; ok {
		return getValue(value)
	}
	value, err := s.db.Get(key)
	if err != nil {
		if err == dbm.ErrNotFoundInDb {
			return nil, types.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func getValue(value []byte) ([]byte, error) {
	if value == nil {
		return nil, types.ErrNotFound
	}
	return value, nil
}

// Set set key value to state db, value 为 nil 表示删除
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if s.intx {
		if s.txcache == nil {
			s.txcache = make(map[string][]byte)
		}
		s.keys = append(s.keys, skey)
		s.txcache[skey] = value
	} else {
		s.cache[skey] = value
	}
	return nil
}

// GetSetKeys 当前事务中写过的 key
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}

// KVs 已提交的全部写入, 按 key 排序
func (s *StateDB) KVs() []*types.KeyValue {
	keys := make([]string, 0, len(s.cache))
	for k := range s.cache {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]*types.KeyValue, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, &types.KeyValue{Key: []byte(k), Value: s.cache[k]})
	}
	return kvs
}

// Flush 已提交的写入放入 batch, 并清空 cache
func (s *StateDB) Flush(batch dbm.Batch) {
	for _, kv := range s.KVs() {
		batch.Set(kv.Key, kv.Value)
	}
	s.cache = make(map[string][]byte)
}
