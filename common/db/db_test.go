// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openAll(t *testing.T) map[string]DB {
	dbs := make(map[string]DB)
	for _, backend := range []string{MemDBBackendStr, GoLevelDBBackendStr, GoBadgerDBBackendStr} {
		db, err := NewDB("test", backend, t.TempDir(), 16)
		require.NoError(t, err, backend)
		dbs[backend] = db
	}
	t.Cleanup(func() {
		for _, db := range dbs {
			db.Close()
		}
	})
	return dbs
}

func TestGetSetDelete(t *testing.T) {
	for name, db := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			_, err := db.Get([]byte("k"))
			assert.Equal(t, ErrNotFoundInDb, err)

			require.NoError(t, db.Set([]byte("k"), []byte("v")))
			v, err := db.Get([]byte("k"))
			require.NoError(t, err)
			assert.Equal(t, []byte("v"), v)

			require.NoError(t, db.Delete([]byte("k")))
			_, err = db.Get([]byte("k"))
			assert.Equal(t, ErrNotFoundInDb, err)

			// nil value 表示删除
			require.NoError(t, db.Set([]byte("k"), []byte("v")))
			require.NoError(t, db.Set([]byte("k"), nil))
			_, err = db.Get([]byte("k"))
			assert.Equal(t, ErrNotFoundInDb, err)
		})
	}
}

// 前缀扫描按 key 的字典序返回
func TestPrefixScan(t *testing.T) {
	for name, db := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{"my_key/3", "aaaaaa/1", "my_key/1", "my", "my_key/2", "zzzzzz/1"} {
				require.NoError(t, db.Set([]byte(k), []byte(k)))
			}
			list, err := db.PrefixScan([]byte("my_key/"))
			require.NoError(t, err)
			assert.Equal(t, [][]byte{[]byte("my_key/1"), []byte("my_key/2"), []byte("my_key/3")}, list)

			list, err = db.PrefixScan([]byte("none"))
			require.NoError(t, err)
			assert.Empty(t, list)
		})
	}
}

func TestBatch(t *testing.T) {
	for name, db := range openAll(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, db.Set([]byte("old"), []byte("1")))

			batch := db.NewBatch(true)
			batch.Set([]byte("a"), []byte("1"))
			batch.Set([]byte("b"), []byte("2"))
			batch.Delete([]byte("old"))
			// 批量写提交之前不可见
			_, err := db.Get([]byte("a"))
			assert.Equal(t, ErrNotFoundInDb, err)

			require.NoError(t, batch.Write())
			v, err := db.Get([]byte("b"))
			require.NoError(t, err)
			assert.Equal(t, []byte("2"), v)
			_, err = db.Get([]byte("old"))
			assert.Equal(t, ErrNotFoundInDb, err)

			batch.Reset()
			batch.Set([]byte("c"), []byte("3"))
			require.NoError(t, batch.Write())
			v, err = db.Get([]byte("a"))
			require.NoError(t, err)
			assert.Equal(t, []byte("1"), v)
		})
	}
}

func TestNewDBUnknownBackend(t *testing.T) {
	_, err := NewDB("test", "cleveldb", t.TempDir(), 16)
	assert.Error(t, err)
}
