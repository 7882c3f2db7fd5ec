package db_test

import (
	"testing"
	"time"

	"github.com/NethermindEth/starknet-executor/db"
	"github.com/NethermindEth/starknet-executor/db/memory"
	"github.com/NethermindEth/starknet-executor/db/pebble"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]db.KeyValueStore {
	t.Helper()
	return map[string]db.KeyValueStore{
		"memory": memory.New(),
		"pebble": pebble.NewMemTest(t),
	}
}

func TestKeyValueStore(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			key := db.ContractStorage.Key([]byte("contract"), []byte("slot"))

			t.Run("missing key", func(t *testing.T) {
				has, err := store.Has(key)
				require.NoError(t, err)
				assert.False(t, has)

				_, err = db.Get(store, key)
				require.ErrorIs(t, err, db.ErrKeyNotFound)
			})

			t.Run("put then get", func(t *testing.T) {
				require.NoError(t, store.Put(key, []byte("value")))

				has, err := store.Has(key)
				require.NoError(t, err)
				assert.True(t, has)

				val, err := db.Get(store, key)
				require.NoError(t, err)
				assert.Equal(t, []byte("value"), val)
			})

			t.Run("delete", func(t *testing.T) {
				require.NoError(t, store.Delete(key))
				_, err := db.Get(store, key)
				require.ErrorIs(t, err, db.ErrKeyNotFound)
			})

			t.Run("batch is atomic on write", func(t *testing.T) {
				b := store.NewBatch()
				require.NoError(t, b.Put([]byte("a"), []byte("1")))
				require.NoError(t, b.Put([]byte("b"), []byte("2")))
				require.NoError(t, b.Delete([]byte("a")))
				assert.Positive(t, b.Size())

				has, err := store.Has([]byte("b"))
				require.NoError(t, err)
				assert.False(t, has)

				require.NoError(t, b.Write())

				val, err := db.Get(store, []byte("b"))
				require.NoError(t, err)
				assert.Equal(t, []byte("2"), val)

				has, err = store.Has([]byte("a"))
				require.NoError(t, err)
				assert.False(t, has)
			})
		})
	}
}

func TestMemoryClosed(t *testing.T) {
	store := memory.New()
	require.NoError(t, store.Close())

	_, err := store.Has([]byte("k"))
	require.ErrorIs(t, err, db.ErrClosed)
	require.ErrorIs(t, store.Put([]byte("k"), nil), db.ErrClosed)
}

func TestBucketKey(t *testing.T) {
	t.Run("bucket with no key", func(t *testing.T) {
		assert.Equal(t, []byte{byte(db.ContractNonce)}, db.ContractNonce.Key())
	})
	t.Run("bucket with multiple keys", func(t *testing.T) {
		assert.Equal(t, []byte{byte(db.Class), 1, 2, 3}, db.Class.Key([]byte{1}, []byte{2, 3}))
	})
}

func TestEventListener(t *testing.T) {
	var reads, writes int
	listener := &db.SelectiveListener{
		OnIOCb: func(write bool, _ time.Duration) {
			if write {
				writes++
			} else {
				reads++
			}
		},
	}

	store := memory.New().WithListener(listener)
	require.NoError(t, store.Put([]byte("k"), []byte("v")))
	_, err := db.Get(store, []byte("k"))
	require.NoError(t, err)
	_, err = store.Has([]byte("k"))
	require.NoError(t, err)

	assert.Equal(t, 1, writes)
	assert.Equal(t, 2, reads)
}

func TestMetricsListener(t *testing.T) {
	registry := prometheus.NewRegistry()
	store := memory.New().WithListener(db.NewMetricsListener(registry))
	require.NoError(t, store.Put([]byte("k"), []byte("v")))

	count, err := testutil.GatherAndCount(registry, "db_write_latency", "db_read_latency")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
