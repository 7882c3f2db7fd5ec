package pebble

import (
	"time"

	"github.com/NethermindEth/starknet-executor/db"
	"github.com/cockroachdb/pebble"
)

var _ db.Batch = (*batch)(nil)

type batch struct {
	batch    *pebble.Batch
	db       *DB
	size     int // size of the batch in bytes
	listener db.EventListener
}

// Delete : see db.KeyValueWriter.Delete
func (b *batch) Delete(key []byte) error {
	if b.batch == nil {
		return pebble.ErrClosed
	}

	if err := b.batch.Delete(key, pebble.Sync); err != nil {
		return err
	}
	b.size += len(key)
	return nil
}

// Put : see db.KeyValueWriter.Put
func (b *batch) Put(key, value []byte) error {
	if b.batch == nil {
		return pebble.ErrClosed
	}

	if err := b.batch.Set(key, value, pebble.Sync); err != nil {
		return err
	}
	b.size += len(key) + len(value)
	return nil
}

func (b *batch) Size() int {
	return b.size
}

func (b *batch) Write() error {
	if b.batch == nil {
		return pebble.ErrClosed
	}
	start := time.Now()
	defer func() { b.listener.OnIO(true, time.Since(start)) }()

	b.db.wMutex.Lock()
	defer b.db.wMutex.Unlock()
	return b.batch.Commit(pebble.Sync)
}

func (b *batch) Reset() {
	b.batch.Reset()
	b.size = 0
}
