package memory

import (
	"slices"
	"sync"
	"time"

	"github.com/NethermindEth/starknet-executor/db"
)

var _ db.KeyValueStore = (*Database)(nil)

// Represents an in-memory key-value store.
// It is thread-safe.
type Database struct {
	db       map[string][]byte
	lock     sync.RWMutex
	listener db.EventListener
}

func New() *Database {
	return &Database{
		db:       make(map[string][]byte),
		listener: &db.SelectiveListener{},
	}
}

func (d *Database) WithListener(listener db.EventListener) db.KeyValueStore {
	d.listener = listener
	return d
}

func (d *Database) Has(key []byte) (bool, error) {
	defer d.observe(false, time.Now())
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.db == nil {
		return false, db.ErrClosed
	}

	_, ok := d.db[string(key)]
	return ok, nil
}

func (d *Database) Get(key []byte, cb func(value []byte) error) error {
	defer d.observe(false, time.Now())
	d.lock.RLock()
	defer d.lock.RUnlock()

	if d.db == nil {
		return db.ErrClosed
	}

	val, ok := d.db[string(key)]
	if !ok {
		return db.ErrKeyNotFound
	}

	return cb(val)
}

func (d *Database) Put(key, value []byte) error {
	defer d.observe(true, time.Now())
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.db == nil {
		return db.ErrClosed
	}

	d.db[string(key)] = slices.Clone(value)
	return nil
}

func (d *Database) Delete(key []byte) error {
	defer d.observe(true, time.Now())
	d.lock.Lock()
	defer d.lock.Unlock()

	if d.db == nil {
		return db.ErrClosed
	}

	delete(d.db, string(key))
	return nil
}

func (d *Database) Close() error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.db = nil
	return nil
}

func (d *Database) NewBatch() db.Batch { return newBatch(d) }

func (d *Database) observe(write bool, start time.Time) {
	d.listener.OnIO(write, time.Since(start))
}
