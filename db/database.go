package db

import "io"

// Represents a data store that can read from the database
type KeyValueReader interface {
	// Checks if a key exists in the data store
	Has(key []byte) (bool, error)
	// Retrieves a value for a given key if it exists
	Get(key []byte, cb func(value []byte) error) error
}

// Represents a data store that can write to the database
type KeyValueWriter interface {
	// Inserts a given value into the data store
	Put(key []byte, value []byte) error
	// Deletes a given key from the data store
	Delete(key []byte) error
}

// Represents a key-value data store that can handle different operations
type KeyValueStore interface {
	KeyValueReader
	KeyValueWriter
	Batcher
	io.Closer
	// Registers an EventListener that observes every IO operation
	WithListener(listener EventListener) KeyValueStore
}

// Get is a convenience wrapper that returns a copy of the value stored under key.
func Get(r KeyValueReader, key []byte) ([]byte, error) {
	var val []byte
	err := r.Get(key, func(value []byte) error {
		val = append([]byte(nil), value...)
		return nil
	})
	return val, err
}
