package state

import (
	"github.com/NethermindEth/starknet-executor/core"
	"github.com/NethermindEth/starknet-executor/core/felt"
	lru "github.com/hashicorp/golang-lru/v2"
)

const DefaultClassCacheSize = 1024

// ClassCache is a thread-safe LRU of compiled classes shared by every
// CachedState layered over the same reader.
type ClassCache struct {
	cache *lru.Cache[felt.ClassHash, core.CompiledClass]
}

func NewClassCache(size int) *ClassCache {
	if size <= 0 {
		size = DefaultClassCacheSize
	}
	// lru.New only fails on a non-positive size.
	cache, _ := lru.New[felt.ClassHash, core.CompiledClass](size)
	return &ClassCache{cache: cache}
}

func (c *ClassCache) Get(classHash felt.ClassHash) (core.CompiledClass, bool) {
	return c.cache.Get(classHash)
}

func (c *ClassCache) Add(classHash felt.ClassHash, class core.CompiledClass) {
	c.cache.Add(classHash, class)
}

func (c *ClassCache) Len() int {
	return c.cache.Len()
}
