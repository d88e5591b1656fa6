package utils

import (
	"sync"

	"github.com/dolthub/swiss"
	"github.com/floatdrop/lru"
)

// Cache generic key/value cache. All implementations are safe for concurrent use.
type Cache[K comparable, T any] interface {
	Get(key K) (value T, ok bool)
	Set(key K, value T)
	Delete(key K)
	Clear()
}

type LRUCache[K comparable, T any] struct {
	lock   sync.Mutex
	size   int
	values *lru.LRU[K, T]
}

func NewLRUCache[K comparable, T any](size int) *LRUCache[K, T] {
	return &LRUCache[K, T]{
		size:   size,
		values: lru.New[K, T](size),
	}
}

func (c *LRUCache[K, T]) Get(key K) (value T, ok bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if v := c.values.Get(key); v != nil {
		return *v, true
	}
	return value, false
}

func (c *LRUCache[K, T]) Set(key K, value T) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Set(key, value)
}

func (c *LRUCache[K, T]) Delete(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Remove(key)
}

func (c *LRUCache[K, T]) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values = lru.New[K, T](c.size)
}

// MapCache unbounded up to size entries, after which the whole map is dropped
type MapCache[K comparable, T any] struct {
	lock   sync.RWMutex
	size   int
	values *swiss.Map[K, T]
}

func NewMapCache[K comparable, T any](size int) *MapCache[K, T] {
	return &MapCache[K, T]{
		size:   size,
		values: swiss.NewMap[K, T](uint32(size)),
	}
}

func (c *MapCache[K, T]) Get(key K) (value T, ok bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.values.Get(key)
}

func (c *MapCache[K, T]) Set(key K, value T) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.values.Count() >= c.size && !c.values.Has(key) {
		c.values.Clear()
	}
	c.values.Put(key, value)
}

func (c *MapCache[K, T]) Delete(key K) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Delete(key)
}

func (c *MapCache[K, T]) Clear() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.values.Clear()
}

// NilCache never stores anything
type NilCache[K comparable, T any] struct {
}

func NewNilCache[K comparable, T any]() *NilCache[K, T] {
	return &NilCache[K, T]{}
}

func (c *NilCache[K, T]) Get(key K) (value T, ok bool) {
	return value, false
}

func (c *NilCache[K, T]) Set(key K, value T) {

}

func (c *NilCache[K, T]) Delete(key K) {

}

func (c *NilCache[K, T]) Clear() {

}
