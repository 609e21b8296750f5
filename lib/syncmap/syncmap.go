// Package syncmap is a typed wrapper around sync.Map.
package syncmap

import "sync"

// SyncMap suits caches written once per key and read many times.
type SyncMap[K comparable, V any] struct {
	_map *sync.Map
}

func New[K comparable, V any]() SyncMap[K, V] {
	return SyncMap[K, V]{
		_map: &sync.Map{},
	}
}

func (sm SyncMap[K, V]) Set(key K, value V) {
	sm._map.Store(key, value)
}

func (sm SyncMap[K, V]) Lookup(key K) (value V, ok bool) {
	v, has := sm._map.Load(key)
	if !has {
		return value, false
	}
	return v.(V), true
}
