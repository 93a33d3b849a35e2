// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package syncx contains useful synchronization primitives.
package syncx

import (
	"sync"

	"github.com/go4org/hashtriemap"
)

// Lazy represents a lazily computed value.
type Lazy[T any] struct {
	once sync.Once
	val  T
	err  error
}

// Get returns T, calling f to compute it, if necessary.
func (l *Lazy[T]) Get(f func() T) T {
	l.once.Do(func() { l.val = f() })
	return l.val
}

// GetErr returns T and an error, calling f to compute them, if necessary.
// The error is remembered just like the value.
func (l *Lazy[T]) GetErr(f func() (T, error)) (T, error) {
	l.once.Do(func() { l.val, l.err = f() })
	return l.val, l.err
}

// Map is a concurrent map backed by a hash-trie. The zero value is ready to
// use. It must not be copied after first use.
type Map[K comparable, V any] struct {
	m hashtriemap.HashTrieMap[K, V]
}

// Store sets the value for key.
func (m *Map[K, V]) Store(key K, value V) { m.m.Store(key, value) }

// Range calls f for each key and value in the map, in no particular order.
// It stops when f returns false.
func (m *Map[K, V]) Range(f func(key K, value V) bool) { m.m.Range(f) }
