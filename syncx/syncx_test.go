// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package syncx

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"testing/synctest"

	"go.astrophena.name/cato/testutil"
)

func TestLazy(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		var l Lazy[int]
		var count int
		var mu sync.Mutex

		f := func() int {
			mu.Lock()
			defer mu.Unlock()
			count++
			return count
		}

		for range 10 {
			go l.Get(f)
		}
		synctest.Wait()

		testutil.AssertEqual(t, l.Get(f), 1)
		testutil.AssertEqual(t, count, 1)
	})
}

func TestLazyGetErr(t *testing.T) {
	t.Parallel()

	var (
		l     Lazy[string]
		calls int
	)
	errBroken := errors.New("something went wrong")
	f := func() (string, error) {
		calls++
		return "", errBroken
	}

	for range 2 {
		v, err := l.GetErr(f)
		testutil.AssertEqual(t, v, "")
		if !errors.Is(err, errBroken) {
			t.Fatalf("want %v, got %v", errBroken, err)
		}
	}
	testutil.AssertEqual(t, calls, 1)
}

func collect[K comparable, V any](m *Map[K, V]) map[K]V {
	got := make(map[K]V)
	m.Range(func(k K, v V) bool {
		got[k] = v
		return true
	})
	return got
}

func TestMap(t *testing.T) {
	t.Parallel()

	t.Run("zero value", func(t *testing.T) {
		var m Map[string, int]
		testutil.AssertEqual(t, collect(&m), map[string]int{})
	})

	t.Run("store overwrites", func(t *testing.T) {
		var m Map[string, int]
		m.Store("a", 1)
		m.Store("a", 2)
		m.Store("b", 3)
		testutil.AssertEqual(t, collect(&m), map[string]int{"a": 2, "b": 3})
	})

	t.Run("range stops", func(t *testing.T) {
		var m Map[string, int]
		m.Store("a", 1)
		m.Store("b", 2)
		var calls int
		m.Range(func(string, int) bool {
			calls++
			return false
		})
		testutil.AssertEqual(t, calls, 1)
	})

	t.Run("concurrent store", func(t *testing.T) {
		synctest.Test(t, func(t *testing.T) {
			var m Map[string, int]
			for i := range 100 {
				go m.Store(fmt.Sprintf("key%d", i), i)
			}
			synctest.Wait()

			got := collect(&m)
			testutil.AssertEqual(t, len(got), 100)
			testutil.AssertEqual(t, got["key42"], 42)
		})
	})
}
