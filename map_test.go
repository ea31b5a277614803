package automaton

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// 测试键类型
type TestKey struct {
	part1 int
	part2 string
}

func (k TestKey) Hash() uint64 {
	return uint64(k.part1 + len(k.part2))
}

func (k TestKey) Equals(other Hashable) bool {
	o, ok := other.(TestKey)
	return ok && k.part1 == o.part1 && k.part2 == o.part2
}

// 另一个测试键类型（用于类型安全测试）
type AnotherKey int

func (k AnotherKey) Hash() uint64 {
	return uint64(k)
}

func (k AnotherKey) Equals(other Hashable) bool {
	o, ok := other.(AnotherKey)
	return ok && k == o
}

func TestHashMapBasic(t *testing.T) {
	t.Run("InsertAndGet", func(t *testing.T) {
		hm := NewHashMap[TestKey, string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		// 不存在的key
		_, exists = hm.Get(TestKey{2, "b"})
		assert.False(t, exists)
	})

	t.Run("UpdateValue", func(t *testing.T) {
		hm := NewHashMap[TestKey, string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")
		hm.Set(key, "value2")

		val, exists := hm.Get(key)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
		assert.Equal(t, 1, hm.Size())
	})

	t.Run("GetOrSet", func(t *testing.T) {
		hm := NewHashMap[TestKey, int](WithCapacity(8))
		key := TestKey{3, "c"}

		actual, loaded := hm.GetOrSet(key, 1)
		assert.False(t, loaded)
		assert.Equal(t, 1, actual)

		actual, loaded = hm.GetOrSet(key, 2)
		assert.True(t, loaded)
		assert.Equal(t, 1, actual)
	})

	t.Run("DeleteKey", func(t *testing.T) {
		hm := NewHashMap[TestKey, string](WithCapacity(8))
		key := TestKey{1, "a"}
		hm.Set(key, "value1")

		hm.Delete(key)
		assert.Equal(t, 0, hm.Size())

		// 删除不存在的key
		hm.Delete(TestKey{2, "b"})
		assert.Equal(t, 0, hm.Size())
	})
}

func TestHashCollision(t *testing.T) {
	hm := NewHashMap[TestKey, string](WithCapacity(16))

	// 构造哈希冲突的key
	key1 := TestKey{1, "a"}  // Hash: 1+1=2
	key2 := TestKey{0, "bb"} // Hash: 0+2=2
	key3 := TestKey{2, "a"}  // Hash: 2+1=3

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")
	hm.Set(key3, "value3")

	assert.Equal(t, 3, hm.Size())

	t.Run("GetCollisionKeys", func(t *testing.T) {
		val, exists := hm.Get(key1)
		assert.True(t, exists)
		assert.Equal(t, "value1", val)

		val, exists = hm.Get(key2)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
	})

	t.Run("DeleteCollisionKey", func(t *testing.T) {
		hm.Delete(key1)
		assert.Equal(t, 2, hm.Size())
		_, exists := hm.Get(key1)
		assert.False(t, exists)

		val, exists := hm.Get(key2)
		assert.True(t, exists)
		assert.Equal(t, "value2", val)
	})
}

func TestAutoResize(t *testing.T) {
	initialCap := 16
	hm := NewHashMap[TestKey, int](WithCapacity(initialCap))

	// 16 * 0.75 = 12
	for i := 0; i < 13; i++ {
		hm.Set(TestKey{i, ""}, i)
	}
	assert.Greater(t, len(hm.buckets), initialCap)

	for i := 0; i < 13; i++ {
		val, exists := hm.Get(TestKey{i, ""})
		assert.True(t, exists)
		assert.Equal(t, i, val)
	}

	count := 0
	for _, v := range hm.All() {
		assert.Less(t, v, 13)
		count++
	}
	assert.Equal(t, 13, count)
}

func TestHashMapPStateKeys(t *testing.T) {
	hm := NewHashMap[PState, int](WithCapacity(4), WithLoadFactor(0.5))

	for c := 0; c < 20; c++ {
		q := NewPState(c%2, []int{c % 2, 1}, []int{c, 0})
		_, loaded := hm.GetOrSet(q, c)
		assert.False(t, loaded)
	}
	assert.Equal(t, 20, hm.Size())

	// 相同内容的状态是同一个key
	val, exists := hm.Get(NewPState(1, []int{1, 1}, []int{7, 0}))
	assert.True(t, exists)
	assert.Equal(t, 7, val)

	_, exists = hm.Get(NewPState(0, []int{1, 1}, []int{7, 0}))
	assert.False(t, exists)
}

func TestConcurrency(t *testing.T) {
	hm := NewHashMap[TestKey, int](WithCapacity(32))
	var wg sync.WaitGroup

	numWorkers := 100
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func(n int) {
			defer wg.Done()
			key := TestKey{n, "test"}
			hm.Set(key, n)
			hm.Get(key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, numWorkers, hm.Size())

	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func(n int) {
			defer wg.Done()
			hm.Delete(TestKey{n, "test"})
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 0, hm.Size())
}

func TestTypeSafety(t *testing.T) {
	hm := NewHashMap[Hashable, string](WithCapacity(8))

	// 不同类型但哈希值相同
	key1 := TestKey{1, "a"} // Hash = 2
	key2 := AnotherKey(2)   // Hash = 2

	hm.Set(key1, "value1")
	hm.Set(key2, "value2")

	val, exists := hm.Get(key1)
	assert.True(t, exists)
	assert.Equal(t, "value1", val)

	val, exists = hm.Get(key2)
	assert.True(t, exists)
	assert.Equal(t, "value2", val)
}

func TestEdgeCases(t *testing.T) {
	t.Run("NilKey", func(t *testing.T) {
		hm := NewHashMap[Hashable, string](WithCapacity(8))
		assert.Panics(t, func() {
			hm.Set(nil, "value")
		})
	})

	t.Run("ZeroCapacity", func(t *testing.T) {
		hm := NewHashMap[TestKey, string](WithCapacity(0))
		assert.Equal(t, 1, len(hm.buckets))
	})

	t.Run("RoundUpCapacity", func(t *testing.T) {
		hm := NewHashMap[TestKey, string](WithCapacity(5))
		assert.Equal(t, 8, len(hm.buckets))
	})
}
