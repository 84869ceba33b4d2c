/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-10-12 00:00:00
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-10-15 23:20:02
 * @FilePath: \go-alertsock\queue\deque_test.go
 * @Description:
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package queue

import (
	"math/rand"
	"testing"

	"github.com/kamalyes/go-alertsock/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoundedDeque(t *testing.T) {
	t.Run("容量为0非法", func(t *testing.T) {
		q, err := NewBoundedDeque[string](0)
		assert.Nil(t, q)
		assert.Error(t, err)
		assert.True(t, models.IsErrorType(err, models.ErrTypeInvalidCapacity))
	})

	t.Run("负容量非法", func(t *testing.T) {
		_, err := NewBoundedDeque[string](-3)
		assert.Error(t, err)
	})

	t.Run("正常创建", func(t *testing.T) {
		q, err := NewBoundedDeque[string](4)
		require.NoError(t, err)
		assert.Equal(t, 4, q.Cap())
		assert.Equal(t, 0, q.Len())
		assert.True(t, q.IsEmpty())
		assert.False(t, q.IsFull())
	})
}

// TestFIFOWithPriority 头部插入优先于已有元素出队
func TestFIFOWithPriority(t *testing.T) {
	q, err := NewBoundedDeque[int](3)
	require.NoError(t, err)

	assert.True(t, q.EnqueueTail(1))
	assert.True(t, q.EnqueueTail(2))

	v, ok := q.DequeueHead()
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	assert.True(t, q.EnqueueHead(3))

	v, ok = q.DequeueHead()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	v, ok = q.DequeueHead()
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = q.DequeueHead()
	assert.False(t, ok)
}

// TestDropOnFull 满时拒绝且不修改内容
func TestDropOnFull(t *testing.T) {
	q, err := NewBoundedDeque[string](3)
	require.NoError(t, err)

	for _, s := range []string{"a", "b", "c"} {
		assert.True(t, q.EnqueueTail(s))
	}
	assert.True(t, q.IsFull())
	assert.Equal(t, 3, q.Len())

	assert.False(t, q.EnqueueTail("d"))
	assert.False(t, q.EnqueueHead("e"))
	assert.Equal(t, 3, q.Len())

	var got []string
	for {
		v, ok := q.DequeueHead()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.True(t, q.IsEmpty())
}

func TestWrapAround(t *testing.T) {
	q, err := NewBoundedDeque[int](3)
	require.NoError(t, err)

	// 让 head/tail 多次绕回
	for i := 0; i < 10; i++ {
		assert.True(t, q.EnqueueTail(i))
		assert.True(t, q.EnqueueTail(i+100))
		v, ok := q.DequeueHead()
		assert.True(t, ok)
		assert.Equal(t, i, v)
		v, ok = q.DequeueHead()
		assert.True(t, ok)
		assert.Equal(t, i+100, v)
		assert.Equal(t, 0, q.Len())
	}

	// 头部插入填满后也必须识别为满
	assert.True(t, q.EnqueueHead(1))
	assert.True(t, q.EnqueueHead(2))
	assert.True(t, q.EnqueueHead(3))
	assert.True(t, q.IsFull())
	assert.Equal(t, 3, q.Len())

	v, _ := q.PeekHead()
	assert.Equal(t, 3, v)
}

func TestDequeueReleasesSlot(t *testing.T) {
	q, err := NewBoundedDeque[*string](2)
	require.NoError(t, err)

	s := "payload"
	q.EnqueueTail(&s)
	_, ok := q.DequeueHead()
	require.True(t, ok)

	for _, item := range q.items {
		assert.Nil(t, item)
	}
}

// TestCapacityInvariant 随机操作序列下 count 始终在 [0, N]
func TestCapacityInvariant(t *testing.T) {
	const capacity = 5
	q, err := NewBoundedDeque[int](capacity)
	require.NoError(t, err)

	var model []int
	r := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		before := q.Len()
		switch r.Intn(3) {
		case 0:
			ok := q.EnqueueTail(i)
			assert.Equal(t, before < capacity, ok)
			if ok {
				model = append(model, i)
			}
		case 1:
			ok := q.EnqueueHead(i)
			assert.Equal(t, before < capacity, ok)
			if ok {
				model = append([]int{i}, model...)
			}
		case 2:
			v, ok := q.DequeueHead()
			assert.Equal(t, before > 0, ok)
			if ok {
				assert.Equal(t, model[0], v)
				model = model[1:]
			}
		}

		assert.GreaterOrEqual(t, q.Len(), 0)
		assert.LessOrEqual(t, q.Len(), capacity)
		assert.Equal(t, len(model), q.Len())
		assert.Equal(t, q.Len() == capacity, q.IsFull())
	}
}

func TestStats(t *testing.T) {
	q, err := NewBoundedDeque[string](4)
	require.NoError(t, err)
	q.EnqueueTail("x")

	stats := q.Stats()
	assert.Equal(t, 1, stats["length"])
	assert.Equal(t, 4, stats["capacity"])
	assert.Equal(t, 25.0, stats["utilization"])
	assert.Equal(t, false, stats["full"])
}
