/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-14
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\realtime\pending.go
 * @Description: 断线期间的待发消息队列（FIFO，带容量与时效控制）
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package realtime

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/kamalyes/go-poslink/models"
)

// PendingQueue 待发消息队列
// 环形缓冲实现，容量固定；出队时按入队顺序（FIFO），
// 超过最大保留时长的消息在刷出时丢弃
type PendingQueue struct {
	mu       sync.Mutex
	items    []*models.PendingMessage
	head     int
	tail     int
	count    int
	capacity int
	maxAge   time.Duration
	dropped  int64 // 累计丢弃数（原子，含过期与溢出）
}

// NewPendingQueue 创建待发消息队列
// capacity: 队列容量；maxAge: 消息最大保留时长
func NewPendingQueue(capacity int, maxAge time.Duration) *PendingQueue {
	if capacity <= 0 {
		capacity = 256
	}
	if maxAge <= 0 {
		maxAge = 5 * time.Minute
	}
	return &PendingQueue{
		items:    make([]*models.PendingMessage, capacity),
		capacity: capacity,
		maxAge:   maxAge,
	}
}

// Enqueue 入队一条待发消息，队列满时返回错误
func (q *PendingQueue) Enqueue(event string, payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == q.capacity {
		atomic.AddInt64(&q.dropped, 1)
		return models.ErrPendingQueueFull
	}

	q.items[q.tail] = &models.PendingMessage{
		Event:    event,
		Payload:  payload,
		QueuedAt: time.Now(),
	}
	q.tail = (q.tail + 1) % q.capacity
	q.count++
	return nil
}

// Drain 取出全部未过期消息（FIFO顺序），过期消息计入丢弃数
// 返回: 有效消息列表, 本次丢弃的过期消息数
func (q *PendingQueue) Drain(now time.Time) ([]*models.PendingMessage, int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	valid := make([]*models.PendingMessage, 0, q.count)
	expired := 0
	for q.count > 0 {
		msg := q.items[q.head]
		q.items[q.head] = nil
		q.head = (q.head + 1) % q.capacity
		q.count--

		if msg.Expired(now, q.maxAge) {
			expired++
			continue
		}
		valid = append(valid, msg)
	}
	if expired > 0 {
		atomic.AddInt64(&q.dropped, int64(expired))
	}
	return valid, expired
}

// Len 返回当前队列长度
func (q *PendingQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Dropped 返回累计丢弃数
func (q *PendingQueue) Dropped() int64 {
	return atomic.LoadInt64(&q.dropped)
}

// Clear 清空队列
func (q *PendingQueue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i := range q.items {
		q.items[i] = nil
	}
	q.head = 0
	q.tail = 0
	q.count = 0
}
