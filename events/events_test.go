/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-03-08
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\events\events_test.go
 * @Description: 事件发布订阅测试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package events

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/kamalyes/go-cachex"
	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-poslink/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPublisher 测试用发布者实现
type testPublisher struct {
	pubsub *cachex.PubSub
	nodeID string
	ctx    context.Context
}

func (p *testPublisher) GetPubSub() *cachex.PubSub   { return p.pubsub }
func (p *testPublisher) GetLogger() logger.ILogger   { return logger.NewEmptyLogger() }
func (p *testPublisher) GetContext() context.Context { return p.ctx }
func (p *testPublisher) GetNodeID() string           { return p.nodeID }

// newTestPublisher 创建绑定Redis的测试发布者，未配置环境变量时跳过
func newTestPublisher(t *testing.T) *testPublisher {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未配置 TEST_REDIS_ADDR，跳过事件集成测试")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("TEST_REDIS_PASSWORD"),
		DB:       1,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err(), "Redis 连接失败，请检查配置")

	pubsub := cachex.NewPubSub(client, cachex.PubSubConfig{
		Namespace: "poslink-test",
	})

	return &testPublisher{
		pubsub: pubsub,
		nodeID: "test-node-001",
		ctx:    context.Background(),
	}
}

// TestPublish_NoPubSub 测试未设置PubSub时返回错误
func TestPublish_NoPubSub(t *testing.T) {
	p := &testPublisher{ctx: context.Background()}

	err := PublishStockUpdate(p, &models.StockUpdate{ProductID: "P001"})
	assert.ErrorIs(t, err, models.ErrPubSubNotSet)

	err = PublishDeviceStatus(p, models.DeviceStatusOnline, models.DeviceStatusOffline,
		&models.DeviceHealth{DeviceID: "printer-001"})
	assert.ErrorIs(t, err, models.ErrPubSubNotSet)

	_, err = SubscribeStockUpdate(p, func(update *models.StockUpdate) error { return nil })
	assert.ErrorIs(t, err, models.ErrPubSubNotSet)

	_, err = SubscribeDeviceStatus(p, func(event *models.DeviceStatusEvent) error { return nil })
	assert.ErrorIs(t, err, models.ErrPubSubNotSet)
}

// TestPublishSubscribeDeviceStatus 测试设备状态事件的跨节点收发
func TestPublishSubscribeDeviceStatus(t *testing.T) {
	p := newTestPublisher(t)

	received := make(chan *models.DeviceStatusEvent, 1)
	unsubscribe, err := SubscribeDeviceStatus(p, func(event *models.DeviceStatusEvent) error {
		received <- event
		return nil
	})
	require.NoError(t, err)
	defer unsubscribe()

	// 等待订阅建立
	time.Sleep(200 * time.Millisecond)

	health := &models.DeviceHealth{
		DeviceID: "printer-001",
		Type:     models.DeviceTypePrinter,
		Status:   models.DeviceStatusOffline,
	}
	require.NoError(t, PublishDeviceStatus(p, models.DeviceStatusOnline, models.DeviceStatusOffline, health))

	select {
	case event := <-received:
		assert.Equal(t, "printer-001", event.DeviceID)
		assert.Equal(t, models.DeviceTypePrinter, event.Type)
		assert.Equal(t, models.DeviceStatusOnline, event.OldStatus)
		assert.Equal(t, models.DeviceStatusOffline, event.NewStatus)
		assert.Equal(t, "test-node-001", event.NodeID)
	case <-time.After(5 * time.Second):
		t.Fatal("等待设备状态事件超时")
	}
}

// TestPublishSubscribeStockUpdate 测试库存广播事件的收发
func TestPublishSubscribeStockUpdate(t *testing.T) {
	p := newTestPublisher(t)

	received := make(chan *models.StockUpdate, 1)
	unsubscribe, err := SubscribeStockUpdate(p, func(update *models.StockUpdate) error {
		received <- update
		return nil
	})
	require.NoError(t, err)
	defer unsubscribe()

	time.Sleep(200 * time.Millisecond)

	update := &models.StockUpdate{
		ProductID: "P001",
		Quantity:  7,
		BranchID:  "branch-001",
		UpdatedAt: time.Now(),
	}
	require.NoError(t, PublishStockUpdate(p, update))

	select {
	case got := <-received:
		assert.Equal(t, "P001", got.ProductID)
		assert.Equal(t, 7, got.Quantity)
		assert.Equal(t, "branch-001", got.BranchID)
	case <-time.After(5 * time.Second):
		t.Fatal("等待库存广播事件超时")
	}
}

// TestSubscribe_Unsubscribe 测试取消订阅后不再接收事件
func TestSubscribe_Unsubscribe(t *testing.T) {
	p := newTestPublisher(t)

	received := make(chan *models.StockUpdate, 4)
	unsubscribe, err := SubscribeStockUpdate(p, func(update *models.StockUpdate) error {
		received <- update
		return nil
	})
	require.NoError(t, err)

	time.Sleep(200 * time.Millisecond)
	require.NoError(t, unsubscribe())
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, PublishStockUpdate(p, &models.StockUpdate{ProductID: "P-UNSUB"}))

	select {
	case update := <-received:
		t.Fatalf("取消订阅后不应收到事件: %s", update.ProductID)
	case <-time.After(time.Second):
	}
}
