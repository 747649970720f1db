/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-18
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-12
 * @FilePath: \go-poslink\events\events.go
 * @Description: 设备状态与库存事件的发布订阅方法
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kamalyes/go-poslink/models"
)

// publishTimeout 单次事件发布超时
const publishTimeout = 5 * time.Second

// publish 将事件发布到跨节点广播通道
func publish(p Publisher, eventType string, data interface{}) error {
	pubsub := p.GetPubSub()
	if pubsub == nil {
		return models.ErrPubSubNotSet
	}

	ctx, cancel := context.WithTimeout(p.GetContext(), publishTimeout)
	defer cancel()

	if err := pubsub.Publish(ctx, eventType, data); err != nil {
		if p.GetContext().Err() != nil {
			// 节点关闭途中发布被取消，降级为调试日志
			p.GetLogger().DebugKV("发布事件被取消", "event_type", eventType)
		} else {
			p.GetLogger().WarnKV("发布事件失败", "event_type", eventType, "error", err)
		}
		return err
	}

	p.GetLogger().DebugKV("📢 发布事件", "event_type", eventType, "node_id", p.GetNodeID())
	return nil
}

// subscribe 订阅单个事件类型并将消息解码为 T 后交给处理器
// 返回取消订阅函数
func subscribe[T any](p Publisher, eventType string, handler func(event *T) error) (func() error, error) {
	pubsub := p.GetPubSub()
	if pubsub == nil {
		return nil, models.ErrPubSubNotSet
	}

	p.GetLogger().InfoKV("📡 订阅事件", "event_type", eventType)

	subscriber, err := pubsub.Subscribe(
		[]string{eventType},
		func(ctx context.Context, channel string, message string) error {
			var event T
			if err := json.Unmarshal([]byte(message), &event); err != nil {
				p.GetLogger().WarnKV("事件反序列化失败", "channel", channel, "error", err)
				return err
			}
			return handler(&event)
		},
	)
	if err != nil {
		return nil, err
	}
	return subscriber.Unsubscribe, nil
}

// PublishDeviceStatus 发布设备状态变更事件
func PublishDeviceStatus(p Publisher, oldStatus, newStatus models.DeviceStatus, health *models.DeviceHealth) error {
	event := &models.DeviceStatusEvent{
		DeviceID:  health.DeviceID,
		Type:      health.Type,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		NodeID:    p.GetNodeID(),
		Timestamp: time.Now(),
	}
	return publish(p, models.EventDeviceStatusChanged, event)
}

// PublishStockUpdate 发布库存变更广播事件
func PublishStockUpdate(p Publisher, update *models.StockUpdate) error {
	return publish(p, models.EventStockBroadcast, update)
}

// SubscribeDeviceStatus 订阅设备状态变更事件，返回取消订阅函数
func SubscribeDeviceStatus(p Publisher, handler func(event *models.DeviceStatusEvent) error) (func() error, error) {
	return subscribe(p, models.EventDeviceStatusChanged, handler)
}

// SubscribeStockUpdate 订阅库存变更广播事件，返回取消订阅函数
func SubscribeStockUpdate(p Publisher, handler func(event *models.StockUpdate) error) (func() error, error) {
	return subscribe(p, models.EventStockBroadcast, handler)
}
