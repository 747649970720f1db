/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-10
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-02
 * @FilePath: \go-poslink\models\device.go
 * @Description: 外设健康与实时消息模型
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"time"
)

// DeviceHealth 外设健康快照
type DeviceHealth struct {
	DeviceID  string        `json:"device_id"`  // 设备ID
	Type      DeviceType    `json:"type"`       // 设备类型
	Status    DeviceStatus  `json:"status"`     // 状态
	Detail    string        `json:"detail"`     // 状态详情（如错误信息）
	CheckedAt time.Time     `json:"checked_at"` // 检查时间
	Latency   time.Duration `json:"latency"`    // 检查耗时
}

// PendingMessage 断线期间暂存的待发消息
type PendingMessage struct {
	Event    string    `json:"event"`     // 事件名
	Payload  []byte    `json:"payload"`   // 消息内容
	QueuedAt time.Time `json:"queued_at"` // 入队时间
}

// Age 计算消息在队列中的停留时长
func (m *PendingMessage) Age(now time.Time) time.Duration {
	return now.Sub(m.QueuedAt)
}

// Expired 检查消息是否超过最大保留时长
func (m *PendingMessage) Expired(now time.Time, maxAge time.Duration) bool {
	return m.Age(now) > maxAge
}

// StockUpdate 库存变更事件负载
type StockUpdate struct {
	ProductID string    `json:"product_id"` // 商品ID
	Quantity  int       `json:"quantity"`   // 最新库存量
	BranchID  string    `json:"branch_id"`  // 门店ID
	UpdatedAt time.Time `json:"updated_at"` // 变更时间
}

// EventStockUpdated 库存变更事件名（降级轮询合成的事件也使用此名称）
const EventStockUpdated = "stock_updated"

// DeviceStatusEvent 设备状态变更事件（跨节点广播用）
type DeviceStatusEvent struct {
	DeviceID  string       `json:"device_id"`  // 设备ID
	Type      DeviceType   `json:"type"`       // 设备类型
	OldStatus DeviceStatus `json:"old_status"` // 变更前状态
	NewStatus DeviceStatus `json:"new_status"` // 变更后状态
	NodeID    string       `json:"node_id"`    // 发布节点
	Timestamp time.Time    `json:"timestamp"`  // 变更时间
}

// 跨节点事件类型常量
const (
	// EventDeviceStatusChanged 设备状态变更事件
	EventDeviceStatusChanged = "poslink.device.status_changed"
	// EventStockBroadcast 库存变更广播事件
	EventStockBroadcast = "poslink.stock.updated"
)
