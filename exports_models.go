/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-22
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\exports_models.go
 * @Description: models 包类型别名导出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package poslink

import (
	"github.com/kamalyes/go-poslink/models"
)

// 枚举类型别名
type (
	// EndpointKind 端点类型
	EndpointKind = models.EndpointKind
	// ConnectionState 实时通道连接状态
	ConnectionState = models.ConnectionState
	// DeviceStatus 外设状态
	DeviceStatus = models.DeviceStatus
	// DeviceType 外设类型
	DeviceType = models.DeviceType
)

// 枚举常量别名
const (
	EndpointKindLocal       = models.EndpointKindLocal
	EndpointKindLocalSecure = models.EndpointKindLocalSecure
	EndpointKindProxy       = models.EndpointKindProxy
	EndpointKindServer      = models.EndpointKindServer

	ConnectionStateDisconnected    = models.ConnectionStateDisconnected
	ConnectionStateConnecting      = models.ConnectionStateConnecting
	ConnectionStateConnected       = models.ConnectionStateConnected
	ConnectionStateFallbackPolling = models.ConnectionStateFallbackPolling

	DeviceStatusUnknown = models.DeviceStatusUnknown
	DeviceStatusOnline  = models.DeviceStatusOnline
	DeviceStatusOffline = models.DeviceStatusOffline
	DeviceStatusTimeout = models.DeviceStatusTimeout
	DeviceStatusError   = models.DeviceStatusError

	DeviceTypePrinter    = models.DeviceTypePrinter
	DeviceTypeCardReader = models.DeviceTypeCardReader
	DeviceTypeDrawer     = models.DeviceTypeDrawer
)

// 数据结构别名
type (
	// Endpoint 级联候选端点
	Endpoint = models.Endpoint
	// AttemptOutcome 单次连接尝试结果
	AttemptOutcome = models.AttemptOutcome
	// ResolveResult 级联解析结果
	ResolveResult = models.ResolveResult
	// DeviceHealth 外设健康快照
	DeviceHealth = models.DeviceHealth
	// PendingMessage 断线暂存消息
	PendingMessage = models.PendingMessage
	// StockUpdate 库存变更事件负载
	StockUpdate = models.StockUpdate
	// DeviceStatusEvent 设备状态变更事件
	DeviceStatusEvent = models.DeviceStatusEvent
	// ResolveOutcomeRecord 级联尝试结果持久化记录
	ResolveOutcomeRecord = models.ResolveOutcomeRecord
)

// 事件名常量别名
const (
	// EventStockUpdated 库存变更事件名
	EventStockUpdated = models.EventStockUpdated
	// EventDeviceStatusChanged 设备状态变更事件
	EventDeviceStatusChanged = models.EventDeviceStatusChanged
	// EventStockBroadcast 库存变更广播事件
	EventStockBroadcast = models.EventStockBroadcast
)
