/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-22
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\exports_packages.go
 * @Description: 子包核心类型与构造函数导出
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package poslink

import (
	"github.com/kamalyes/go-poslink/cascade"
	"github.com/kamalyes/go-poslink/catalog"
	"github.com/kamalyes/go-poslink/monitor"
	"github.com/kamalyes/go-poslink/notify"
	"github.com/kamalyes/go-poslink/realtime"
	"github.com/kamalyes/go-poslink/repository"
)

// catalog 包导出
type (
	// BranchConfig 门店端点配置
	BranchConfig = catalog.BranchConfig
)

// BuildEndpoints 根据门店配置构建级联候选端点列表
var BuildEndpoints = catalog.Build

// cascade 包导出
type (
	// Resolver 级联解析器
	Resolver = cascade.Resolver
	// Probe 端点探测接口
	Probe = cascade.Probe
	// ProbeFunc 函数式探测适配器
	ProbeFunc = cascade.ProbeFunc
	// HTTPProbe HTTP 端点探测器
	HTTPProbe = cascade.HTTPProbe
)

var (
	// NewResolver 创建级联解析器
	NewResolver = cascade.NewResolver
	// NewHTTPProbe 创建 HTTP 探测器
	NewHTTPProbe = cascade.NewHTTPProbe
)

// UserMessageExhausted 所有端点均失败时面向收银员的泰文提示
const UserMessageExhausted = cascade.UserMessageExhausted

// realtime 包导出
type (
	// RealtimeConfig 实时通道配置
	RealtimeConfig = realtime.Config
	// RealtimeManager 实时通道管理器
	RealtimeManager = realtime.Manager
	// EventHandler 事件处理函数
	EventHandler = realtime.Handler
	// PendingQueue 待发消息队列
	PendingQueue = realtime.PendingQueue
)

var (
	// NewRealtimeConfig 创建实时通道默认配置
	NewRealtimeConfig = realtime.NewDefaultConfig
	// NewRealtimeManager 创建实时通道管理器
	NewRealtimeManager = realtime.NewManager
	// NewPendingQueue 创建待发消息队列
	NewPendingQueue = realtime.NewPendingQueue
)

// monitor 包导出
type (
	// MonitorConfig 外设监控配置
	MonitorConfig = monitor.Config
	// DeviceMonitor 外设状态监控器
	DeviceMonitor = monitor.DeviceMonitor
	// DeviceChecker 设备健康检查接口
	DeviceChecker = monitor.Checker
	// DeviceCheckerFunc 函数式检查适配器
	DeviceCheckerFunc = monitor.CheckerFunc
	// Visibility 界面可见性接口
	Visibility = monitor.Visibility
	// ManualVisibility 手动控制的可见性实现
	ManualVisibility = monitor.ManualVisibility
)

var (
	// NewMonitorConfig 创建外设监控默认配置
	NewMonitorConfig = monitor.NewDefaultConfig
	// NewDeviceMonitor 创建外设状态监控器
	NewDeviceMonitor = monitor.NewDeviceMonitor
	// NewHTTPChecker 创建 HTTP 设备检查器
	NewHTTPChecker = monitor.NewHTTPChecker
	// NewManualVisibility 创建手动可见性控制器
	NewManualVisibility = monitor.NewManualVisibility
)

// notify 包导出
type (
	// Notifier 用户通知接口
	Notifier = notify.Notifier
	// LoggerNotifier 基于日志器的默认通知实现
	LoggerNotifier = notify.LoggerNotifier
)

var (
	// NewLoggerNotifier 创建日志通知器
	NewLoggerNotifier = notify.NewLoggerNotifier
	// NewNoopNotifier 创建空通知器
	NewNoopNotifier = notify.NewNoopNotifier
)

// repository 包导出
type (
	// OutcomeRecordRepository 级联解析结果记录仓储接口
	OutcomeRecordRepository = repository.OutcomeRecordRepository
	// DeviceHealthRepository 外设健康快照仓库接口
	DeviceHealthRepository = repository.DeviceHealthRepository
	// OutcomeQueryOptions 解析记录查询选项
	OutcomeQueryOptions = repository.OutcomeQueryOptions
)

var (
	// NewOutcomeRecordRepository 创建解析记录仓储实例
	NewOutcomeRecordRepository = repository.NewOutcomeRecordRepository
	// NewRedisDeviceHealthRepository 创建 Redis 外设健康仓库
	NewRedisDeviceHealthRepository = repository.NewRedisDeviceHealthRepository
)
