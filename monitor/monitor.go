/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-16
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\monitor\monitor.go
 * @Description: 外设状态监控器 - 可见性感知的周期健康检查
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package monitor

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-poslink/models"
	"github.com/kamalyes/go-poslink/notify"
)

// Checker 设备健康检查接口
type Checker interface {
	// Check 执行一次设备健康检查，ctx 已绑定检查超时
	Check(ctx context.Context) (*models.DeviceHealth, error)
}

// CheckerFunc 函数式检查适配器
type CheckerFunc func(ctx context.Context) (*models.DeviceHealth, error)

// Check 实现 Checker 接口
func (f CheckerFunc) Check(ctx context.Context) (*models.DeviceHealth, error) {
	return f(ctx)
}

// DeviceMonitor 外设状态监控器
// 周期性检查设备健康；界面隐藏时跳过检查，恢复可见立即补查；
// 仅在状态发生变化时通知；业务操作绝不因设备状态被阻断
type DeviceMonitor struct {
	config     *Config
	checker    Checker
	visibility Visibility
	notifier   notify.Notifier
	logger     logger.ILogger

	running int32 // 单例守卫（原子）
	cancel  context.CancelFunc
	unhook  func() // 可见性回调注销函数

	mu         sync.RWMutex
	status     models.DeviceStatus
	lastHealth *models.DeviceHealth

	onStatusChange atomic.Value // func(old, new models.DeviceStatus, health *models.DeviceHealth)
}

// NewDeviceMonitor 创建外设状态监控器
// 参数:
//   - config: 监控配置，传 nil 使用默认配置
//   - checker: 设备健康检查实现
//   - visibility: 界面可见性来源，传 nil 视为恒定可见
//   - notifier: 用户通知器，传 nil 则静默
//   - log: 日志记录器
func NewDeviceMonitor(config *Config, checker Checker, visibility Visibility, notifier notify.Notifier, log logger.ILogger) *DeviceMonitor {
	if config == nil {
		config = NewDefaultConfig()
	}
	config.Validate()
	if visibility == nil {
		visibility = AlwaysVisible{}
	}
	if notifier == nil {
		notifier = notify.NewNoopNotifier()
	}
	if log == nil {
		log = logger.NewEmptyLogger()
	}

	return &DeviceMonitor{
		config:     config,
		checker:    checker,
		visibility: visibility,
		notifier:   notifier,
		logger:     log,
		status:     models.DeviceStatusUnknown,
	}
}

// OnStatusChange 设置状态变更回调（仅状态变化时触发）
func (m *DeviceMonitor) OnStatusChange(f func(old, new models.DeviceStatus, health *models.DeviceHealth)) {
	m.onStatusChange.Store(f)
}

// HasOnStatusChangeCallback 检查是否设置了状态变更回调
func (m *DeviceMonitor) HasOnStatusChangeCallback() bool {
	return m.onStatusChange.Load() != nil
}

// Status 返回最近一次观测到的设备状态
func (m *DeviceMonitor) Status() models.DeviceStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// LastHealth 返回最近一次健康快照
func (m *DeviceMonitor) LastHealth() *models.DeviceHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastHealth
}

// Running 检查监控器是否在运行
func (m *DeviceMonitor) Running() bool {
	return atomic.LoadInt32(&m.running) == 1
}

// Start 启动监控器
// 重复启动返回 ErrMonitorRunning，已运行实例不受影响
func (m *DeviceMonitor) Start() error {
	if !atomic.CompareAndSwapInt32(&m.running, 0, 1) {
		m.logger.WarnKV("监控器已在运行，忽略重复启动", "device_id", m.config.DeviceID)
		return models.ErrMonitorRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel

	// 界面恢复可见时立即补查一次
	m.unhook = m.visibility.OnVisibilityChange(func(visible bool) {
		if visible && m.Running() {
			m.logger.DebugKV("界面恢复可见，立即执行设备检查", "device_id", m.config.DeviceID)
			go m.CheckNow(ctx)
		}
	})

	go m.run(ctx)

	m.logger.InfoKV("外设监控已启动",
		"device_id", m.config.DeviceID,
		"device_type", m.config.DeviceType,
		"interval", m.config.Interval,
	)
	return nil
}

// Stop 停止监控器并释放资源，可安全重复调用
func (m *DeviceMonitor) Stop() {
	if !atomic.CompareAndSwapInt32(&m.running, 1, 0) {
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.unhook != nil {
		m.unhook()
		m.unhook = nil
	}
	m.logger.InfoKV("外设监控已停止", "device_id", m.config.DeviceID)
}

// run 周期检查循环
func (m *DeviceMonitor) run(ctx context.Context) {
	// 启动后立即执行首次检查（界面可见时）
	if m.visibility.Visible() {
		m.CheckNow(ctx)
	}

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// 界面隐藏时跳过周期检查
			if !m.visibility.Visible() {
				m.logger.DebugKV("界面隐藏，跳过设备检查", "device_id", m.config.DeviceID)
				continue
			}
			m.CheckNow(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// CheckNow 立即执行一次设备健康检查
func (m *DeviceMonitor) CheckNow(ctx context.Context) *models.DeviceHealth {
	checkCtx, cancel := context.WithTimeout(ctx, m.config.CheckTimeout)
	defer cancel()

	start := time.Now()
	health, err := m.checker.Check(checkCtx)
	if err != nil || health == nil {
		status := models.DeviceStatusError
		detail := ""
		if err != nil {
			detail = err.Error()
			if checkCtx.Err() == context.DeadlineExceeded {
				status = models.DeviceStatusTimeout
			}
		}
		health = &models.DeviceHealth{
			DeviceID:  m.config.DeviceID,
			Type:      m.config.DeviceType,
			Status:    status,
			Detail:    detail,
			CheckedAt: start,
			Latency:   time.Since(start),
		}
	}

	m.applyHealth(health)
	return health
}

// applyHealth 更新健康快照，状态变化时触发通知
func (m *DeviceMonitor) applyHealth(health *models.DeviceHealth) {
	m.mu.Lock()
	old := m.status
	m.status = health.Status
	m.lastHealth = health
	m.mu.Unlock()

	if old == health.Status {
		return
	}

	m.logger.InfoKV("设备状态变化",
		"device_id", health.DeviceID,
		"old_status", old,
		"new_status", health.Status,
		"detail", health.Detail,
	)

	// 状态恶化时提示收银员，恢复时报告可用
	if health.Status.IsHealthy() {
		m.notifier.Info(notify.StatusText(health.Status))
	} else {
		m.notifier.Warn(notify.StatusText(health.Status))
	}

	if f := m.onStatusChange.Load(); f != nil {
		f.(func(models.DeviceStatus, models.DeviceStatus, *models.DeviceHealth))(old, health.Status, health)
	}
}

// PerformAction 执行设备业务操作
// 设备状态不可用时仅发出泰文警告，操作照常执行，绝不因状态阻断
func (m *DeviceMonitor) PerformAction(ctx context.Context, action func(ctx context.Context) error) error {
	if !m.Status().IsHealthy() {
		m.notifier.Warn(notify.DeviceWarningText(m.config.DeviceType))
		m.logger.WarnKV("设备状态不佳，操作继续执行",
			"device_id", m.config.DeviceID,
			"status", m.Status(),
		)
	}
	return action(ctx)
}
