/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-22
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-10
 * @FilePath: \go-poslink\poslink.go
 * @Description: Service 结构体及其方法 - 级联解析、实时通道与外设监控的统一入口
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package poslink

import (
	"context"
	"fmt"
	"time"

	"github.com/kamalyes/go-cachex"
	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-poslink/cascade"
	"github.com/kamalyes/go-poslink/catalog"
	"github.com/kamalyes/go-poslink/events"
	"github.com/kamalyes/go-poslink/models"
	"github.com/kamalyes/go-poslink/monitor"
	"github.com/kamalyes/go-poslink/notify"
	"github.com/kamalyes/go-poslink/realtime"
	"github.com/kamalyes/go-poslink/repository"
)

// Service POS 连接核心服务
// 聚合级联解析器、实时通道管理器与外设监控器，
// 并负责可选的事件广播与解析记录持久化
type Service struct {
	config   *ServiceConfig
	logger   PoslinkLogger
	notifier notify.Notifier

	resolver *cascade.Resolver
	probe    cascade.Probe
	realtime *realtime.Manager
	monitor  *monitor.DeviceMonitor

	// 可选依赖
	outcomeRepo repository.OutcomeRecordRepository
	healthRepo  repository.DeviceHealthRepository
	pubsub      *cachex.PubSub

	ctx    context.Context
	cancel context.CancelFunc
}

// NewService 创建连接核心服务
func NewService(config *ServiceConfig, log PoslinkLogger) *Service {
	if config == nil {
		config = NewDefaultServiceConfig()
	}
	config.Validate()
	if log == nil {
		log = DefaultLogger
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Service{
		config:   config,
		logger:   log,
		notifier: notify.NewLoggerNotifier(log),
		resolver: cascade.NewResolver(log),
		probe:    cascade.NewHTTPProbe(nil, config.HealthPath).WithAuth(config.AuthToken, config.Branch.BranchID),
		realtime: realtime.NewManager(config.Realtime, log),
		ctx:      ctx,
		cancel:   cancel,
	}

	// 通道状态变化投影为泰文提示
	s.realtime.OnStateChange(func(old, new models.ConnectionState) {
		s.logger.InfoKV("通道状态变化", "from", old, "to", new)
		if new == models.ConnectionStateFallbackPolling {
			s.notifier.Warn(notify.FallbackModeText)
		}
	})
	s.realtime.OnSlowConnect(func(elapsed time.Duration) {
		s.notifier.Warn(notify.SlowConnectionText)
	})
	s.realtime.OnReconnectAttempt(func(attempt, max int) {
		s.notifier.Info(notify.ReconnectAttemptText(attempt, max))
	})

	return s
}

// WithNotifier 设置用户通知器并返回当前服务对象
func (s *Service) WithNotifier(n notify.Notifier) *Service {
	if n != nil {
		s.notifier = n
	}
	return s
}

// WithProbe 设置级联探测实现并返回当前服务对象
func (s *Service) WithProbe(p cascade.Probe) *Service {
	if p != nil {
		s.probe = p
	}
	return s
}

// WithOutcomeRepository 设置解析记录仓库并返回当前服务对象
func (s *Service) WithOutcomeRepository(repo repository.OutcomeRecordRepository) *Service {
	s.outcomeRepo = repo
	return s
}

// WithHealthRepository 设置外设健康仓库并返回当前服务对象
func (s *Service) WithHealthRepository(repo repository.DeviceHealthRepository) *Service {
	s.healthRepo = repo
	return s
}

// WithPubSub 设置跨节点事件广播实例并返回当前服务对象
func (s *Service) WithPubSub(pubsub *cachex.PubSub) *Service {
	s.pubsub = pubsub
	return s
}

// ============================================================================
// events.Publisher 接口实现
// ============================================================================

// GetPubSub 获取 PubSub 实例
func (s *Service) GetPubSub() *cachex.PubSub {
	return s.pubsub
}

// GetLogger 获取日志器
func (s *Service) GetLogger() logger.ILogger {
	return s.logger
}

// GetContext 获取上下文
func (s *Service) GetContext() context.Context {
	return s.ctx
}

// GetNodeID 获取节点ID
func (s *Service) GetNodeID() string {
	return s.config.NodeID
}

// ============================================================================
// 级联解析
// ============================================================================

// ResolveEndpoint 执行一次级联端点解析
// 候选端点由门店配置构建；全部失败时结果值携带泰文提示（不返回error）；
// 配置了解析记录仓库时，所有尝试记录异步落库供排障
func (s *Service) ResolveEndpoint(ctx context.Context) (*models.ResolveResult, error) {
	endpoints, err := catalog.Build(s.config.Branch)
	if err != nil {
		return nil, err
	}

	result, err := s.resolver.Resolve(ctx, endpoints, s.probe)
	if err != nil {
		return nil, err
	}

	if s.outcomeRepo != nil {
		resolveID := fmt.Sprintf("%s-%d", s.config.Branch.BranchID, time.Now().UnixNano())
		go func() {
			saveCtx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
			defer cancel()
			_ = s.outcomeRepo.SaveResult(saveCtx, resolveID, s.config.Branch.BranchID, result)
		}()
	}

	if result.Exhausted {
		s.notifier.Error(result.UserMessage)
	}
	return result, nil
}

// ============================================================================
// 实时通道
// ============================================================================

// Realtime 返回实时通道管理器
func (s *Service) Realtime() *realtime.Manager {
	return s.realtime
}

// ConnectRealtime 建立实时通道连接
func (s *Service) ConnectRealtime(ctx context.Context) error {
	return s.realtime.Connect(ctx)
}

// ResetRealtime 将降级轮询终态恢复为可连接状态
func (s *Service) ResetRealtime() error {
	return s.realtime.Reset()
}

// Emit 通过实时通道发送事件（未连接时自动暂存）
func (s *Service) Emit(event string, payload []byte) error {
	return s.realtime.Emit(event, payload)
}

// OnEvent 注册实时事件处理器
func (s *Service) OnEvent(event string, handler realtime.Handler) {
	s.realtime.On(event, handler)
}

// OffEvent 注销实时事件处理器
func (s *Service) OffEvent(event string) {
	s.realtime.Off(event)
}

// ConnectionState 返回实时通道当前状态
func (s *Service) ConnectionState() models.ConnectionState {
	return s.realtime.State()
}

// ============================================================================
// 外设监控
// ============================================================================

// StartMonitor 启动外设监控
// 状态变化时：通知收银员（仅变化时）、广播跨节点事件、落库健康快照
func (s *Service) StartMonitor(checker monitor.Checker, visibility monitor.Visibility) error {
	if s.monitor != nil && s.monitor.Running() {
		return models.ErrMonitorRunning
	}

	s.monitor = monitor.NewDeviceMonitor(s.config.Monitor, checker, visibility, s.notifier, s.logger)
	s.monitor.OnStatusChange(func(old, new models.DeviceStatus, health *models.DeviceHealth) {
		if s.pubsub != nil {
			_ = events.PublishDeviceStatus(s, old, new, health)
		}
		if s.healthRepo != nil {
			saveCtx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
			defer cancel()
			_ = s.healthRepo.SetHealth(saveCtx, health, 0)
		}
	})
	return s.monitor.Start()
}

// StopMonitor 停止外设监控
func (s *Service) StopMonitor() {
	if s.monitor != nil {
		s.monitor.Stop()
	}
}

// Monitor 返回外设监控器（未启动时为 nil）
func (s *Service) Monitor() *monitor.DeviceMonitor {
	return s.monitor
}

// DeviceStatus 返回最近观测到的外设状态
func (s *Service) DeviceStatus() models.DeviceStatus {
	if s.monitor == nil {
		return models.DeviceStatusUnknown
	}
	return s.monitor.Status()
}

// PerformDeviceAction 执行设备业务操作（状态不佳仅警告，绝不阻断）
func (s *Service) PerformDeviceAction(ctx context.Context, action func(ctx context.Context) error) error {
	if s.monitor == nil {
		return action(ctx)
	}
	return s.monitor.PerformAction(ctx, action)
}

// ============================================================================
// 生命周期
// ============================================================================

// Close 关闭服务，释放所有资源
func (s *Service) Close() {
	s.StopMonitor()
	s.realtime.Close()
	s.cancel()
	s.logger.InfoKV("连接核心服务已关闭", "node_id", s.config.NodeID)
}
