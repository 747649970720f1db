/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-03-10
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-10
 * @FilePath: \go-poslink\poslink_test.go
 * @Description: Service 统一入口测试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package poslink

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kamalyes/go-poslink/catalog"
	"github.com/kamalyes/go-poslink/models"
	"github.com/kamalyes/go-poslink/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier 记录收到的通知文案
type recordingNotifier struct {
	mu     sync.Mutex
	infos  []string
	warns  []string
	errors []string
}

func (n *recordingNotifier) Info(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.infos = append(n.infos, msg)
}

func (n *recordingNotifier) Warn(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.warns = append(n.warns, msg)
}

func (n *recordingNotifier) Error(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, msg)
}

func (n *recordingNotifier) Errors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

// newTestService 创建测试用服务（空日志）
func newTestService(config *ServiceConfig) *Service {
	return NewService(config, NewNoOpLogger())
}

// TestNewService_NilDefaults 测试空配置与空日志时的默认行为
func TestNewService_NilDefaults(t *testing.T) {
	s := NewService(nil, nil)
	defer s.Close()

	require.NotNil(t, s)
	assert.Equal(t, models.ConnectionStateDisconnected, s.ConnectionState())
	assert.Empty(t, s.GetNodeID())
	assert.NotNil(t, s.GetContext())
	assert.NotNil(t, s.GetLogger())
	assert.Nil(t, s.GetPubSub())
	assert.Nil(t, s.Monitor())
	assert.Equal(t, models.DeviceStatusUnknown, s.DeviceStatus())
}

// TestService_WithChain 测试链式可选依赖注入
func TestService_WithChain(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newTestService(NewDefaultServiceConfig().WithNodeID("pos-node-001"))
	defer s.Close()

	ret := s.WithNotifier(notifier).
		WithOutcomeRepository(nil).
		WithHealthRepository(nil).
		WithPubSub(nil)
	assert.Same(t, s, ret)
	assert.Equal(t, "pos-node-001", s.GetNodeID())

	// nil 通知器与探测器不覆盖已有实现
	s.WithNotifier(nil)
	s.WithProbe(nil)
	s.notifier.Warn("คำเตือนทดสอบ")
	assert.Contains(t, notifier.warns, "คำเตือนทดสอบ")
}

// TestService_ResolveEndpoint 测试经由门店配置的级联解析成功路径
func TestService_ResolveEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/health", r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	}))
	defer server.Close()

	config := NewDefaultServiceConfig().
		WithNodeID("pos-node-001").
		WithBranch(catalog.BranchConfig{
			BranchID:  "branch-001",
			LocalURLs: []string{server.URL},
		})
	s := newTestService(config)
	defer s.Close()

	result, err := s.ResolveEndpoint(context.Background())
	require.NoError(t, err)
	require.True(t, result.Succeeded())
	assert.False(t, result.Exhausted)
	assert.Equal(t, "branch-001-local-0", result.Endpoint.ID)
	assert.Equal(t, models.EndpointKindLocal, result.Endpoint.Kind)
}

// TestService_ResolveEndpoint_Exhausted 测试全部失败：结果值携带泰文提示并通知收银员
func TestService_ResolveEndpoint_Exhausted(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	notifier := &recordingNotifier{}
	config := NewDefaultServiceConfig().
		WithBranch(catalog.BranchConfig{
			BranchID:  "branch-002",
			LocalURLs: []string{server.URL},
			ServerURL: server.URL,
		})
	s := newTestService(config).WithNotifier(notifier)
	defer s.Close()

	result, err := s.ResolveEndpoint(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Exhausted)
	assert.Nil(t, result.Endpoint)
	assert.Len(t, result.Outcomes, 2)
	assert.Equal(t, "ไม่สามารถเชื่อมต่อกับบริการได้ กรุณาตรวจสอบการเชื่อมต่อ", result.UserMessage)
	assert.Contains(t, notifier.Errors(), result.UserMessage)
}

// TestService_ResolveEndpoint_NoEndpoints 测试空门店配置
func TestService_ResolveEndpoint_NoEndpoints(t *testing.T) {
	s := newTestService(NewDefaultServiceConfig().
		WithBranch(catalog.BranchConfig{BranchID: "branch-003"}))
	defer s.Close()

	result, err := s.ResolveEndpoint(context.Background())
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrNoEndpoints)
}

// TestService_EmitQueuesWhenDisconnected 测试未连接时发送事件自动暂存
func TestService_EmitQueuesWhenDisconnected(t *testing.T) {
	s := newTestService(nil)
	defer s.Close()

	err := s.Emit("order_created", []byte(`{"order_id":"ORD-001"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Realtime().PendingLen())
}

// TestService_OnEventOffEvent 测试事件处理器注册与注销
func TestService_OnEventOffEvent(t *testing.T) {
	s := newTestService(nil)
	defer s.Close()

	s.OnEvent("stock_updated", func(payload []byte) {})
	assert.True(t, s.Realtime().HasHandler("stock_updated"))

	s.OffEvent("stock_updated")
	assert.False(t, s.Realtime().HasHandler("stock_updated"))
}

// TestService_MonitorLifecycle 测试外设监控的启动、单例守卫与停止
func TestService_MonitorLifecycle(t *testing.T) {
	config := NewDefaultServiceConfig().
		WithMonitor(monitor.NewDefaultConfig().
			WithDeviceID("printer-001").
			WithInterval(30 * time.Millisecond))
	s := newTestService(config)
	defer s.Close()

	checker := monitor.CheckerFunc(func(ctx context.Context) (*models.DeviceHealth, error) {
		return &models.DeviceHealth{
			DeviceID:  "printer-001",
			Type:      models.DeviceTypePrinter,
			Status:    models.DeviceStatusOnline,
			CheckedAt: time.Now(),
		}, nil
	})

	require.NoError(t, s.StartMonitor(checker, monitor.AlwaysVisible{}))
	require.NotNil(t, s.Monitor())

	assert.Eventually(t, func() bool {
		return s.DeviceStatus() == models.DeviceStatusOnline
	}, 2*time.Second, 10*time.Millisecond)

	// 单例守卫：运行中不可重复启动
	err := s.StartMonitor(checker, nil)
	assert.ErrorIs(t, err, models.ErrMonitorRunning)

	s.StopMonitor()
	s.StopMonitor() // 幂等
	assert.False(t, s.Monitor().Running())
}

// TestService_PerformDeviceAction 测试设备操作：无监控器时直接执行
func TestService_PerformDeviceAction(t *testing.T) {
	s := newTestService(nil)
	defer s.Close()

	executed := false
	err := s.PerformDeviceAction(context.Background(), func(ctx context.Context) error {
		executed = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, executed)

	actionErr := errors.New("printer offline")
	err = s.PerformDeviceAction(context.Background(), func(ctx context.Context) error {
		return actionErr
	})
	assert.ErrorIs(t, err, actionErr)
}

// TestService_Close 测试关闭后实时通道不可用
func TestService_Close(t *testing.T) {
	s := newTestService(nil)
	s.Close()

	err := s.Emit("order_created", nil)
	assert.ErrorIs(t, err, models.ErrChannelClosed)
	assert.Error(t, s.GetContext().Err())
}
