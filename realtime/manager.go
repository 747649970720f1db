/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-14
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\realtime\manager.go
 * @Description: 实时通道管理器 - 状态机、回调与消息收发
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-poslink/models"
	"github.com/kamalyes/go-toolbox/pkg/syncx"
)

// Handler 事件处理函数
type Handler func(payload []byte)

// wireMessage 通道消息结构
type wireMessage struct {
	Event   string          `json:"event"`             // 事件名
	Payload json.RawMessage `json:"payload,omitempty"` // 事件负载
}

// Manager 实时通道管理器
// 封装 WebSocket 连接的有界重连、降级轮询、断线暂存与事件分发
type Manager struct {
	mu     sync.Mutex // 保护连接生命周期操作
	config *Config
	logger logger.ILogger
	dialer *websocket.Dialer

	stateMachine *syncx.StateMachine[models.ConnectionState]

	connMu  sync.RWMutex
	conn    *websocket.Conn
	writeMu sync.Mutex

	// 事件处理器注册表，跨断线/重连/降级保持不变
	handlersMu sync.RWMutex
	handlers   map[string]Handler

	pending    *PendingQueue
	httpClient *http.Client

	// 生命周期上下文，Close 时取消所有后台协程
	lifecycleCtx    context.Context
	lifecycleCancel context.CancelFunc

	// 降级轮询协程的取消函数（Reset 时使用）
	pollCancelMu sync.Mutex
	pollCancel   context.CancelFunc

	closed     int32
	lastPongAt atomic.Value // time.Time

	// 回调函数
	onStateChange      atomic.Value // func(old, new models.ConnectionState)
	onSlowConnect      atomic.Value // func(elapsed time.Duration)
	onPendingDropped   atomic.Value // func(count int)
	onHeartbeatMiss    atomic.Value // func(sinceLastPong time.Duration)
	onReconnectAttempt atomic.Value // func(attempt, max int)
}

// NewManager 创建实时通道管理器
func NewManager(config *Config, log logger.ILogger) *Manager {
	if config == nil {
		config = NewDefaultConfig()
	}
	config.Validate()
	if log == nil {
		log = logger.NewEmptyLogger()
	}

	// 初始化状态机，配置允许的状态转换
	sm := syncx.NewStateMachine(models.ConnectionStateDisconnected)
	sm.AllowTransitions(models.ConnectionStateDisconnected, models.ConnectionStateConnecting)
	sm.AllowTransitions(models.ConnectionStateConnecting, models.ConnectionStateConnected,
		models.ConnectionStateDisconnected, models.ConnectionStateFallbackPolling)
	sm.AllowTransitions(models.ConnectionStateConnected, models.ConnectionStateConnecting,
		models.ConnectionStateDisconnected)
	sm.AllowTransitions(models.ConnectionStateFallbackPolling, models.ConnectionStateDisconnected)

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		config:          config,
		logger:          log,
		dialer:          websocket.DefaultDialer,
		stateMachine:    sm,
		handlers:        make(map[string]Handler),
		pending:         NewPendingQueue(config.PendingCapacity, config.PendingMaxAge),
		httpClient:      &http.Client{Timeout: 10 * time.Second},
		lifecycleCtx:    ctx,
		lifecycleCancel: cancel,
	}
}

// State 返回当前连接状态
func (m *Manager) State() models.ConnectionState {
	return m.stateMachine.CurrentState()
}

// IsConnected 检查是否已连接
func (m *Manager) IsConnected() bool {
	return m.State() == models.ConnectionStateConnected
}

// Closed 检查管理器是否已关闭
func (m *Manager) Closed() bool {
	return atomic.LoadInt32(&m.closed) == 1
}

// On 注册事件处理器
// 处理器注册表在断线、重连与降级轮询期间保持不变
func (m *Manager) On(event string, handler Handler) {
	m.handlersMu.Lock()
	m.handlers[event] = handler
	m.handlersMu.Unlock()
}

// Off 注销事件处理器
func (m *Manager) Off(event string) {
	m.handlersMu.Lock()
	delete(m.handlers, event)
	m.handlersMu.Unlock()
}

// HasHandler 检查事件是否已注册处理器
func (m *Manager) HasHandler(event string) bool {
	m.handlersMu.RLock()
	defer m.handlersMu.RUnlock()
	_, ok := m.handlers[event]
	return ok
}

// OnStateChange 设置状态变更回调
func (m *Manager) OnStateChange(f func(old, new models.ConnectionState)) {
	m.onStateChange.Store(f)
}

// OnSlowConnect 设置拨号慢告警回调
func (m *Manager) OnSlowConnect(f func(elapsed time.Duration)) {
	m.onSlowConnect.Store(f)
}

// OnPendingDropped 设置过期消息丢弃回调
func (m *Manager) OnPendingDropped(f func(count int)) {
	m.onPendingDropped.Store(f)
}

// OnHeartbeatMiss 设置心跳缺失回调（仅告知，不会触发断开）
func (m *Manager) OnHeartbeatMiss(f func(sinceLastPong time.Duration)) {
	m.onHeartbeatMiss.Store(f)
}

// OnReconnectAttempt 设置重连尝试回调
// 每次拨号前触发，参数为当前尝试次数与上限，供 UI 层渲染连接进度
func (m *Manager) OnReconnectAttempt(f func(attempt, max int)) {
	m.onReconnectAttempt.Store(f)
}

// HasOnStateChangeCallback 检查是否设置了状态变更回调
func (m *Manager) HasOnStateChangeCallback() bool {
	return m.onStateChange.Load() != nil
}

// PendingLen 返回当前待发队列长度
func (m *Manager) PendingLen() int {
	return m.pending.Len()
}

// PendingDropped 返回累计丢弃的待发消息数
func (m *Manager) PendingDropped() int64 {
	return m.pending.Dropped()
}

// Emit 发送事件
// 已连接时直接写入通道；未连接（含降级轮询）时入队暂存，
// 重连成功后按入队顺序补发
func (m *Manager) Emit(event string, payload []byte) error {
	if m.Closed() {
		return models.ErrChannelClosed
	}

	if m.IsConnected() {
		if err := m.writeEvent(event, payload); err == nil {
			return nil
		}
		// 写失败视同断线，转入暂存
	}

	if err := m.pending.Enqueue(event, payload); err != nil {
		m.logger.WarnKV("待发队列已满，消息被丢弃", "event", event)
		return err
	}
	m.logger.DebugKV("通道未连接，消息已暂存",
		"event", event,
		"pending", m.pending.Len(),
	)
	return nil
}

// writeEvent 将事件写入 WebSocket 连接
func (m *Manager) writeEvent(event string, payload []byte) error {
	m.connMu.RLock()
	conn := m.conn
	m.connMu.RUnlock()
	if conn == nil {
		return models.ErrChannelNotConnected
	}

	msg := wireMessage{Event: event, Payload: payload}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(m.config.WriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// dispatch 将事件分发给已注册的处理器
func (m *Manager) dispatch(event string, payload []byte) {
	m.handlersMu.RLock()
	handler := m.handlers[event]
	m.handlersMu.RUnlock()

	if handler == nil {
		m.logger.DebugKV("事件无处理器，已忽略", "event", event)
		return
	}
	handler(payload)
}

// setState 执行状态转换并触发状态变更回调
func (m *Manager) setState(target models.ConnectionState) bool {
	old := m.stateMachine.CurrentState()
	if old == target {
		return true
	}
	if err := m.stateMachine.TransitionTo(target); err != nil {
		m.logger.WarnKV("状态转换被拒绝",
			"from", old,
			"to", target,
			"error", err,
		)
		return false
	}
	if f := m.onStateChange.Load(); f != nil {
		f.(func(models.ConnectionState, models.ConnectionState))(old, target)
	}
	return true
}

// currentConn 返回当前连接
func (m *Manager) currentConn() *websocket.Conn {
	m.connMu.RLock()
	defer m.connMu.RUnlock()
	return m.conn
}

// setConn 替换当前连接
func (m *Manager) setConn(conn *websocket.Conn) {
	m.connMu.Lock()
	m.conn = conn
	m.connMu.Unlock()
}
