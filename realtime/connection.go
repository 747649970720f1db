/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-14
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\realtime\connection.go
 * @Description: 连接管理逻辑 - 有界重连、心跳与读协程
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package realtime

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jpillora/backoff"
	"github.com/kamalyes/go-poslink/models"
)

// Connect 建立连接
// 拨号失败时按退避策略重试，连续失败达到上限后进入降级轮询模式
// 并返回 ErrReconnectExhausted；降级模式需显式 Reset 才能再次连接
func (m *Manager) Connect(ctx context.Context) error {
	if m.Closed() {
		return models.ErrChannelClosed
	}
	if m.State() == models.ConnectionStateFallbackPolling {
		return models.ErrFallbackActive
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.State() == models.ConnectionStateConnected {
		return nil
	}
	if !m.setState(models.ConnectionStateConnecting) {
		return models.ErrChannelNotConnected
	}
	return m.connectLoop(ctx)
}

// connectLoop 有界重连循环
// 每次失败按退避延迟重试；连续失败 MaxReconnectAttempts 次后转入降级轮询
func (m *Manager) connectLoop(ctx context.Context) error {
	b := m.createBackoff()

	for attempt := 1; ; attempt++ {
		// 每次尝试都向 UI 层投影"第 N 次 / 共 M 次"
		if f := m.onReconnectAttempt.Load(); f != nil {
			f.(func(int, int))(attempt, m.config.MaxReconnectAttempts)
		}

		conn, err := m.dial(ctx)
		if err == nil {
			m.onConnectionSuccess(conn)
			return nil
		}

		m.logger.WarnKV("拨号失败",
			"attempt", attempt,
			"max_attempts", m.config.MaxReconnectAttempts,
			"url", m.config.URL,
			"error", err,
		)

		if attempt >= m.config.MaxReconnectAttempts {
			m.enterFallback()
			return models.ErrReconnectExhausted
		}

		delay := b.Duration()
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			m.setState(models.ConnectionStateDisconnected)
			return ctx.Err()
		case <-m.lifecycleCtx.Done():
			m.setState(models.ConnectionStateDisconnected)
			return models.ErrChannelClosed
		}
	}
}

// createBackoff 创建重连退避策略
func (m *Manager) createBackoff() *backoff.Backoff {
	return &backoff.Backoff{
		Min:    m.config.MinReconnectDelay,
		Max:    m.config.MaxReconnectDelay,
		Factor: m.config.ReconnectFactor,
		Jitter: true,
	}
}

// dial 执行单次拨号
// 拨号耗时超过慢阈值时触发告警（拨号继续，直到 ConnectTimeout）
func (m *Manager) dial(ctx context.Context) (*websocket.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, m.config.ConnectTimeout)
	defer cancel()

	start := time.Now()
	slowTimer := time.AfterFunc(m.config.SlowConnectWarnAfter, func() {
		elapsed := time.Since(start)
		m.logger.WarnKV("连接耗时超过慢阈值",
			"elapsed", elapsed,
			"threshold", m.config.SlowConnectWarnAfter,
		)
		if f := m.onSlowConnect.Load(); f != nil {
			f.(func(time.Duration))(elapsed)
		}
	})
	defer slowTimer.Stop()

	conn, _, err := m.dialer.DialContext(dialCtx, m.config.URL, nil)
	return conn, err
}

// onConnectionSuccess 连接成功后的处理
func (m *Manager) onConnectionSuccess(conn *websocket.Conn) {
	conn.SetReadLimit(m.config.MaxMessageSize)
	m.lastPongAt.Store(time.Now())
	conn.SetPongHandler(func(string) error {
		m.lastPongAt.Store(time.Now())
		return nil
	})

	m.setConn(conn)
	m.setState(models.ConnectionStateConnected)
	m.logger.InfoKV("实时通道已连接", "url", m.config.URL)

	// 补发断线期间暂存的消息
	m.flushPending()

	go m.readLoop(conn)
	go m.heartbeatLoop(conn)
}

// flushPending 按入队顺序补发暂存消息，过期消息丢弃并告警
// 每条消息至多补发一次：单条发送失败仅记录日志，不回队、不中断后续补发
func (m *Manager) flushPending() {
	valid, expired := m.pending.Drain(time.Now())
	if expired > 0 {
		m.logger.WarnKV("丢弃过期的暂存消息",
			"expired", expired,
			"max_age", m.config.PendingMaxAge,
		)
		if f := m.onPendingDropped.Load(); f != nil {
			f.(func(int))(expired)
		}
	}

	sent := 0
	for _, msg := range valid {
		if err := m.writeEvent(msg.Event, msg.Payload); err != nil {
			m.logger.WarnKV("暂存消息补发失败", "event", msg.Event, "error", err)
			continue
		}
		sent++
	}
	if len(valid) > 0 {
		m.logger.InfoKV("暂存消息补发完成", "sent", sent, "total", len(valid))
	}
}

// readLoop 读协程，持续读取并分发消息
func (m *Manager) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			m.handleReadError(conn, err)
			return
		}

		var msg wireMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			m.logger.WarnKV("忽略无法解析的消息", "error", err)
			continue
		}
		m.dispatch(msg.Event, msg.Payload)
	}
}

// handleReadError 处理读错误：非主动关闭时发起后台重连
func (m *Manager) handleReadError(conn *websocket.Conn, err error) {
	// 连接已被替换或管理器已关闭时不做处理
	if m.Closed() || m.currentConn() != conn {
		return
	}

	m.logger.WarnKV("实时通道断开", "error", err)
	m.setConn(nil)
	_ = conn.Close()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Closed() || m.State() != models.ConnectionStateConnected {
		return
	}
	if !m.setState(models.ConnectionStateConnecting) {
		return
	}

	go func() {
		_ = m.connectLoopGuarded()
	}()
}

// connectLoopGuarded 后台重连入口（持锁执行重连循环）
func (m *Manager) connectLoopGuarded() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Closed() || m.State() != models.ConnectionStateConnecting {
		return models.ErrChannelNotConnected
	}
	return m.connectLoop(m.lifecycleCtx)
}

// heartbeatLoop 心跳协程
// 周期性发送 Ping；Pong 缺失仅记录告警，绝不主动断开连接
func (m *Manager) heartbeatLoop(conn *websocket.Conn) {
	ticker := time.NewTicker(m.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if m.Closed() || m.currentConn() != conn {
				return
			}

			m.writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil,
				time.Now().Add(m.config.WriteTimeout))
			m.writeMu.Unlock()
			if err != nil {
				m.logger.WarnKV("心跳发送失败", "error", err)
				return
			}

			m.checkPong()
		case <-m.lifecycleCtx.Done():
			return
		}
	}
}

// checkPong 检查 Pong 响应间隔，超过两个心跳周期仅告警
func (m *Manager) checkPong() {
	last, ok := m.lastPongAt.Load().(time.Time)
	if !ok {
		return
	}
	since := time.Since(last)
	if since > 2*m.config.HeartbeatInterval {
		m.logger.WarnKV("心跳未收到响应（连接保持，仅告警）",
			"since_last_pong", since,
		)
		if f := m.onHeartbeatMiss.Load(); f != nil {
			f.(func(time.Duration))(since)
		}
	}
}

// Close 关闭管理器，释放所有后台协程
// 关闭后 Emit 与 Connect 均返回 ErrChannelClosed
func (m *Manager) Close() {
	if !atomic.CompareAndSwapInt32(&m.closed, 0, 1) {
		return
	}

	m.lifecycleCancel()
	m.stopFallback()

	m.connMu.Lock()
	if m.conn != nil {
		_ = m.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		_ = m.conn.Close()
		m.conn = nil
	}
	m.connMu.Unlock()

	m.setState(models.ConnectionStateDisconnected)
	m.logger.InfoKV("实时通道管理器已关闭")
}
