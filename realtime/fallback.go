/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-14
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\realtime\fallback.go
 * @Description: 降级轮询模式 - 重连耗尽后的兜底通道
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kamalyes/go-poslink/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// maxPollBodySize 轮询响应体读取上限
const maxPollBodySize = 4 * 1024 * 1024

// pollResponse 降级轮询响应结构
// 轮询端点返回 {"updates": [...]}，没有 success 信封；
// 仅非 2xx 或无法解析的响应计为轮询失败
type pollResponse struct {
	Updates []models.StockUpdate `json:"updates,omitempty"` // 库存变更列表
}

// enterFallback 进入降级轮询模式（终态，需显式 Reset 恢复）
func (m *Manager) enterFallback() {
	if !m.setState(models.ConnectionStateFallbackPolling) {
		return
	}

	m.logger.ErrorKV("重连次数耗尽，进入降级轮询模式",
		"max_attempts", m.config.MaxReconnectAttempts,
		"poll_url", m.config.PollURL,
		"poll_interval", m.config.PollInterval,
	)

	if m.config.PollURL == "" {
		m.logger.WarnKV("未配置轮询地址，降级模式下无库存更新")
		return
	}

	pollCtx, cancel := context.WithCancel(m.lifecycleCtx)
	m.pollCancelMu.Lock()
	m.pollCancel = cancel
	m.pollCancelMu.Unlock()

	go m.runFallbackPolling(pollCtx)
}

// runFallbackPolling 降级轮询循环
// 周期性拉取库存更新，合成 stock_updated 事件分发给已注册的处理器
func (m *Manager) runFallbackPolling(ctx context.Context) {
	// 进入降级模式后立即执行首次轮询
	m.pollOnce(ctx)

	ticker := time.NewTicker(m.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.pollOnce(ctx)
		case <-ctx.Done():
			m.logger.InfoKV("降级轮询已停止")
			return
		}
	}
}

// pollOnce 执行单次轮询并分发合成事件
func (m *Manager) pollOnce(ctx context.Context) {
	updates, err := m.fetchStockUpdates(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.WarnKV("降级轮询失败", "error", err)
		return
	}

	for i := range updates {
		payload, err := json.Marshal(&updates[i])
		if err != nil {
			continue
		}
		m.dispatch(models.EventStockUpdated, payload)
	}

	if len(updates) > 0 {
		m.logger.DebugKV("降级轮询合成库存事件", "count", len(updates))
	}
}

// fetchStockUpdates 拉取库存更新
func (m *Manager) fetchStockUpdates(ctx context.Context) ([]models.StockUpdate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.config.PollURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if m.config.AuthToken != "" {
		req.Header.Set("Authorization", m.config.AuthToken)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errorx.NewError(models.ErrTypePollFailed, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPollBodySize))
	if err != nil {
		return nil, err
	}

	var pr pollResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, errorx.NewError(models.ErrTypePollFailed, err.Error())
	}
	return pr.Updates, nil
}

// stopFallback 停止降级轮询协程
func (m *Manager) stopFallback() {
	m.pollCancelMu.Lock()
	if m.pollCancel != nil {
		m.pollCancel()
		m.pollCancel = nil
	}
	m.pollCancelMu.Unlock()
}

// Reset 将降级轮询终态恢复为可连接状态
// 停止轮询协程并转换到 Disconnected，之后可再次调用 Connect；
// 暂存队列保留（仍在时效内的消息在下次连接成功后补发）
func (m *Manager) Reset() error {
	if m.Closed() {
		return models.ErrChannelClosed
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.State() != models.ConnectionStateFallbackPolling {
		return nil
	}

	m.stopFallback()
	m.setState(models.ConnectionStateDisconnected)
	m.logger.InfoKV("实时通道已重置，可重新发起连接")
	return nil
}
