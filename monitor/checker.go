/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-16
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\monitor\checker.go
 * @Description: HTTP 设备健康检查实现
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package monitor

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/kamalyes/go-poslink/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// maxStatusBodySize 状态响应体读取上限
const maxStatusBodySize = 64 * 1024

// statusResponse 设备状态响应结构
type statusResponse struct {
	Success bool   `json:"success"`          // 请求是否成功
	Status  string `json:"status"`           // 设备状态(online/offline/error)
	Detail  string `json:"detail,omitempty"` // 状态详情
}

// HTTPChecker 基于 HTTP GET 的设备健康检查器
// 向设备代理的状态接口发起请求并解析状态
type HTTPChecker struct {
	client     *http.Client
	statusURL  string
	deviceID   string
	deviceType models.DeviceType
}

// NewHTTPChecker 创建 HTTP 设备检查器
func NewHTTPChecker(client *http.Client, statusURL, deviceID string, deviceType models.DeviceType) *HTTPChecker {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPChecker{
		client:     client,
		statusURL:  statusURL,
		deviceID:   deviceID,
		deviceType: deviceType,
	}
}

// Check 执行一次设备健康检查
func (c *HTTPChecker) Check(ctx context.Context) (*models.DeviceHealth, error) {
	start := time.Now()
	health := &models.DeviceHealth{
		DeviceID:  c.deviceID,
		Type:      c.deviceType,
		CheckedAt: start,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusURL, nil)
	if err != nil {
		return nil, errorx.WrapError("build status request", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		health.Status = models.DeviceStatusOffline
		health.Detail = err.Error()
		health.Latency = time.Since(start)
		return health, nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxStatusBodySize))
	if err != nil {
		return nil, errorx.WrapError("read status response", err)
	}

	var sr statusResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, errorx.WrapError("decode status response", err)
	}

	health.Latency = time.Since(start)
	health.Detail = sr.Detail
	health.Status = parseDeviceStatus(sr)
	return health, nil
}

// parseDeviceStatus 将响应映射为设备状态
func parseDeviceStatus(sr statusResponse) models.DeviceStatus {
	if !sr.Success {
		return models.DeviceStatusError
	}
	switch sr.Status {
	case "online", "ready":
		return models.DeviceStatusOnline
	case "offline":
		return models.DeviceStatusOffline
	case "error":
		return models.DeviceStatusError
	default:
		return models.DeviceStatusUnknown
	}
}
