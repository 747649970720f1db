/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-22
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\errors.go
 * @Description: 错误类型别名（从 models 包导入）
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package poslink

import (
	"github.com/kamalyes/go-poslink/models"
)

// 错误类型别名（从 models 包导入）
type ErrorType = models.ErrorType

// 级联解析错误码
const (
	ErrTypeNoEndpoints        = models.ErrTypeNoEndpoints
	ErrTypeAllEndpointsFailed = models.ErrTypeAllEndpointsFailed
	ErrTypeProbeFailed        = models.ErrTypeProbeFailed
	ErrTypeProbeRejected      = models.ErrTypeProbeRejected
	ErrTypeDuplicateEndpoint  = models.ErrTypeDuplicateEndpoint
	ErrTypeResolveCancelled   = models.ErrTypeResolveCancelled
)

// 实时通道错误码
const (
	ErrTypeChannelClosed       = models.ErrTypeChannelClosed
	ErrTypeChannelNotConnected = models.ErrTypeChannelNotConnected
	ErrTypeReconnectExhausted  = models.ErrTypeReconnectExhausted
	ErrTypeFallbackActive      = models.ErrTypeFallbackActive
	ErrTypePendingQueueFull    = models.ErrTypePendingQueueFull
	ErrTypeConnectTimeout      = models.ErrTypeConnectTimeout
	ErrTypePollFailed          = models.ErrTypePollFailed
)

// 外设监控错误码
const (
	ErrTypeMonitorRunning    = models.ErrTypeMonitorRunning
	ErrTypeMonitorStopped    = models.ErrTypeMonitorStopped
	ErrTypeDeviceCheckFailed = models.ErrTypeDeviceCheckFailed
)

// 错误变量别名（从 models 包导入）
var (
	ErrNoEndpoints        = models.ErrNoEndpoints
	ErrAllEndpointsFailed = models.ErrAllEndpointsFailed
	ErrResolveCancelled   = models.ErrResolveCancelled

	ErrChannelClosed       = models.ErrChannelClosed
	ErrChannelNotConnected = models.ErrChannelNotConnected
	ErrReconnectExhausted  = models.ErrReconnectExhausted
	ErrFallbackActive      = models.ErrFallbackActive
	ErrPendingQueueFull    = models.ErrPendingQueueFull

	ErrMonitorRunning = models.ErrMonitorRunning
	ErrMonitorStopped = models.ErrMonitorStopped

	ErrPubSubNotSet = models.ErrPubSubNotSet
)

// IsRetryableError 判断错误是否可以重试
func IsRetryableError(err error) bool {
	return models.IsRetryableError(err)
}

// IsFallbackError 判断是否为降级模式错误（需要显式 Reset 才能恢复）
func IsFallbackError(err error) bool {
	return models.IsFallbackError(err)
}
