/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-10
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-02
 * @FilePath: \go-poslink\models\errors.go
 * @Description: POS 连接核心错误定义 - 基于errorx.BaseError模式
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

// 错误类型定义，基于errorx.ErrorType
type ErrorType = errorx.ErrorType

// POS 连接核心错误码常量定义
// 使用 82xxx 区间，避免与其他包冲突
const (
	// 级联解析错误 (82100-82199)
	ErrTypeNoEndpoints        ErrorType = 82101 // 未配置任何候选端点
	ErrTypeAllEndpointsFailed ErrorType = 82102 // 所有候选端点均失败
	ErrTypeProbeFailed        ErrorType = 82103 // 端点探测失败
	ErrTypeProbeRejected      ErrorType = 82104 // 端点返回业务失败
	ErrTypeDuplicateEndpoint  ErrorType = 82105 // 端点ID重复
	ErrTypeResolveCancelled   ErrorType = 82106 // 解析被上下文取消

	// 实时通道错误 (82200-82299)
	ErrTypeChannelClosed       ErrorType = 82201 // 通道已关闭
	ErrTypeChannelNotConnected ErrorType = 82202 // 通道未连接
	ErrTypeReconnectExhausted  ErrorType = 82203 // 重连次数耗尽
	ErrTypeFallbackActive      ErrorType = 82204 // 已处于降级轮询模式
	ErrTypePendingQueueFull    ErrorType = 82205 // 待发队列已满
	ErrTypeConnectTimeout      ErrorType = 82206 // 连接超时
	ErrTypePollFailed          ErrorType = 82207 // 降级轮询失败

	// 外设监控错误 (82300-82399)
	ErrTypeMonitorRunning    ErrorType = 82301 // 监控器已在运行
	ErrTypeMonitorStopped    ErrorType = 82302 // 监控器已停止
	ErrTypeDeviceCheckFailed ErrorType = 82303 // 设备检查失败

	// 事件发布错误 (82400-82499)
	ErrTypePubSubNotSet         ErrorType = 82401 // PubSub未设置
	ErrTypeEventSerializeFailed ErrorType = 82402 // 事件序列化失败

	// 仓库错误 (82500-82599)
	ErrTypeRecordNotFound   ErrorType = 82501 // 记录未找到
	ErrTypeRepositoryClosed ErrorType = 82502 // 仓库已关闭
)

// registerErrors 初始化所有错误类型注册
// 注意：在运行多个测试包时，可能会看到 "ErrorType XXX is already registered" 的警告信息
// 这是正常现象，errorx包内部会忽略重复注册
// 通过包变量触发注册，确保先于下方错误变量的初始化执行
var _ = registerErrors()

func registerErrors() bool {
	// 注册级联解析错误
	errorx.RegisterError(ErrTypeNoEndpoints, "no candidate endpoints configured")
	errorx.RegisterError(ErrTypeAllEndpointsFailed, "all candidate endpoints failed")
	errorx.RegisterError(ErrTypeProbeFailed, "endpoint probe failed: %s")
	errorx.RegisterError(ErrTypeProbeRejected, "endpoint rejected request: %s")
	errorx.RegisterError(ErrTypeDuplicateEndpoint, "duplicate endpoint id: %s")
	errorx.RegisterError(ErrTypeResolveCancelled, "resolve cancelled")

	// 注册实时通道错误
	errorx.RegisterError(ErrTypeChannelClosed, "realtime channel closed")
	errorx.RegisterError(ErrTypeChannelNotConnected, "realtime channel not connected")
	errorx.RegisterError(ErrTypeReconnectExhausted, "reconnect attempts exhausted")
	errorx.RegisterError(ErrTypeFallbackActive, "fallback polling active, reset required")
	errorx.RegisterError(ErrTypePendingQueueFull, "pending queue is full")
	errorx.RegisterError(ErrTypeConnectTimeout, "connect timeout")
	errorx.RegisterError(ErrTypePollFailed, "fallback poll failed: %s")

	// 注册外设监控错误
	errorx.RegisterError(ErrTypeMonitorRunning, "device monitor already running")
	errorx.RegisterError(ErrTypeMonitorStopped, "device monitor stopped")
	errorx.RegisterError(ErrTypeDeviceCheckFailed, "device check failed")

	// 注册事件发布错误
	errorx.RegisterError(ErrTypePubSubNotSet, "pubsub instance is not set")
	errorx.RegisterError(ErrTypeEventSerializeFailed, "event serialize failed")

	// 注册仓库错误
	errorx.RegisterError(ErrTypeRecordNotFound, "record not found: %s")
	errorx.RegisterError(ErrTypeRepositoryClosed, "repository closed")
	return true
}

// 级联解析错误变量
var (
	ErrNoEndpoints        = errorx.NewError(ErrTypeNoEndpoints)
	ErrAllEndpointsFailed = errorx.NewError(ErrTypeAllEndpointsFailed)
	ErrResolveCancelled   = errorx.NewError(ErrTypeResolveCancelled)
)

// 实时通道错误变量
var (
	ErrChannelClosed       = errorx.NewError(ErrTypeChannelClosed)
	ErrChannelNotConnected = errorx.NewError(ErrTypeChannelNotConnected)
	ErrReconnectExhausted  = errorx.NewError(ErrTypeReconnectExhausted)
	ErrFallbackActive      = errorx.NewError(ErrTypeFallbackActive)
	ErrPendingQueueFull    = errorx.NewError(ErrTypePendingQueueFull)
)

// 外设监控错误变量
var (
	ErrMonitorRunning = errorx.NewError(ErrTypeMonitorRunning)
	ErrMonitorStopped = errorx.NewError(ErrTypeMonitorStopped)
)

// 事件发布错误变量
var (
	ErrPubSubNotSet = errorx.NewError(ErrTypePubSubNotSet)
)

// 仓库错误变量
var (
	ErrRepositoryClosed = errorx.NewError(ErrTypeRepositoryClosed)
)

// IsRetryableError 判断错误是否可以重试
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errxErr, ok := err.(interface{ GetType() ErrorType }); ok {
		return IsRetryableErrorType(errxErr.GetType())
	}
	switch err {
	case ErrChannelNotConnected, ErrPendingQueueFull:
		return true
	default:
		return false
	}
}

// IsRetryableErrorType 判断错误类型是否可以重试
func IsRetryableErrorType(errType ErrorType) bool {
	switch errType {
	case ErrTypeProbeFailed, ErrTypeChannelNotConnected, ErrTypeConnectTimeout,
		ErrTypePendingQueueFull, ErrTypePollFailed, ErrTypeDeviceCheckFailed:
		return true
	default:
		return false
	}
}

// IsFallbackError 判断是否为降级模式错误（需要显式 Reset 才能恢复）
func IsFallbackError(err error) bool {
	if err == nil {
		return false
	}
	if errxErr, ok := err.(interface{ GetType() ErrorType }); ok {
		errType := errxErr.GetType()
		return errType == ErrTypeFallbackActive || errType == ErrTypeReconnectExhausted
	}
	return err == ErrFallbackActive || err == ErrReconnectExhausted
}
