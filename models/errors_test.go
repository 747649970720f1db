/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-03-08
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\models\errors_test.go
 * @Description: 错误定义测试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"errors"
	"testing"

	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/stretchr/testify/assert"
)

// TestErrorVariables 测试预定义错误变量
func TestErrorVariables(t *testing.T) {
	assert.Error(t, ErrNoEndpoints)
	assert.Error(t, ErrChannelClosed)
	assert.Error(t, ErrChannelNotConnected)
	assert.Error(t, ErrReconnectExhausted)
	assert.Error(t, ErrFallbackActive)
	assert.Error(t, ErrPendingQueueFull)
	assert.Error(t, ErrMonitorRunning)
	assert.Error(t, ErrPubSubNotSet)
}

// TestErrorTypes 测试错误类型携带正确的类型码
func TestErrorTypes(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected ErrorType
	}{
		{"无端点", ErrNoEndpoints, ErrTypeNoEndpoints},
		{"通道已关闭", ErrChannelClosed, ErrTypeChannelClosed},
		{"通道未连接", ErrChannelNotConnected, ErrTypeChannelNotConnected},
		{"重连耗尽", ErrReconnectExhausted, ErrTypeReconnectExhausted},
		{"降级模式", ErrFallbackActive, ErrTypeFallbackActive},
		{"队列已满", ErrPendingQueueFull, ErrTypePendingQueueFull},
		{"监控器运行中", ErrMonitorRunning, ErrTypeMonitorRunning},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			typed, ok := tc.err.(interface{ GetType() ErrorType })
			assert.True(t, ok, "错误应携带类型码")
			assert.Equal(t, tc.expected, typed.GetType())
		})
	}
}

// TestErrorWithArgs 测试带参数的错误消息格式化
func TestErrorWithArgs(t *testing.T) {
	err := errorx.NewError(ErrTypeDuplicateEndpoint, "branch-001-local-0")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "branch-001-local-0")
}

// TestIsRetryableError 测试可重试错误判断
func TestIsRetryableError(t *testing.T) {
	// 可重试
	assert.True(t, IsRetryableError(ErrChannelNotConnected))
	assert.True(t, IsRetryableError(ErrPendingQueueFull))
	assert.True(t, IsRetryableError(errorx.NewError(ErrTypeProbeFailed)))
	assert.True(t, IsRetryableError(errorx.NewError(ErrTypePollFailed)))

	// 不可重试
	assert.False(t, IsRetryableError(nil))
	assert.False(t, IsRetryableError(ErrChannelClosed))
	assert.False(t, IsRetryableError(ErrReconnectExhausted))
	assert.False(t, IsRetryableError(errors.New("some random error")))
}

// TestIsRetryableErrorType 测试可重试错误类型判断
func TestIsRetryableErrorType(t *testing.T) {
	assert.True(t, IsRetryableErrorType(ErrTypeProbeFailed))
	assert.True(t, IsRetryableErrorType(ErrTypeChannelNotConnected))
	assert.True(t, IsRetryableErrorType(ErrTypeConnectTimeout))
	assert.True(t, IsRetryableErrorType(ErrTypeDeviceCheckFailed))

	assert.False(t, IsRetryableErrorType(ErrTypeChannelClosed))
	assert.False(t, IsRetryableErrorType(ErrTypeFallbackActive))
	assert.False(t, IsRetryableErrorType(ErrTypeNoEndpoints))
}

// TestIsFallbackError 测试降级模式错误判断
// 降级模式错误需要显式 Reset 才能恢复，不应自动重试
func TestIsFallbackError(t *testing.T) {
	assert.True(t, IsFallbackError(ErrFallbackActive))
	assert.True(t, IsFallbackError(ErrReconnectExhausted))

	assert.False(t, IsFallbackError(nil))
	assert.False(t, IsFallbackError(ErrChannelClosed))
	assert.False(t, IsFallbackError(ErrChannelNotConnected))
	assert.False(t, IsFallbackError(errors.New("other")))
}
