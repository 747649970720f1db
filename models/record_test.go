/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-03-08
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\models\record_test.go
 * @Description: 解析结果持久化模型测试
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestResolveOutcomeRecord_TableName 测试表名
func TestResolveOutcomeRecord_TableName(t *testing.T) {
	assert.Equal(t, "poslink_resolve_outcomes", ResolveOutcomeRecord{}.TableName())
}

// TestNewResolveOutcomeRecord 测试从尝试结果构造持久化记录
func TestNewResolveOutcomeRecord(t *testing.T) {
	startedAt := time.Now()
	outcome := &AttemptOutcome{
		EndpointID: "branch-001-local-0",
		Kind:       EndpointKindLocal,
		URL:        "http://127.0.0.1:8331",
		StartedAt:  startedAt,
		Elapsed:    1500 * time.Millisecond,
		Success:    false,
		TimedOut:   true,
		Err:        "context deadline exceeded",
	}

	record := NewResolveOutcomeRecord("branch-001-1709870000", "branch-001", 1, outcome)

	assert.Equal(t, "branch-001-1709870000", record.ResolveID)
	assert.Equal(t, "branch-001", record.BranchID)
	assert.Equal(t, "branch-001-local-0", record.EndpointID)
	assert.Equal(t, "local", record.Kind)
	assert.Equal(t, "http://127.0.0.1:8331", record.URL)
	assert.Equal(t, 1, record.Priority)
	assert.Equal(t, startedAt, record.StartedAt)
	assert.Equal(t, int64(1500), record.ElapsedMs)
	assert.False(t, record.Success)
	assert.True(t, record.TimedOut)
	assert.Equal(t, "context deadline exceeded", record.Err)
}

// TestNewResolveOutcomeRecord_Success 测试成功尝试的记录
func TestNewResolveOutcomeRecord_Success(t *testing.T) {
	outcome := &AttemptOutcome{
		EndpointID: "branch-001-secure",
		Kind:       EndpointKindLocalSecure,
		URL:        "https://device.pos.local:8332",
		StartedAt:  time.Now(),
		Elapsed:    80 * time.Millisecond,
		Success:    true,
	}

	record := NewResolveOutcomeRecord("branch-001-1709870001", "branch-001", 0, outcome)

	assert.Equal(t, "local-secure", record.Kind)
	assert.True(t, record.Success)
	assert.False(t, record.TimedOut)
	assert.Empty(t, record.Err)
	assert.Equal(t, int64(80), record.ElapsedMs)
}
