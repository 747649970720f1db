/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-12
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-02
 * @FilePath: \go-poslink\models\record.go
 * @Description: 级联解析结果持久化模型（用于运维排障）
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"time"
)

// ResolveOutcomeRecord 级联尝试结果记录
// 每次级联解析的每个端点尝试写一条记录，供支持人员排查门店网络问题
type ResolveOutcomeRecord struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement;comment:自增主键" json:"id"`
	ResolveID string `gorm:"column:resolve_id;size:64;index;not null;comment:单次解析批次ID" json:"resolve_id"`
	BranchID  string `gorm:"column:branch_id;size:64;index;comment:门店ID" json:"branch_id"`

	// 端点信息
	EndpointID string `gorm:"column:endpoint_id;size:64;index;not null;comment:端点ID" json:"endpoint_id"`
	Kind       string `gorm:"column:kind;size:20;index;comment:端点类型(local/local-secure/proxy/server)" json:"kind"`
	URL        string `gorm:"column:url;size:255;comment:请求URL" json:"url"`
	Priority   int    `gorm:"column:priority;comment:端点优先级" json:"priority"`

	// 尝试结果
	StartedAt time.Time `gorm:"column:started_at;index;not null;comment:尝试开始时间" json:"started_at"`
	ElapsedMs int64     `gorm:"column:elapsed_ms;comment:耗时(毫秒)" json:"elapsed_ms"`
	Success   bool      `gorm:"column:success;index;comment:是否成功" json:"success"`
	TimedOut  bool      `gorm:"column:timed_out;comment:是否超时失败" json:"timed_out"`
	Err       string    `gorm:"column:err;type:text;comment:失败原因" json:"err,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;comment:记录创建时间" json:"created_at"`
}

// TableName 指定表名
func (ResolveOutcomeRecord) TableName() string {
	return "poslink_resolve_outcomes"
}

// NewResolveOutcomeRecord 从 AttemptOutcome 构造持久化记录
func NewResolveOutcomeRecord(resolveID, branchID string, priority int, o *AttemptOutcome) *ResolveOutcomeRecord {
	return &ResolveOutcomeRecord{
		ResolveID:  resolveID,
		BranchID:   branchID,
		EndpointID: o.EndpointID,
		Kind:       o.Kind.String(),
		URL:        o.URL,
		Priority:   priority,
		StartedAt:  o.StartedAt,
		ElapsedMs:  o.Elapsed.Milliseconds(),
		Success:    o.Success,
		TimedOut:   o.TimedOut,
		Err:        o.Err,
	}
}
