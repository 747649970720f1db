/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-10
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-02
 * @FilePath: \go-poslink\models\endpoint.go
 * @Description: 级联端点与解析结果定义
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

import (
	"time"
)

// Endpoint 级联候选端点
type Endpoint struct {
	ID           string        `json:"id"`            // 端点唯一标识
	Kind         EndpointKind  `json:"kind"`          // 端点类型
	BaseURL      string        `json:"base_url"`      // 基础URL
	Priority     int           `json:"priority"`      // 优先级（数值越小越优先）
	Timeout      time.Duration `json:"timeout"`       // 单次尝试超时
	RequiresAuth bool          `json:"requires_auth"` // 是否需要携带认证凭据
}

// AttemptOutcome 单次连接尝试结果
type AttemptOutcome struct {
	EndpointID string        `json:"endpoint_id"`   // 端点ID
	Kind       EndpointKind  `json:"kind"`          // 端点类型
	URL        string        `json:"url"`           // 实际请求URL
	StartedAt  time.Time     `json:"started_at"`    // 尝试开始时间
	Elapsed    time.Duration `json:"elapsed"`       // 耗时
	Success    bool          `json:"success"`       // 是否成功
	TimedOut   bool          `json:"timed_out"`     // 是否因超时而失败
	Err        string        `json:"err,omitempty"` // 失败原因
}

// ResolveResult 级联解析结果
// Exhausted 为 true 表示所有候选端点均失败，UserMessage 携带面向用户的泰文提示
type ResolveResult struct {
	Endpoint    *Endpoint        `json:"endpoint,omitempty"`     // 成功的端点（失败时为 nil）
	Outcomes    []AttemptOutcome `json:"outcomes"`               // 全部尝试记录
	Exhausted   bool             `json:"exhausted"`              // 是否穷尽所有候选
	UserMessage string           `json:"user_message,omitempty"` // 用户提示（泰文）
}

// Succeeded 检查解析是否成功
func (r *ResolveResult) Succeeded() bool {
	return !r.Exhausted && r.Endpoint != nil
}

// TotalElapsed 计算全部尝试的累计耗时
func (r *ResolveResult) TotalElapsed() time.Duration {
	var total time.Duration
	for _, o := range r.Outcomes {
		total += o.Elapsed
	}
	return total
}

// FailedOutcomes 返回失败的尝试记录
func (r *ResolveResult) FailedOutcomes() []AttemptOutcome {
	var failed []AttemptOutcome
	for _, o := range r.Outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}
