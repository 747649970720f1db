/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-12
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\cascade\resolver.go
 * @Description: 级联故障转移解析器 - 按优先级顺序尝试候选端点
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package cascade

import (
	"context"
	"errors"
	"time"

	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-poslink/catalog"
	"github.com/kamalyes/go-poslink/models"
)

// UserMessageExhausted 所有端点均失败时面向收银员的泰文提示
const UserMessageExhausted = "ไม่สามารถเชื่อมต่อกับบริการได้ กรุณาตรวจสอบการเชื่อมต่อ"

// Probe 端点探测接口
// 实现方对单个端点执行一次健康探测，ctx 已绑定该端点的超时
type Probe interface {
	Check(ctx context.Context, endpoint *models.Endpoint) error
}

// ProbeFunc 函数式探测适配器
type ProbeFunc func(ctx context.Context, endpoint *models.Endpoint) error

// Check 实现 Probe 接口
func (f ProbeFunc) Check(ctx context.Context, endpoint *models.Endpoint) error {
	return f(ctx, endpoint)
}

// Resolver 级联解析器
// 无状态，可并发调用 Resolve
type Resolver struct {
	logger logger.ILogger
}

// NewResolver 创建级联解析器
func NewResolver(log logger.ILogger) *Resolver {
	if log == nil {
		log = logger.NewEmptyLogger()
	}
	return &Resolver{logger: log}
}

// Resolve 按优先级顺序依次尝试候选端点，首个成功的端点立即返回
// 所有端点均失败时返回 Exhausted=true 的结果值（不返回error），
// 并携带每次尝试的记录与面向用户的泰文提示
func (r *Resolver) Resolve(ctx context.Context, endpoints []models.Endpoint, probe Probe) (*models.ResolveResult, error) {
	if len(endpoints) == 0 {
		return nil, models.ErrNoEndpoints
	}

	// 解析器不信任调用方的排序，自行按优先级稳定排序
	sorted := make([]models.Endpoint, len(endpoints))
	copy(sorted, endpoints)
	catalog.Sort(sorted)

	result := &models.ResolveResult{
		Outcomes: make([]models.AttemptOutcome, 0, len(sorted)),
	}

	for i := range sorted {
		ep := &sorted[i]

		// 上下文取消时中止后续尝试
		if err := ctx.Err(); err != nil {
			return nil, models.ErrResolveCancelled
		}

		outcome := r.attempt(ctx, ep, probe)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Success {
			result.Endpoint = ep
			r.logger.InfoKV("级联解析成功",
				"endpoint_id", ep.ID,
				"kind", ep.Kind,
				"priority", ep.Priority,
				"elapsed", outcome.Elapsed,
				"attempts", len(result.Outcomes),
			)
			return result, nil
		}

		r.logger.WarnKV("端点尝试失败，切换下一候选",
			"endpoint_id", ep.ID,
			"kind", ep.Kind,
			"priority", ep.Priority,
			"error", outcome.Err,
		)
	}

	// 穷尽所有候选：以值的形式返回失败结果，调用方展示泰文提示
	result.Exhausted = true
	result.UserMessage = UserMessageExhausted
	r.logger.ErrorKV("级联解析穷尽所有候选端点",
		"attempts", len(result.Outcomes),
		"total_elapsed", result.TotalElapsed(),
	)
	return result, nil
}

// attempt 执行单个端点的探测，超时由端点自身的 Timeout 控制
func (r *Resolver) attempt(ctx context.Context, ep *models.Endpoint, probe Probe) models.AttemptOutcome {
	outcome := models.AttemptOutcome{
		EndpointID: ep.ID,
		Kind:       ep.Kind,
		URL:        ep.BaseURL,
		StartedAt:  time.Now(),
	}

	attemptCtx := ctx
	if ep.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, ep.Timeout)
		defer cancel()
	}

	err := probe.Check(attemptCtx, ep)
	outcome.Elapsed = time.Since(outcome.StartedAt)
	if err != nil {
		// 超时失败单独标记，便于排障时与拒绝/网络错误区分
		outcome.TimedOut = errors.Is(err, context.DeadlineExceeded) ||
			attemptCtx.Err() == context.DeadlineExceeded
		outcome.Err = err.Error()
		return outcome
	}
	outcome.Success = true
	return outcome
}
