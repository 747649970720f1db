/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-12
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-12
 * @FilePath: \go-poslink\cascade\probe.go
 * @Description: HTTP 端点探测实现
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package cascade

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/kamalyes/go-poslink/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
)

// DefaultHealthPath 默认健康检查路径
const DefaultHealthPath = "/api/health"

// ActionHealthCheck 认证端点探测请求体中的动作标识
const ActionHealthCheck = "health-check"

// maxProbeBodySize 探测响应体读取上限
const maxProbeBodySize = 64 * 1024

// Envelope 端点响应信封
// 端点必须返回 {"success": true} 才视为可用，HTTP 2xx 但 success=false 同样计为失败
type Envelope struct {
	Success bool   `json:"success"`         // 业务是否成功
	Error   string `json:"error,omitempty"` // 业务错误信息
}

// probeBody 认证端点的探测请求体
type probeBody struct {
	BranchCode string `json:"branchCode,omitempty"` // 门店编码
	Action     string `json:"action,omitempty"`     // 动作标识
}

// HTTPProbe 基于 HTTP 的端点探测器
// 本地设备代理走 GET；需要认证的端点（安全代理、远端服务器）走 POST，
// 携带 Bearer 令牌、X-Branch-Code 头与 {branchCode, action} 请求体
type HTTPProbe struct {
	client     *http.Client
	healthPath string
	authToken  string
	branchCode string
}

// NewHTTPProbe 创建 HTTP 探测器
// 参数:
//   - client: HTTP 客户端，传 nil 使用默认客户端（超时由解析器通过 ctx 控制）
//   - healthPath: 健康检查路径，空串使用默认值
func NewHTTPProbe(client *http.Client, healthPath string) *HTTPProbe {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPProbe{
		client:     client,
		healthPath: mathx.IF(healthPath == "", DefaultHealthPath, healthPath),
	}
}

// WithAuth 设置认证令牌与门店编码并返回当前探测器
// 仅对 RequiresAuth 的端点生效
func (p *HTTPProbe) WithAuth(token, branchCode string) *HTTPProbe {
	p.authToken = token
	p.branchCode = branchCode
	return p
}

// Check 对端点执行一次健康探测
func (p *HTTPProbe) Check(ctx context.Context, endpoint *models.Endpoint) error {
	req, err := p.buildRequest(ctx, endpoint)
	if err != nil {
		return errorx.WrapError("build probe request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return errorx.WrapError("probe request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorx.NewError(models.ErrTypeProbeFailed, fmt.Sprintf("unexpected status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBodySize))
	if err != nil {
		return errorx.WrapError("read probe response", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errorx.WrapError("decode probe response", err)
	}
	if !envelope.Success {
		return errorx.NewError(models.ErrTypeProbeRejected, envelope.Error)
	}
	return nil
}

// buildRequest 按端点的认证要求构建探测请求
func (p *HTTPProbe) buildRequest(ctx context.Context, endpoint *models.Endpoint) (*http.Request, error) {
	target := endpoint.BaseURL + p.healthPath

	if !endpoint.RequiresAuth {
		return http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	}

	payload, err := json.Marshal(probeBody{
		BranchCode: p.branchCode,
		Action:     ActionHealthCheck,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.authToken)
	}
	if p.branchCode != "" {
		req.Header.Set("X-Branch-Code", url.QueryEscape(p.branchCode))
	}
	return req, nil
}
