/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-12
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-02
 * @FilePath: \go-poslink\catalog\catalog.go
 * @Description: 级联候选端点构建
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kamalyes/go-poslink/models"
	"github.com/kamalyes/go-toolbox/pkg/errorx"
)

const (
	// DefaultLocalTimeout 本地端点默认超时
	DefaultLocalTimeout = 5 * time.Second
	// DefaultSecureTimeout HTTPS安全端点默认超时
	DefaultSecureTimeout = 8 * time.Second
	// DefaultServerTimeout 远端服务器默认超时
	DefaultServerTimeout = 10 * time.Second
	// ServerFallbackPriority 远端服务器兜底优先级
	ServerFallbackPriority = 999
	// SecurePriority HTTPS安全端点优先级（最优先）
	SecurePriority = 0
)

// BranchConfig 门店端点配置
type BranchConfig struct {
	BranchID   string   `json:"branch_id"`   // 门店ID
	LocalURLs  []string `json:"local_urls"`  // 本地设备代理地址列表（按偏好排序）
	SecureURL  string   `json:"secure_url"`  // HTTPS安全代理地址（页面为HTTPS时必须）
	ServerURL  string   `json:"server_url"`  // 远端服务器兜底地址
	PageSecure bool     `json:"page_secure"` // 收银页面是否为HTTPS
}

// Build 根据门店配置构建级联候选端点列表
// 规则：
//   - 页面为HTTPS时，安全代理端点排在最前（优先级0，超时8秒）
//   - 本地端点按配置顺序依次排列（超时5秒）
//   - 远端服务器始终作为兜底（优先级999）
//   - 安全代理与远端服务器经主服务器转发，需携带认证凭据；本地端点不需要
//
// 返回的列表已按优先级升序排序，相同优先级保持配置顺序
func Build(branch BranchConfig) ([]models.Endpoint, error) {
	var endpoints []models.Endpoint

	if branch.PageSecure && strings.TrimSpace(branch.SecureURL) != "" {
		endpoints = append(endpoints, models.Endpoint{
			ID:           fmt.Sprintf("%s-secure", branch.BranchID),
			Kind:         models.EndpointKindLocalSecure,
			BaseURL:      strings.TrimRight(branch.SecureURL, "/"),
			Priority:     SecurePriority,
			Timeout:      DefaultSecureTimeout,
			RequiresAuth: true,
		})
	}

	priority := 1
	for i, raw := range branch.LocalURLs {
		url := strings.TrimSpace(raw)
		if url == "" {
			continue
		}
		endpoints = append(endpoints, models.Endpoint{
			ID:       fmt.Sprintf("%s-local-%d", branch.BranchID, i),
			Kind:     models.EndpointKindLocal,
			BaseURL:  strings.TrimRight(url, "/"),
			Priority: priority,
			Timeout:  DefaultLocalTimeout,
		})
		priority++
	}

	if strings.TrimSpace(branch.ServerURL) != "" {
		endpoints = append(endpoints, models.Endpoint{
			ID:           fmt.Sprintf("%s-server", branch.BranchID),
			Kind:         models.EndpointKindServer,
			BaseURL:      strings.TrimRight(branch.ServerURL, "/"),
			Priority:     ServerFallbackPriority,
			Timeout:      DefaultServerTimeout,
			RequiresAuth: true,
		})
	}

	if len(endpoints) == 0 {
		return nil, models.ErrNoEndpoints
	}

	if err := validate(endpoints); err != nil {
		return nil, err
	}

	// 稳定排序，相同优先级保持配置顺序
	sort.SliceStable(endpoints, func(i, j int) bool {
		return endpoints[i].Priority < endpoints[j].Priority
	})
	return endpoints, nil
}

// Sort 按优先级升序排序端点列表（稳定排序）
func Sort(endpoints []models.Endpoint) {
	sort.SliceStable(endpoints, func(i, j int) bool {
		return endpoints[i].Priority < endpoints[j].Priority
	})
}

// validate 校验端点列表（ID不可重复）
func validate(endpoints []models.Endpoint) error {
	seen := make(map[string]struct{}, len(endpoints))
	for _, ep := range endpoints {
		if _, dup := seen[ep.ID]; dup {
			return errorx.NewError(models.ErrTypeDuplicateEndpoint, ep.ID)
		}
		seen[ep.ID] = struct{}{}
	}
	return nil
}
