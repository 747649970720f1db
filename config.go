/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-22
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\config.go
 * @Description: Service 配置结构体
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package poslink

import (
	"github.com/kamalyes/go-poslink/catalog"
	"github.com/kamalyes/go-poslink/monitor"
	"github.com/kamalyes/go-poslink/realtime"
)

// ServiceConfig 结构体表示连接核心服务的配置
type ServiceConfig struct {
	NodeID     string               // 节点ID（收银终端标识）
	Branch     catalog.BranchConfig // 门店端点配置
	HealthPath string               // 级联探测的健康检查路径
	AuthToken  string               // 认证令牌（探测需认证的端点与降级轮询时携带）
	Realtime   *realtime.Config     // 实时通道配置
	Monitor    *monitor.Config      // 外设监控配置
}

// NewDefaultServiceConfig 创建默认配置
func NewDefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		Realtime: realtime.NewDefaultConfig(),
		Monitor:  monitor.NewDefaultConfig(),
	}
}

// WithNodeID 设置节点ID并返回当前配置对象
func (c *ServiceConfig) WithNodeID(nodeID string) *ServiceConfig {
	c.NodeID = nodeID
	return c
}

// WithBranch 设置门店端点配置并返回当前配置对象
func (c *ServiceConfig) WithBranch(branch catalog.BranchConfig) *ServiceConfig {
	c.Branch = branch
	return c
}

// WithHealthPath 设置健康检查路径并返回当前配置对象
func (c *ServiceConfig) WithHealthPath(path string) *ServiceConfig {
	c.HealthPath = path
	return c
}

// WithAuthToken 设置认证令牌并返回当前配置对象
func (c *ServiceConfig) WithAuthToken(token string) *ServiceConfig {
	c.AuthToken = token
	return c
}

// WithRealtime 设置实时通道配置并返回当前配置对象
func (c *ServiceConfig) WithRealtime(config *realtime.Config) *ServiceConfig {
	c.Realtime = config
	return c
}

// WithMonitor 设置外设监控配置并返回当前配置对象
func (c *ServiceConfig) WithMonitor(config *monitor.Config) *ServiceConfig {
	c.Monitor = config
	return c
}

// Validate 校验配置，缺失的子配置回退到默认值
func (c *ServiceConfig) Validate() *ServiceConfig {
	if c.Realtime == nil {
		c.Realtime = realtime.NewDefaultConfig()
	}
	if c.Monitor == nil {
		c.Monitor = monitor.NewDefaultConfig()
	}
	// 服务级令牌下传给降级轮询（子配置已显式设置时不覆盖）
	if c.AuthToken != "" && c.Realtime.AuthToken == "" {
		c.Realtime.AuthToken = c.AuthToken
	}
	return c
}
