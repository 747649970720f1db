/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-18
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\events\publisher.go
 * @Description: 事件发布器接口
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package events

import (
	"context"

	"github.com/kamalyes/go-cachex"
	"github.com/kamalyes/go-logger"
)

// Publisher 事件发布器接口
// 多个收银节点通过 Redis PubSub 共享设备状态与库存事件
type Publisher interface {
	// GetPubSub 获取 PubSub 实例
	GetPubSub() *cachex.PubSub

	// GetLogger 获取日志器
	GetLogger() logger.ILogger

	// GetContext 获取上下文
	GetContext() context.Context

	// GetNodeID 获取节点ID
	GetNodeID() string
}
