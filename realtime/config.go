/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-14
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\realtime\config.go
 * @Description: 实时通道配置
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package realtime

import "time"

// Config 结构体表示实时通道的配置
type Config struct {
	URL                  string        // WebSocket 服务地址
	MaxReconnectAttempts int           // 连续重连失败上限，超过后进入降级轮询
	MinReconnectDelay    time.Duration // 重连最小间隔
	MaxReconnectDelay    time.Duration // 重连最大间隔
	ReconnectFactor      float64       // 重连退避因子
	ConnectTimeout       time.Duration // 单次拨号超时
	SlowConnectWarnAfter time.Duration // 拨号慢告警阈值
	HeartbeatInterval    time.Duration // 心跳间隔
	WriteTimeout         time.Duration // 写超时
	MaxMessageSize       int64         // 最大消息长度
	PendingCapacity      int           // 待发队列容量
	PendingMaxAge        time.Duration // 待发消息最大保留时长
	PollURL              string        // 降级轮询地址
	PollInterval         time.Duration // 降级轮询间隔
	AuthToken            string        // 降级轮询请求携带的认证令牌
}

// NewDefaultConfig 创建默认配置
func NewDefaultConfig() *Config {
	return &Config{
		MaxReconnectAttempts: 5,
		MinReconnectDelay:    1 * time.Second,
		MaxReconnectDelay:    30 * time.Second,
		ReconnectFactor:      2.0,
		ConnectTimeout:       20 * time.Second,
		SlowConnectWarnAfter: 10 * time.Second,
		HeartbeatInterval:    30 * time.Second,
		WriteTimeout:         10 * time.Second,
		MaxMessageSize:       1024 * 1024,
		PendingCapacity:      256,
		PendingMaxAge:        5 * time.Minute,
		PollInterval:         30 * time.Second,
	}
}

// WithURL 设置 WebSocket 服务地址并返回当前配置对象
func (c *Config) WithURL(url string) *Config {
	c.URL = url
	return c
}

// WithMaxReconnectAttempts 设置重连失败上限并返回当前配置对象
func (c *Config) WithMaxReconnectAttempts(n int) *Config {
	c.MaxReconnectAttempts = n
	return c
}

// WithMinReconnectDelay 设置重连最小间隔并返回当前配置对象
func (c *Config) WithMinReconnectDelay(d time.Duration) *Config {
	c.MinReconnectDelay = d
	return c
}

// WithMaxReconnectDelay 设置重连最大间隔并返回当前配置对象
func (c *Config) WithMaxReconnectDelay(d time.Duration) *Config {
	c.MaxReconnectDelay = d
	return c
}

// WithReconnectFactor 设置重连退避因子并返回当前配置对象
func (c *Config) WithReconnectFactor(factor float64) *Config {
	c.ReconnectFactor = factor
	return c
}

// WithConnectTimeout 设置拨号超时并返回当前配置对象
func (c *Config) WithConnectTimeout(d time.Duration) *Config {
	c.ConnectTimeout = d
	return c
}

// WithSlowConnectWarnAfter 设置拨号慢告警阈值并返回当前配置对象
func (c *Config) WithSlowConnectWarnAfter(d time.Duration) *Config {
	c.SlowConnectWarnAfter = d
	return c
}

// WithHeartbeatInterval 设置心跳间隔并返回当前配置对象
func (c *Config) WithHeartbeatInterval(d time.Duration) *Config {
	c.HeartbeatInterval = d
	return c
}

// WithWriteTimeout 设置写超时并返回当前配置对象
func (c *Config) WithWriteTimeout(d time.Duration) *Config {
	c.WriteTimeout = d
	return c
}

// WithMaxMessageSize 设置最大消息长度并返回当前配置对象
func (c *Config) WithMaxMessageSize(size int64) *Config {
	c.MaxMessageSize = size
	return c
}

// WithPendingCapacity 设置待发队列容量并返回当前配置对象
func (c *Config) WithPendingCapacity(n int) *Config {
	c.PendingCapacity = n
	return c
}

// WithPendingMaxAge 设置待发消息最大保留时长并返回当前配置对象
func (c *Config) WithPendingMaxAge(d time.Duration) *Config {
	c.PendingMaxAge = d
	return c
}

// WithPollURL 设置降级轮询地址并返回当前配置对象
func (c *Config) WithPollURL(url string) *Config {
	c.PollURL = url
	return c
}

// WithPollInterval 设置降级轮询间隔并返回当前配置对象
func (c *Config) WithPollInterval(d time.Duration) *Config {
	c.PollInterval = d
	return c
}

// WithAuthToken 设置降级轮询的认证令牌并返回当前配置对象
func (c *Config) WithAuthToken(token string) *Config {
	c.AuthToken = token
	return c
}

// Validate 校验配置，越界值回退到默认值
func (c *Config) Validate() *Config {
	def := NewDefaultConfig()
	if c.MaxReconnectAttempts <= 0 {
		c.MaxReconnectAttempts = def.MaxReconnectAttempts
	}
	if c.MinReconnectDelay <= 0 {
		c.MinReconnectDelay = def.MinReconnectDelay
	}
	if c.MaxReconnectDelay < c.MinReconnectDelay {
		c.MaxReconnectDelay = def.MaxReconnectDelay
	}
	if c.ReconnectFactor <= 1.0 {
		c.ReconnectFactor = def.ReconnectFactor
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.SlowConnectWarnAfter <= 0 {
		c.SlowConnectWarnAfter = def.SlowConnectWarnAfter
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = def.HeartbeatInterval
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.MaxMessageSize <= 0 {
		c.MaxMessageSize = def.MaxMessageSize
	}
	if c.PendingCapacity <= 0 {
		c.PendingCapacity = def.PendingCapacity
	}
	if c.PendingMaxAge <= 0 {
		c.PendingMaxAge = def.PendingMaxAge
	}
	if c.PollInterval <= 0 {
		c.PollInterval = def.PollInterval
	}
	return c
}
