/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-16
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\monitor\config.go
 * @Description: 外设监控配置
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package monitor

import (
	"time"

	"github.com/kamalyes/go-poslink/models"
)

// Config 结构体表示外设监控的配置
type Config struct {
	DeviceID     string            // 设备ID
	DeviceType   models.DeviceType // 设备类型
	Interval     time.Duration     // 周期检查间隔
	CheckTimeout time.Duration     // 单次检查超时
}

// NewDefaultConfig 创建默认配置
func NewDefaultConfig() *Config {
	return &Config{
		DeviceType:   models.DeviceTypePrinter,
		Interval:     60 * time.Second,
		CheckTimeout: 5 * time.Second,
	}
}

// WithDeviceID 设置设备ID并返回当前配置对象
func (c *Config) WithDeviceID(id string) *Config {
	c.DeviceID = id
	return c
}

// WithDeviceType 设置设备类型并返回当前配置对象
func (c *Config) WithDeviceType(t models.DeviceType) *Config {
	c.DeviceType = t
	return c
}

// WithInterval 设置周期检查间隔并返回当前配置对象
func (c *Config) WithInterval(d time.Duration) *Config {
	c.Interval = d
	return c
}

// WithCheckTimeout 设置单次检查超时并返回当前配置对象
func (c *Config) WithCheckTimeout(d time.Duration) *Config {
	c.CheckTimeout = d
	return c
}

// Validate 校验配置，越界值回退到默认值
func (c *Config) Validate() *Config {
	def := NewDefaultConfig()
	if !c.DeviceType.IsValid() {
		c.DeviceType = def.DeviceType
	}
	if c.Interval <= 0 {
		c.Interval = def.Interval
	}
	if c.CheckTimeout <= 0 {
		c.CheckTimeout = def.CheckTimeout
	}
	return c
}
