/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-10
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-02
 * @FilePath: \go-poslink\models\enums.go
 * @Description: POS 连接核心枚举定义
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package models

// EndpointKind 端点类型
type EndpointKind string

const (
	EndpointKindLocal       EndpointKind = "local"        // 本地设备代理
	EndpointKindLocalSecure EndpointKind = "local-secure" // 本地HTTPS设备代理
	EndpointKindProxy       EndpointKind = "proxy"        // HTTPS反向代理
	EndpointKindServer      EndpointKind = "server"       // 远端服务器兜底
)

// String 实现Stringer接口
func (k EndpointKind) String() string {
	return string(k)
}

// IsValid 检查端点类型是否有效
func (k EndpointKind) IsValid() bool {
	switch k {
	case EndpointKindLocal, EndpointKindLocalSecure, EndpointKindProxy, EndpointKindServer:
		return true
	default:
		return false
	}
}

// IsLocal 检查是否为本地端点（不经过远端服务器）
func (k EndpointKind) IsLocal() bool {
	switch k {
	case EndpointKindLocal, EndpointKindLocalSecure:
		return true
	default:
		return false
	}
}

// ConnectionState 实时通道连接状态
type ConnectionState string

const (
	ConnectionStateDisconnected    ConnectionState = "disconnected"     // 已断开
	ConnectionStateConnecting      ConnectionState = "connecting"       // 连接中
	ConnectionStateConnected       ConnectionState = "connected"        // 已连接
	ConnectionStateFallbackPolling ConnectionState = "fallback_polling" // 降级轮询模式
)

// String 实现Stringer接口
func (s ConnectionState) String() string {
	return string(s)
}

// IsValid 检查连接状态是否有效
func (s ConnectionState) IsValid() bool {
	switch s {
	case ConnectionStateDisconnected, ConnectionStateConnecting,
		ConnectionStateConnected, ConnectionStateFallbackPolling:
		return true
	default:
		return false
	}
}

// IsTerminal 检查是否为终态（只能通过显式 Reset 恢复）
func (s ConnectionState) IsTerminal() bool {
	return s == ConnectionStateFallbackPolling
}

// DeviceStatus 外设状态
type DeviceStatus string

const (
	DeviceStatusUnknown DeviceStatus = "unknown" // 未知（尚未检查）
	DeviceStatusOnline  DeviceStatus = "online"  // 在线
	DeviceStatusOffline DeviceStatus = "offline" // 离线
	DeviceStatusTimeout DeviceStatus = "timeout" // 检查超时
	DeviceStatusError   DeviceStatus = "error"   // 设备异常
)

// String 实现Stringer接口
func (s DeviceStatus) String() string {
	return string(s)
}

// IsValid 检查外设状态是否有效
func (s DeviceStatus) IsValid() bool {
	switch s {
	case DeviceStatusUnknown, DeviceStatusOnline, DeviceStatusOffline,
		DeviceStatusTimeout, DeviceStatusError:
		return true
	default:
		return false
	}
}

// IsHealthy 检查设备是否可用
func (s DeviceStatus) IsHealthy() bool {
	return s == DeviceStatusOnline
}

// DeviceType 外设类型
type DeviceType string

const (
	DeviceTypePrinter    DeviceType = "printer"     // 票据打印机
	DeviceTypeCardReader DeviceType = "card_reader" // 会员卡读卡器
	DeviceTypeDrawer     DeviceType = "drawer"      // 钱箱
)

// String 实现Stringer接口
func (t DeviceType) String() string {
	return string(t)
}

// IsValid 检查外设类型是否有效
func (t DeviceType) IsValid() bool {
	switch t {
	case DeviceTypePrinter, DeviceTypeCardReader, DeviceTypeDrawer:
		return true
	default:
		return false
	}
}
