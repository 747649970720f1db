/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-16
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\notify\notify.go
 * @Description: 面向收银员的通知接口与泰文文案投影
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package notify

import (
	"fmt"

	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-poslink/models"
)

// Notifier 用户通知接口
// 实现方负责将消息投递到收银界面（toast、状态条等）
type Notifier interface {
	// Info 普通提示
	Info(msg string)
	// Warn 警告提示（不阻断操作）
	Warn(msg string)
	// Error 错误提示
	Error(msg string)
}

// LoggerNotifier 基于日志器的默认通知实现
type LoggerNotifier struct {
	logger logger.ILogger
}

// NewLoggerNotifier 创建日志通知器
func NewLoggerNotifier(log logger.ILogger) *LoggerNotifier {
	if log == nil {
		log = logger.NewEmptyLogger()
	}
	return &LoggerNotifier{logger: log}
}

// Info 普通提示
func (n *LoggerNotifier) Info(msg string) {
	n.logger.InfoKV("แจ้งเตือน", "message", msg)
}

// Warn 警告提示
func (n *LoggerNotifier) Warn(msg string) {
	n.logger.WarnKV("คำเตือน", "message", msg)
}

// Error 错误提示
func (n *LoggerNotifier) Error(msg string) {
	n.logger.ErrorKV("ข้อผิดพลาด", "message", msg)
}

// NoopNotifier 空通知器
type NoopNotifier struct{}

// NewNoopNotifier 创建空通知器
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

// Info 空实现
func (n *NoopNotifier) Info(msg string) {}

// Warn 空实现
func (n *NoopNotifier) Warn(msg string) {}

// Error 空实现
func (n *NoopNotifier) Error(msg string) {}

// StatusText 外设状态的泰文文案
func StatusText(status models.DeviceStatus) string {
	switch status {
	case models.DeviceStatusOnline:
		return "พร้อมใช้งาน"
	case models.DeviceStatusOffline:
		return "ไม่พร้อมใช้งาน"
	case models.DeviceStatusTimeout:
		return "ตรวจสอบไม่ทันเวลา"
	case models.DeviceStatusError:
		return "อุปกรณ์ขัดข้อง"
	default:
		return "ไม่ทราบสถานะ"
	}
}

// StateText 连接状态的泰文文案
func StateText(state models.ConnectionState) string {
	switch state {
	case models.ConnectionStateConnected:
		return "เชื่อมต่อแล้ว"
	case models.ConnectionStateConnecting:
		return "กำลังเชื่อมต่อ"
	case models.ConnectionStateFallbackPolling:
		return "โหมดสำรอง (โพลลิ่ง)"
	default:
		return "ไม่ได้เชื่อมต่อ"
	}
}

// DeviceWarningText 外设不可用时的泰文警告（仅提示，不阻断业务操作）
func DeviceWarningText(deviceType models.DeviceType) string {
	switch deviceType {
	case models.DeviceTypePrinter:
		return "เครื่องพิมพ์อาจไม่พร้อมใช้งาน"
	case models.DeviceTypeCardReader:
		return "เครื่องอ่านบัตรอาจไม่พร้อมใช้งาน"
	case models.DeviceTypeDrawer:
		return "ลิ้นชักเก็บเงินอาจไม่พร้อมใช้งาน"
	default:
		return "อุปกรณ์อาจไม่พร้อมใช้งาน"
	}
}

// ReconnectAttemptText 重连进度的泰文文案（第 attempt 次，共 max 次）
func ReconnectAttemptText(attempt, max int) string {
	return fmt.Sprintf("กำลังเชื่อมต่อใหม่... (%d/%d)", attempt, max)
}

// SlowConnectionText 连接缓慢的泰文提示
const SlowConnectionText = "การเชื่อมต่อช้ากว่าปกติ กรุณารอสักครู่"

// FallbackModeText 进入降级模式的泰文提示
const FallbackModeText = "การเชื่อมต่อแบบเรียลไทม์ขัดข้อง ระบบจะอัปเดตข้อมูลทุก 30 วินาที"
