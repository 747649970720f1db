/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-22
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-05
 * @FilePath: \go-poslink\logger.go
 * @Description: go-poslink 日志接口，直接复用 go-logger
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */
package poslink

import (
	"github.com/kamalyes/go-logger"
)

// PoslinkLogger 直接使用 go-logger.ILogger
type PoslinkLogger = logger.ILogger

// NewPoslinkLogger 创建新的日志器，基于 go-logger
func NewPoslinkLogger(config *logger.Logger) PoslinkLogger {
	if config == nil {
		return logger.NewLogger()
	}
	return config
}

// NewDefaultPoslinkLogger 创建默认配置的日志器
func NewDefaultPoslinkLogger() PoslinkLogger {
	return logger.NewLogger().
		WithLevel(logger.INFO).
		WithPrefix("[POSLINK] ").
		WithShowCaller(false).
		WithColorful(true).
		WithTimeFormat("2006-01-02 15:04:05")
}

// NewPoslinkLoggerWithLevel 按级别字符串创建日志器（debug/info/warn/error/fatal）
func NewPoslinkLoggerWithLevel(level string) PoslinkLogger {
	return logger.NewLogger().
		WithLevel(parseLogLevel(level)).
		WithPrefix("[POSLINK] ").
		WithShowCaller(false).
		WithColorful(true).
		WithTimeFormat("2006-01-02 15:04:05")
}

// NewNoOpLogger 创建空日志实例
func NewNoOpLogger() PoslinkLogger {
	return logger.NewEmptyLogger()
}

// 全局日志器
var (
	// DefaultLogger 默认日志器实例
	DefaultLogger PoslinkLogger = NewDefaultPoslinkLogger()

	// NoOpLoggerInstance 空日志器实例
	NoOpLoggerInstance PoslinkLogger = NewNoOpLogger()
)

// SetDefaultLogger 设置默认日志器
func SetDefaultLogger(l PoslinkLogger) {
	DefaultLogger = l
}

// parseLogLevel 解析日志级别字符串
func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "debug", "DEBUG":
		return logger.DEBUG
	case "info", "INFO":
		return logger.INFO
	case "warn", "WARN", "warning", "WARNING":
		return logger.WARN
	case "error", "ERROR":
		return logger.ERROR
	case "fatal", "FATAL":
		return logger.FATAL
	default:
		return logger.INFO
	}
}
