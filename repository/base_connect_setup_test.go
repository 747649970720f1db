/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-03-08
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\repository\base_connect_setup_test.go
 * @Description: 测试连接配置 - 统一管理 Redis 和 MySQL 连接
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ============================================================================
// Redis 连接配置
// ============================================================================

const defaultRedisDB = 1

var (
	// 单例 Redis 客户端（用于需要持久连接的测试）
	testRedisInstance *redis.Client
	testRedisOnce     sync.Once
)

// GetTestRedisClient 获取测试用 Redis 客户端（单例模式）
// 通过环境变量 TEST_REDIS_ADDR / TEST_REDIS_PASSWORD 配置，未配置时跳过测试
func GetTestRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("未配置 TEST_REDIS_ADDR，跳过 Redis 集成测试")
	}

	testRedisOnce.Do(func() {
		password := os.Getenv("TEST_REDIS_PASSWORD")
		t.Logf("📌 使用环境变量 Redis 配置: %s (DB:%d)", addr, defaultRedisDB)

		client := redis.NewClient(&redis.Options{
			Addr:         addr,
			Password:     password,
			DB:           defaultRedisDB,
			PoolSize:     100,
			MinIdleConns: 10,
			MaxRetries:   3,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := client.Ping(ctx).Err()
		require.NoError(t, err, "Redis 连接失败，请检查配置和网络")

		testRedisInstance = client
	})

	if testRedisInstance == nil {
		t.Fatal("Redis 单例未正确初始化")
	}
	return testRedisInstance
}

// CleanupTestRedis 清理 Redis 测试数据
func CleanupTestRedis(t *testing.T, client *redis.Client, keyPattern string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	keys, err := client.Keys(ctx, keyPattern).Result()
	if err != nil {
		t.Logf("警告：扫描测试 key 失败: %v", err)
		return
	}
	if len(keys) > 0 {
		if err := client.Del(ctx, keys...).Err(); err != nil {
			t.Logf("警告：清理 Redis 测试数据失败: %v", err)
		}
	}
}

// ============================================================================
// MySQL 连接配置
// ============================================================================

var (
	// 单例 MySQL 数据库连接（用于需要持久连接的测试）
	testDBInstance *gorm.DB
	testDBOnce     sync.Once

	// 已迁移的模型缓存（避免重复迁移）
	migratedModels = make(map[string]bool)
	migrateMutex   sync.Mutex
)

// GetTestDB 获取测试用 MySQL 数据库连接（单例模式）
// 通过环境变量 TEST_MYSQL_DSN 配置，未配置时跳过测试
func GetTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("未配置 TEST_MYSQL_DSN，跳过 MySQL 集成测试")
	}

	testDBOnce.Do(func() {
		t.Logf("📌 使用环境变量 MySQL 配置: %s", maskPassword(dsn))
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		})
		require.NoError(t, err, "MySQL 数据库连接失败，请检查配置")

		sqlDB, err := db.DB()
		require.NoError(t, err, "获取底层 DB 失败")
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(30)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err = sqlDB.PingContext(ctx)
		require.NoError(t, err, "数据库连接验证失败，请检查MySQL服务和网络状态")

		testDBInstance = db
	})

	if testDBInstance == nil {
		t.Fatal("MySQL 单例未正确初始化")
	}
	return testDBInstance
}

// GetTestDBWithMigration 获取测试用数据库并执行迁移
// 使用缓存机制避免重复迁移相同的模型
func GetTestDBWithMigration(t *testing.T, models ...interface{}) *gorm.DB {
	db := GetTestDB(t)
	if len(models) == 0 {
		return db
	}

	migrateMutex.Lock()
	defer migrateMutex.Unlock()

	var needMigrate []interface{}
	for _, model := range models {
		modelType := fmt.Sprintf("%T", model)
		if !migratedModels[modelType] {
			needMigrate = append(needMigrate, model)
			migratedModels[modelType] = true
		}
	}

	if len(needMigrate) > 0 {
		err := db.AutoMigrate(needMigrate...)
		require.NoError(t, err, "数据库迁移失败")
	}
	return db
}

// CleanupTestTable 清理 MySQL 测试表数据
func CleanupTestTable(t *testing.T, db *gorm.DB, tableName string) {
	err := db.Exec("TRUNCATE TABLE " + tableName).Error
	if err != nil {
		t.Logf("警告：清理表 %s 失败: %v", tableName, err)
	}
}

// maskPassword 隐藏 DSN 中的密码部分
func maskPassword(dsn string) string {
	if len(dsn) == 0 {
		return dsn
	}
	start := 0
	for i := 0; i < len(dsn); i++ {
		if dsn[i] == ':' && start == 0 {
			start = i + 1
		}
		if dsn[i] == '@' && start > 0 {
			return dsn[:start] + "***" + dsn[i:]
		}
	}
	return dsn
}
