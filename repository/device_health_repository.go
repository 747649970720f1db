/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-20
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\repository\device_health_repository.go
 * @Description: 外设健康快照仓库 - Redis 分布式存储
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kamalyes/go-poslink/models"
	"github.com/kamalyes/go-toolbox/pkg/mathx"
	"github.com/redis/go-redis/v9"
)

// DeviceHealthRepository 外设健康快照仓库接口
// 各收银节点写入自己设备的最新健康快照，运维面板统一读取
type DeviceHealthRepository interface {
	// SetHealth 写入设备最新健康快照
	SetHealth(ctx context.Context, health *models.DeviceHealth, ttl time.Duration) error

	// GetHealth 读取设备健康快照
	GetHealth(ctx context.Context, deviceID string) (*models.DeviceHealth, error)

	// GetAllDevices 获取所有有快照的设备ID列表
	GetAllDevices(ctx context.Context) ([]string, error)

	// BatchGetHealth 批量读取设备健康快照
	BatchGetHealth(ctx context.Context, deviceIDs []string) (map[string]*models.DeviceHealth, error)

	// DeleteHealth 删除设备健康快照
	DeleteHealth(ctx context.Context, deviceID string) error
}

// RedisDeviceHealthRepository Redis 实现
type RedisDeviceHealthRepository struct {
	client     *redis.Client
	keyPrefix  string        // key 前缀
	defaultTTL time.Duration // 默认过期时间
}

// NewRedisDeviceHealthRepository 创建 Redis 外设健康仓库
// 参数:
//   - client: Redis 客户端 (github.com/redis/go-redis/v9)
//   - keyPrefix: key 前缀，默认为 "poslink:health:"
//   - ttl: 默认过期时间，建议设置为检查间隔的 2-3 倍
func NewRedisDeviceHealthRepository(client *redis.Client, keyPrefix string, ttl time.Duration) DeviceHealthRepository {
	return &RedisDeviceHealthRepository{
		client:     client,
		keyPrefix:  mathx.IF(keyPrefix == "", "poslink:health:", keyPrefix),
		defaultTTL: mathx.IF(ttl == 0, 3*time.Minute, ttl),
	}
}

// GetDeviceKey 获取设备健康快照的 key
func (r *RedisDeviceHealthRepository) GetDeviceKey(deviceID string) string {
	return fmt.Sprintf("%sdevice:%s", r.keyPrefix, deviceID)
}

// GetAllDevicesSetKey 获取所有设备集合的 key
func (r *RedisDeviceHealthRepository) GetAllDevicesSetKey() string {
	return fmt.Sprintf("%sall", r.keyPrefix)
}

// SetHealth 写入设备最新健康快照
func (r *RedisDeviceHealthRepository) SetHealth(ctx context.Context, health *models.DeviceHealth, ttl time.Duration) error {
	if health == nil || health.DeviceID == "" {
		return fmt.Errorf("health snapshot requires device_id")
	}
	if ttl == 0 {
		ttl = r.defaultTTL
	}

	data, err := json.Marshal(health)
	if err != nil {
		return fmt.Errorf("failed to marshal device health: %w", err)
	}

	// 使用 pipeline 批量执行
	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.GetDeviceKey(health.DeviceID), data, ttl)
	pipe.SAdd(ctx, r.GetAllDevicesSetKey(), health.DeviceID)
	pipe.Expire(ctx, r.GetAllDevicesSetKey(), ttl)

	_, err = pipe.Exec(ctx)
	return err
}

// GetHealth 读取设备健康快照
func (r *RedisDeviceHealthRepository) GetHealth(ctx context.Context, deviceID string) (*models.DeviceHealth, error) {
	data, err := r.client.Get(ctx, r.GetDeviceKey(deviceID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var health models.DeviceHealth
	if err := json.Unmarshal(data, &health); err != nil {
		return nil, fmt.Errorf("failed to unmarshal device health: %w", err)
	}
	return &health, nil
}

// GetAllDevices 获取所有有快照的设备ID列表
func (r *RedisDeviceHealthRepository) GetAllDevices(ctx context.Context) ([]string, error) {
	return r.client.SMembers(ctx, r.GetAllDevicesSetKey()).Result()
}

// BatchGetHealth 批量读取设备健康快照
func (r *RedisDeviceHealthRepository) BatchGetHealth(ctx context.Context, deviceIDs []string) (map[string]*models.DeviceHealth, error) {
	result := make(map[string]*models.DeviceHealth, len(deviceIDs))
	if len(deviceIDs) == 0 {
		return result, nil
	}

	keys := make([]string, len(deviceIDs))
	for i, id := range deviceIDs {
		keys[i] = r.GetDeviceKey(id)
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	for i, v := range values {
		if v == nil {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		var health models.DeviceHealth
		if err := json.Unmarshal([]byte(s), &health); err != nil {
			continue
		}
		result[deviceIDs[i]] = &health
	}
	return result, nil
}

// DeleteHealth 删除设备健康快照
func (r *RedisDeviceHealthRepository) DeleteHealth(ctx context.Context, deviceID string) error {
	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.GetDeviceKey(deviceID))
	pipe.SRem(ctx, r.GetAllDevicesSetKey(), deviceID)
	_, err := pipe.Exec(ctx)
	return err
}
