/*
 * @Author: kamalyes 501893067@qq.com
 * @Date: 2026-02-20
 * @LastEditors: kamalyes 501893067@qq.com
 * @LastEditTime: 2026-03-08
 * @FilePath: \go-poslink\repository\outcome_repository.go
 * @Description: 级联解析结果记录仓库 - 供支持人员排查门店网络问题
 *
 * Copyright (c) 2026 by kamalyes, All Rights Reserved.
 */

package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/kamalyes/go-logger"
	"github.com/kamalyes/go-poslink/models"
	sqlbuilder "github.com/kamalyes/go-sqlbuilder/repository"
	"gorm.io/gorm"
)

// OutcomeRecordRepository 级联解析结果记录仓储接口
type OutcomeRecordRepository interface {
	// Save 保存单条尝试记录
	Save(ctx context.Context, record *models.ResolveOutcomeRecord) error

	// SaveResult 保存一次完整解析的全部尝试记录
	SaveResult(ctx context.Context, resolveID, branchID string, result *models.ResolveResult) error

	// GetByResolveID 获取一次解析的全部尝试记录
	GetByResolveID(ctx context.Context, resolveID string) ([]*models.ResolveOutcomeRecord, error)

	// List 通用列表查询（支持条件过滤）
	List(ctx context.Context, opts *OutcomeQueryOptions) ([]*models.ResolveOutcomeRecord, error)

	// Count 统计记录数（支持条件过滤）
	Count(ctx context.Context, opts *OutcomeQueryOptions) (int64, error)

	// CleanupBefore 清理指定时间之前的记录
	CleanupBefore(ctx context.Context, before time.Time) (int64, error)

	// WithTableName 设置自定义表名（用于测试隔离）
	WithTableName(tableName string) OutcomeRecordRepository
}

// OutcomeQueryOptions 解析记录查询选项
type OutcomeQueryOptions struct {
	BranchID   string     // 门店ID过滤
	EndpointID string     // 端点ID过滤
	Kind       string     // 端点类型过滤
	Success    *bool      // 是否成功（nil表示不过滤）
	Since      *time.Time // 起始时间
	Limit      int        // 限制数量
	Offset     int        // 偏移量
	OrderBy    string     // 排序字段（默认 started_at DESC）
}

// outcomeRecordRepositoryImpl 级联解析结果记录仓储实现
type outcomeRecordRepositoryImpl struct {
	db        *gorm.DB
	tableName string // 自定义表名（用于测试隔离）
	logger    logger.ILogger
}

// NewOutcomeRecordRepository 创建解析记录仓储实例
func NewOutcomeRecordRepository(db *gorm.DB, log logger.ILogger) OutcomeRecordRepository {
	if log == nil {
		log = logger.NewEmptyLogger()
	}
	return &outcomeRecordRepositoryImpl{
		db:     db,
		logger: log,
	}
}

// WithTableName 设置自定义表名（用于测试隔离）
func (r *outcomeRecordRepositoryImpl) WithTableName(tableName string) OutcomeRecordRepository {
	return &outcomeRecordRepositoryImpl{
		db:        r.db,
		tableName: tableName,
		logger:    r.logger,
	}
}

// getDB 获取数据库会话（如果设置了自定义表名则应用）
func (r *outcomeRecordRepositoryImpl) getDB(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tableName != "" {
		return db.Table(r.tableName)
	}
	return db.Model(&models.ResolveOutcomeRecord{})
}

// Save 保存单条尝试记录
func (r *outcomeRecordRepositoryImpl) Save(ctx context.Context, record *models.ResolveOutcomeRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if record.ResolveID == "" {
		return fmt.Errorf("resolve_id cannot be empty")
	}
	return r.getDB(ctx).Create(record).Error
}

// SaveResult 保存一次完整解析的全部尝试记录
func (r *outcomeRecordRepositoryImpl) SaveResult(ctx context.Context, resolveID, branchID string, result *models.ResolveResult) error {
	if result == nil || len(result.Outcomes) == 0 {
		return nil
	}

	records := make([]*models.ResolveOutcomeRecord, 0, len(result.Outcomes))
	for i := range result.Outcomes {
		o := &result.Outcomes[i]
		priority := i
		if result.Endpoint != nil && o.EndpointID == result.Endpoint.ID {
			priority = result.Endpoint.Priority
		}
		records = append(records, models.NewResolveOutcomeRecord(resolveID, branchID, priority, o))
	}

	if err := r.getDB(ctx).Create(&records).Error; err != nil {
		r.logger.WarnKV("保存解析记录失败",
			"resolve_id", resolveID,
			"count", len(records),
			"error", err,
		)
		return err
	}

	r.logger.DebugKV("解析记录已保存",
		"resolve_id", resolveID,
		"branch_id", branchID,
		"count", len(records),
		"exhausted", result.Exhausted,
	)
	return nil
}

// GetByResolveID 获取一次解析的全部尝试记录
func (r *outcomeRecordRepositoryImpl) GetByResolveID(ctx context.Context, resolveID string) ([]*models.ResolveOutcomeRecord, error) {
	var records []*models.ResolveOutcomeRecord
	err := r.getDB(ctx).
		Where("resolve_id = ?", resolveID).
		Order("started_at ASC").
		Find(&records).Error
	return records, err
}

// List 通用列表查询
func (r *outcomeRecordRepositoryImpl) List(ctx context.Context, opts *OutcomeQueryOptions) ([]*models.ResolveOutcomeRecord, error) {
	query := r.applyQueryOptions(r.getDB(ctx), opts)

	orderBy := "started_at DESC"
	if opts != nil && opts.OrderBy != "" {
		orderBy = opts.OrderBy
	}
	query = query.Order(orderBy)

	if opts != nil {
		if opts.Limit > 0 {
			query = query.Limit(opts.Limit)
		}
		if opts.Offset > 0 {
			query = query.Offset(opts.Offset)
		}
	}

	var records []*models.ResolveOutcomeRecord
	err := query.Find(&records).Error
	return records, err
}

// Count 统计记录数
func (r *outcomeRecordRepositoryImpl) Count(ctx context.Context, opts *OutcomeQueryOptions) (int64, error) {
	query := r.applyQueryOptions(r.getDB(ctx), opts)

	var count int64
	err := query.Count(&count).Error
	return count, err
}

// CleanupBefore 清理指定时间之前的记录
func (r *outcomeRecordRepositoryImpl) CleanupBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.getDB(ctx).
		Where("started_at < ?", before).
		Delete(&models.ResolveOutcomeRecord{})
	return result.RowsAffected, result.Error
}

// applyQueryOptions 应用查询条件
func (r *outcomeRecordRepositoryImpl) applyQueryOptions(query *gorm.DB, opts *OutcomeQueryOptions) *gorm.DB {
	if opts == nil {
		return query
	}

	// 使用 go-sqlbuilder 构建过滤条件
	sqlQuery := sqlbuilder.NewQuery().
		AddFilterIfNotEmpty("branch_id", opts.BranchID).
		AddFilterIfNotEmpty("endpoint_id", opts.EndpointID).
		AddFilterIfNotEmpty("kind", opts.Kind).
		AddFilterIfNotEmpty("success", opts.Success)

	if opts.Since != nil {
		sqlQuery = sqlQuery.AddFilter(sqlbuilder.NewGteFilter("started_at", *opts.Since))
	}

	return sqlbuilder.ApplyFilters(query, sqlQuery.Filters)
}
