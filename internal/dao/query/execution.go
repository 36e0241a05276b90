package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"tradebridge/internal/dao"
	"tradebridge/internal/model/entity"
)

type executionDao struct {
	db *gorm.DB
}

func NewExecutionDao(db *gorm.DB) dao.ExecutionDao {
	return &executionDao{
		db: db,
	}
}

// SaveExecution 保存一条执行记录
func (r *executionDao) SaveExecution(ctx context.Context, exec *entity.Execution) error {
	if exec.Timestamp.IsZero() {
		exec.Timestamp = time.Now()
	}
	if result := r.db.WithContext(ctx).Create(exec); result.Error != nil {
		return fmt.Errorf("failed to store execution: %w", result.Error)
	}
	return nil
}

// GetRecent 获取最近的执行记录，按时间倒序
func (r *executionDao) GetRecent(ctx context.Context, limit int) ([]entity.Execution, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 100 {
		limit = 100
	}

	var executions []entity.Execution
	result := r.db.WithContext(ctx).
		Order("timestamp DESC").
		Limit(limit).
		Find(&executions)
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get recent executions: %w", result.Error)
	}
	return executions, nil
}
