package dao

import (
	"context"

	"tradebridge/internal/model/entity"
)

type ExecutionDao interface {
	// 保存一条执行记录（含各阶段时间戳）
	SaveExecution(ctx context.Context, exec *entity.Execution) error
	// 获取最近的执行记录，按时间倒序
	GetRecent(ctx context.Context, limit int) ([]entity.Execution, error)
}
