package dao

import (
	"context"

	"tradebridge/internal/model/entity"
)

type SignalDao interface {
	// 保存一条原始信号记录
	SaveSignal(ctx context.Context, signal *entity.Signal) error
}
