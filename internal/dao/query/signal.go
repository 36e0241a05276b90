package query

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"tradebridge/internal/dao"
	"tradebridge/internal/model/entity"
)

type signalDao struct {
	db *gorm.DB
}

func NewSignalDao(db *gorm.DB) dao.SignalDao {
	return &signalDao{
		db: db,
	}
}

// SaveSignal 保存一条原始信号记录
func (r *signalDao) SaveSignal(ctx context.Context, signal *entity.Signal) error {
	if signal.Timestamp.IsZero() {
		signal.Timestamp = time.Now()
	}
	if result := r.db.WithContext(ctx).Create(signal); result.Error != nil {
		return fmt.Errorf("failed to store signal: %w", result.Error)
	}
	return nil
}
