package dao

import (
	"context"

	"tradebridge/internal/model/entity"
)

type PreferenceDao interface {
	// 获取user_ref的偏好，不存在则创建一行空偏好
	GetOrCreate(ctx context.Context, userRef string) (*entity.StrategyPreference, error)
	// 更新偏好的部分字段
	Update(ctx context.Context, userRef string, updates map[string]interface{}) (*entity.StrategyPreference, error)
}
