package query

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"tradebridge/internal/dao"
	"tradebridge/internal/model/entity"
)

type preferenceDao struct {
	db *gorm.DB
}

func NewPreferenceDao(db *gorm.DB) dao.PreferenceDao {
	return &preferenceDao{
		db: db,
	}
}

// GetOrCreate 获取user_ref的偏好记录，不存在时创建一行全空偏好
// 流水线每次处理信号都会调一次，保证读到的永远是最新配置
func (r *preferenceDao) GetOrCreate(ctx context.Context, userRef string) (*entity.StrategyPreference, error) {
	var pref entity.StrategyPreference
	result := r.db.WithContext(ctx).Where("user_ref = ?", userRef).First(&pref)
	if result.Error == nil {
		return &pref, nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load preference for %s: %w", userRef, result.Error)
	}

	pref = entity.StrategyPreference{UserRef: userRef}
	if err := r.db.WithContext(ctx).Create(&pref).Error; err != nil {
		// 并发创建时可能撞唯一索引，重读一次
		var again entity.StrategyPreference
		if err2 := r.db.WithContext(ctx).Where("user_ref = ?", userRef).First(&again).Error; err2 == nil {
			return &again, nil
		}
		return nil, fmt.Errorf("failed to create preference for %s: %w", userRef, err)
	}
	return &pref, nil
}

// Update 部分更新偏好字段并返回最新记录
func (r *preferenceDao) Update(ctx context.Context, userRef string, updates map[string]interface{}) (*entity.StrategyPreference, error) {
	pref, err := r.GetOrCreate(ctx, userRef)
	if err != nil {
		return nil, err
	}

	if result := r.db.WithContext(ctx).Model(pref).Updates(updates); result.Error != nil {
		return nil, fmt.Errorf("failed to update preference for %s: %w", userRef, result.Error)
	}

	var fresh entity.StrategyPreference
	if err := r.db.WithContext(ctx).Where("user_ref = ?", userRef).First(&fresh).Error; err != nil {
		return nil, fmt.Errorf("failed to reload preference for %s: %w", userRef, err)
	}
	return &fresh, nil
}
