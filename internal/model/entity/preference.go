package entity

import (
	"time"

	"tradebridge/internal/model"
)

// StrategyPreference 控制面板保存的策略偏好，每个user_ref一行
type StrategyPreference struct {
	ID      uint64 `gorm:"primaryKey"`
	UserRef string `gorm:"column:user_ref;type:varchar(50);not null;uniqueIndex"`

	Product                  *string  `gorm:"type:varchar(30)"`
	Strategy                 *string  `gorm:"type:varchar(50)"`
	DirectionMode            *string  `gorm:"column:direction_mode;type:varchar(20)"`
	Leverage                 *float64 `gorm:"type:decimal(6,2)"`
	CapitalAllocationPercent *float64 `gorm:"column:capital_allocation_percent;type:decimal(5,2)"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (StrategyPreference) TableName() string {
	return "strategy_preferences"
}

// ToModel 转换为流水线使用的只读偏好
func (p *StrategyPreference) ToModel() *model.Preference {
	if p == nil {
		return nil
	}
	return &model.Preference{
		Product:                  p.Product,
		Strategy:                 p.Strategy,
		DirectionMode:            p.DirectionMode,
		Leverage:                 p.Leverage,
		CapitalAllocationPercent: p.CapitalAllocationPercent,
	}
}
