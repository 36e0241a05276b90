package entity

import (
	"time"
)

// Signal 每个收到的webhook信号都落一行，无论是否执行
type Signal struct {
	ID        uint64    `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"column:timestamp;type:timestamp;not null;index:idx_signal_timestamp"`

	Action   string   `gorm:"type:varchar(10)"`
	Symbol   string   `gorm:"type:varchar(50)"`
	Quantity *float64 `gorm:"type:decimal(20,8)"`
	Price    *float64 `gorm:"type:decimal(20,8)"`

	SignalTime *time.Time `gorm:"column:signal_time"` // 信号自带的发出时间
	Strategy   *string    `gorm:"type:varchar(100)"`
	RawPayload string     `gorm:"column:raw_payload;type:json"`
	Source     string     `gorm:"type:varchar(50);default:tradingview"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Signal) TableName() string {
	return "signals"
}
