package entity

import (
	"time"
)

// Execution 一次信号的最终处理记录：成交、失败或者被策略忽略
type Execution struct {
	ID        uint64    `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"column:timestamp;type:timestamp;not null;index:idx_execution_timestamp"`

	Action   string   `gorm:"type:varchar(10)"`
	Symbol   string   `gorm:"type:varchar(50)"`
	Quantity *float64 `gorm:"type:decimal(20,8)"`
	Status   string   `gorm:"type:varchar(20)"` // success/failed/ignored
	OrderId  *string  `gorm:"column:order_id;type:varchar(100)"`

	// 失败或忽略时记录原因
	ErrorMessage *string `gorm:"column:error_message;type:text"`

	// 流水线各阶段时间戳，部分为空是正常的
	SignalSentTime     *time.Time `gorm:"column:signal_sent_time"`
	ReceivedTime       *time.Time `gorm:"column:received_time"`
	ProcessedTime      *time.Time `gorm:"column:processed_time"`
	SentToExchangeTime *time.Time `gorm:"column:sent_to_exchange_time"`
	ExecutedTime       *time.Time `gorm:"column:executed_time"`

	AppliedLeverage *int     `gorm:"column:applied_leverage"`
	CapitalPercent  *float64 `gorm:"column:capital_percent;type:decimal(5,2)"`

	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Execution) TableName() string {
	return "executions"
}
