package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SizingDecision 一次下单的数量计算结果，只在单次请求内存在
type SizingDecision struct {
	RawQuantity              decimal.Decimal // 过滤前的原始数量
	NormalizedQuantity       decimal.Decimal // 对齐step size之后的数量
	NormalizedQuantityString string          // 按step精度渲染的字符串，下单时必须用它
	AppliedLeverage          *int            // 实际设置的杠杆
	AppliedCapitalPercent    *float64        // 实际使用的资金比例
}

// ExecutionOutcome 下单结果，Success和Failure二选一
type ExecutionOutcome struct {
	Success bool `json:"success"`

	// 成功时
	OrderId  string                 `json:"order_id,omitempty"`
	Exchange map[string]interface{} `json:"order,omitempty"` // 交易所原始应答

	// 失败时
	ErrKind int    `json:"-"`
	Error   string `json:"error,omitempty"`

	AppliedLeverage       *int     `json:"applied_leverage,omitempty"`
	AppliedCapitalPercent *float64 `json:"applied_capital_percent,omitempty"`
}

func SuccessOutcome(orderId string, exchange map[string]interface{}) *ExecutionOutcome {
	return &ExecutionOutcome{Success: true, OrderId: orderId, Exchange: exchange}
}

func FailureOutcome(errKind int, message string) *ExecutionOutcome {
	return &ExecutionOutcome{Success: false, ErrKind: errKind, Error: message}
}

// TimingTrace 流水线每个阶段的时间戳，字段可空，部分记录也有效
type TimingTrace struct {
	SignalSent     *time.Time // 信号在TradingView侧发出的时间（来自alert.time）
	Received       *time.Time // webhook收到的时间
	Processed      *time.Time // 权限校验完成的时间
	SentToExchange *time.Time // 下单请求发往交易所之前
	Executed       *time.Time // 交易所应答返回之后
}

func NewTimingTrace() *TimingTrace {
	now := time.Now()
	return &TimingTrace{Received: &now}
}

func (t *TimingTrace) MarkSignalSent(ts time.Time) {
	t.SignalSent = &ts
}

func (t *TimingTrace) MarkProcessed() {
	now := time.Now()
	t.Processed = &now
}

func (t *TimingTrace) MarkSentToExchange() {
	now := time.Now()
	t.SentToExchange = &now
}

func (t *TimingTrace) MarkExecuted() {
	now := time.Now()
	t.Executed = &now
}

// 时间戳渲染成不带时区偏移的ISO格式，和前端约定一致
const timingLayout = "2006-01-02T15:04:05.999999"

func formatStamp(ts *time.Time) interface{} {
	if ts == nil {
		return nil
	}
	return ts.UTC().Format(timingLayout)
}

func (t *TimingTrace) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"signal_sent":      formatStamp(t.SignalSent),
		"received":         formatStamp(t.Received),
		"processed":        formatStamp(t.Processed),
		"sent_to_exchange": formatStamp(t.SentToExchange),
		"executed":         formatStamp(t.Executed),
	})
}

// WebhookResult webhook接口的最终应答
type WebhookResult struct {
	Status           string            `json:"status"` // success / ignored / error
	Message          string            `json:"message"`
	Result           *ExecutionOutcome `json:"result,omitempty"`
	SelectedStrategy string            `json:"selected_strategy,omitempty"`
	SelectedProduct  string            `json:"selected_product,omitempty"`
	SignalStrategy   string            `json:"signal_strategy,omitempty"`
	SignalProduct    string            `json:"signal_product,omitempty"`
	Timing           *TimingTrace      `json:"timing"`
}

const (
	StatusSuccess = "success"
	StatusIgnored = "ignored"
	StatusError   = "error"
)
