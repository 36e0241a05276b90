package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Alert TradingView webhook 推过来的原始信号
// quantity/price 可能是数字也可能是数字字符串，按原样接收，取值时再解析
type Alert struct {
	Action   string      `json:"action"`
	Symbol   string      `json:"symbol"`
	Quantity interface{} `json:"quantity,omitempty"`
	Price    interface{} `json:"price,omitempty"`
	Strategy string      `json:"strategy,omitempty"`
	Time     string      `json:"time,omitempty"` // ISO-8601，TradingView带Z后缀
}

// IsZero 判断是否收到了一个空信号
func (a Alert) IsZero() bool {
	return a.Action == "" && a.Symbol == "" && a.Quantity == nil &&
		a.Price == nil && a.Strategy == "" && a.Time == ""
}

// NormalizedAction 统一转小写
func (a Alert) NormalizedAction() string {
	return strings.ToLower(strings.TrimSpace(a.Action))
}

// QuantityValue 解析信号自带的数量
func (a Alert) QuantityValue() (decimal.Decimal, bool) {
	return parseLooseDecimal(a.Quantity)
}

// PriceValue 解析信号自带的价格
func (a Alert) PriceValue() (decimal.Decimal, bool) {
	return parseLooseDecimal(a.Price)
}

// SignalTime 解析信号发出时间，丢弃时区偏移只保留UTC时刻
func (a Alert) SignalTime() (time.Time, bool) {
	raw := strings.TrimSpace(a.Time)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseLooseDecimal 把数字或数字字符串解析为decimal
func parseLooseDecimal(v interface{}) (decimal.Decimal, bool) {
	if v == nil {
		return decimal.Zero, false
	}
	s, err := cast.ToStringE(v)
	if err != nil || strings.TrimSpace(s) == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
