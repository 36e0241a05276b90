package pipeline

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"tradebridge/internal/exchange"
	"tradebridge/internal/model"
	"tradebridge/pkg/logger"
)

// SizingError 无法得出有效下单数量，属于预期内失败
type SizingError struct {
	Msg string
}

func (e *SizingError) Error() string {
	return e.Msg
}

// PositionSizer 根据信号数量或者资金分配比例计算原始下单数量
type PositionSizer struct {
	gw exchange.Gateway
}

func NewPositionSizer(gw exchange.Gateway) *PositionSizer {
	return &PositionSizer{gw: gw}
}

var oneHundred = decimal.NewFromInt(100)

// ComputeRawQuantity 计算精度对齐前的原始数量
// 配置了资金比例时，取 max(信号数量, 余额×比例/价格)，比例起到下限而不是上限的作用
// referencePrice 为调用方提供的参考价，可为nil，此时依次回退到信号自带价格和最新成交价
func (s *PositionSizer) ComputeRawQuantity(
	ctx context.Context,
	alert model.Alert,
	pref *model.Preference,
	referencePrice *decimal.Decimal,
) (decimal.Decimal, *float64, error) {

	baseQty, ok := alert.QuantityValue()
	if !ok {
		return decimal.Zero, nil, &SizingError{Msg: fmt.Sprintf("Invalid quantity: %v", alert.Quantity)}
	}
	baseQty = baseQty.Abs()

	percent := pref.GetCapitalPercent()
	if percent <= 0 {
		return baseQty, nil, nil
	}

	symbol := cleanOrderSymbol(alert.Symbol)
	percentDec := decimal.NewFromFloat(percent)

	// 参考价：调用方传入 > 信号自带 > 实时ticker
	price := referencePrice
	if price == nil {
		if p, ok := alert.PriceValue(); ok && p.IsPositive() {
			price = &p
		}
	}
	if price == nil {
		if p, err := s.gw.TickerPrice(ctx, symbol); err == nil && p.IsPositive() {
			price = &p
		} else if err != nil {
			logger.Warnf("ticker price unavailable for %s, falling back: %v", symbol, err)
		}
	}

	// 可用余额
	var balance *decimal.Decimal
	if summary, err := s.gw.AccountSummary(ctx); err == nil && summary != nil {
		balance = summary.AvailableBalance
	} else if err != nil {
		logger.Warnf("account balance unavailable for sizing, falling back: %v", err)
	}

	if balance != nil && price != nil && price.IsPositive() {
		computed := balance.Mul(percentDec).Div(oneHundred).Div(*price)
		if computed.IsPositive() {
			applied := decimal.Max(baseQty, computed)
			logger.Info("capital sizing",
				logger.Pair("symbol", symbol),
				logger.Pair("base", baseQty.String()),
				logger.Pair("computed", computed.String()),
				logger.Pair("using", applied.String()))
			return applied, &percent, nil
		}
	}

	// 余额或价格拿不到时的兜底：信号数量按比例缩放
	fallback := baseQty.Mul(percentDec).Div(oneHundred)
	logger.Warnf("sizing fallback for %s: balance/price unavailable, using quantity*percent", symbol)
	return fallback, &percent, nil
}
