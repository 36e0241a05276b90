package pipeline

import (
	"context"
	"errors"
	"fmt"

	"tradebridge/internal/consts"
	"tradebridge/internal/exchange"
	"tradebridge/internal/model"
	"tradebridge/pkg/errors/ecode"
	"tradebridge/pkg/logger"
)

// OrderExecutor 提交市价单并把交易所错误归类成结构化结果
type OrderExecutor struct {
	gw exchange.Gateway
}

func NewOrderExecutor(gw exchange.Gateway) *OrderExecutor {
	return &OrderExecutor{gw: gw}
}

// Submit 按action方向提交市价单
// 返回的outcome里区分交易所拒单和网络故障，便于上层决定是否告警
func (e *OrderExecutor) Submit(ctx context.Context, symbol, action, quantity string) *model.ExecutionOutcome {
	var side string
	switch action {
	case consts.ActionBuy:
		side = exchange.SideBuy
	case consts.ActionSell:
		side = exchange.SideSell
	default:
		return model.FailureOutcome(ecode.ValidateErr, fmt.Sprintf("Unsupported action: %s", action))
	}

	ack, err := e.gw.CreateMarketOrder(ctx, symbol, side, quantity)
	if err != nil {
		var apiErr *exchange.APIError
		var transErr *exchange.TransportError
		switch {
		case errors.As(err, &apiErr):
			logger.Error("order rejected by exchange",
				logger.Pair("symbol", symbol),
				logger.Pair("side", side),
				logger.Pair("code", apiErr.Code),
				logger.Pair("msg", apiErr.Msg))
			return model.FailureOutcome(ecode.ExchangeErr, fmt.Sprintf("Order failed: %s", apiErr.Msg))
		case errors.As(err, &transErr):
			logger.Error("order transport failure",
				logger.Pair("symbol", symbol),
				logger.Pair("side", side),
				logger.Pair("err", transErr.Error()))
			return model.FailureOutcome(ecode.TransportErr, fmt.Sprintf("Order failed: %v", err))
		default:
			return model.FailureOutcome(ecode.Unknown, fmt.Sprintf("Order failed: %v", err))
		}
	}

	logger.Info("order executed",
		logger.Pair("symbol", symbol),
		logger.Pair("side", side),
		logger.Pair("quantity", quantity),
		logger.Pair("order_id", ack.OrderId))
	return model.SuccessOutcome(ack.OrderId, ack.Raw)
}
