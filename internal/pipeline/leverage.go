package pipeline

import (
	"context"
	"fmt"
	"math"

	"tradebridge/internal/consts"
	"tradebridge/internal/exchange"
	"tradebridge/pkg/logger"
)

// LeverageController 下单前按偏好设置symbol杠杆
// 设置失败是硬错误：带错误杠杆下单比不下单更危险
type LeverageController struct {
	gw exchange.Gateway
}

func NewLeverageController(gw exchange.Gateway) *LeverageController {
	return &LeverageController{gw: gw}
}

// Apply 把偏好里的杠杆取整并钳制到交易所允许区间后下发
// requested<=0 表示未配置，跳过设置
func (l *LeverageController) Apply(ctx context.Context, symbol string, requested float64) (*int, error) {
	if requested <= 0 {
		return nil, nil
	}

	leverage := int(math.Round(requested))
	if leverage < consts.LeverageMin {
		leverage = consts.LeverageMin
	}
	if leverage > consts.LeverageMax {
		leverage = consts.LeverageMax
	}

	if err := l.gw.SetLeverage(ctx, symbol, leverage); err != nil {
		return nil, fmt.Errorf("Failed to set leverage: %v", err)
	}

	logger.Info("leverage applied",
		logger.Pair("symbol", symbol),
		logger.Pair("leverage", leverage))
	return &leverage, nil
}
