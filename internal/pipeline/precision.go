package pipeline

import (
	"context"

	"github.com/shopspring/decimal"
	"tradebridge/internal/exchange"
	"tradebridge/internal/model"
	"tradebridge/pkg/logger"
	"tradebridge/pkg/utils"
)

// 数量精度对齐：向下取整到step size的整数倍，宁可下小单也不能触发交易所精度限制

// 常见交易对的step size静态表，进程内只读
// 查不到时才走exchangeInfo，最后兜底到保守默认值
var stepSizeTable = map[string]string{
	// BTC pairs
	"BTCUSDT":  "0.001",
	"BTCUSD":   "0.001",
	"BTCBUSD":  "0.001",
	"BTCFDUSD": "0.001",

	// ETH pairs
	"ETHUSDT": "0.0001",
	"ETHUSD":  "0.0001",
	"ETHBUSD": "0.0001",
	"ETHBTC":  "0.00001",

	// Major altcoins
	"ADAUSDT":  "1",
	"BNBUSDT":  "0.001",
	"SOLUSDT":  "0.001",
	"XRPUSDT":  "0.1",
	"DOGEUSDT": "1",
	"AVAXUSDT": "0.01",
	"LINKUSDT": "0.01",
	"DOTUSDT":  "0.01",
	"UNIUSDT":  "0.01",
	"LTCUSDT":  "0.001",
	"BCHUSDT":  "0.001",
	"FILUSDT":  "0.01",
	"TRXUSDT":  "1",
	"EOSUSDT":  "0.1",
	"XLMUSDT":  "1",
	"XMRUSDT":  "0.001",
	"ETCUSDT":  "0.01",
	"VETUSDT":  "1",
	"ICPUSDT":  "0.01",
	"FTMUSDT":  "1",
	"HBARUSDT": "1",
	"NEARUSDT": "0.01",
	"ATOMUSDT": "0.01",
	"ALGOUSDT": "1",
	"MATICUSDT": "1",
	"SANDUSDT":  "1",
	"MANAUSDT":  "1",

	// Popular futures symbols
	"1000PEPEUSDT":  "1000",
	"1000SHIBUSDT":  "1000",
	"1000FLOKIUSDT": "1000",
}

// 静态表和exchangeInfo都拿不到时的保守默认步长
const defaultStepSize = "0.001"

// cleanOrderSymbol 还原交易所可识别的合约名（去掉TradingView装饰）
func cleanOrderSymbol(symbol string) string {
	return utils.CleanSymbol(symbol)
}

type PrecisionNormalizer struct {
	gw exchange.Gateway
}

func NewPrecisionNormalizer(gw exchange.Gateway) *PrecisionNormalizer {
	return &PrecisionNormalizer{gw: gw}
}

// lookupStepSize 三级查找：静态表 -> exchangeInfo -> 默认值
// 回退到哪一级都有日志，方便排查精度问题
func (n *PrecisionNormalizer) lookupStepSize(ctx context.Context, symbol string) decimal.Decimal {
	if raw, ok := stepSizeTable[symbol]; ok {
		step, _ := decimal.NewFromString(raw)
		return step
	}

	if raw, err := n.gw.LotStepSize(ctx, symbol); err == nil {
		if step, perr := decimal.NewFromString(raw); perr == nil && step.IsPositive() {
			logger.Warnf("step size for %s not in static table, using exchange LOT_SIZE %s", symbol, raw)
			return step
		}
	} else {
		logger.Warnf("step size lookup failed for %s, using default %s: %v", symbol, defaultStepSize, err)
	}

	step, _ := decimal.NewFromString(defaultStepSize)
	return step
}

// Normalize 把原始数量对齐到symbol的step size并渲染成下单字符串
// 字符串的小数位数必须和step size完全一致，交易所对此敏感
func (n *PrecisionNormalizer) Normalize(ctx context.Context, quantity decimal.Decimal, symbol string) (*model.SizingDecision, error) {
	step := n.lookupStepSize(ctx, cleanOrderSymbol(symbol))

	// 向下取整到step的整数倍，绝不四舍五入
	floored := quantity.Div(step).Floor().Mul(step)
	if !floored.IsPositive() {
		return nil, &SizingError{Msg: "Calculated quantity is zero"}
	}

	decimals := int32(0)
	if step.Exponent() < 0 {
		decimals = -step.Exponent()
	}

	return &model.SizingDecision{
		RawQuantity:              quantity,
		NormalizedQuantity:       floored,
		NormalizedQuantityString: floored.StringFixed(decimals),
	}, nil
}
