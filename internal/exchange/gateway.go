package exchange

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Gateway 交易所网关，流水线唯一的对外I/O依赖
// 进程启动时构造一次，测试时可以替换成fake
type Gateway interface {
	// 获取合约账户的余额概况
	AccountSummary(ctx context.Context) (*AccountSummary, error)

	// 获取symbol最新成交价
	TickerPrice(ctx context.Context, symbol string) (decimal.Decimal, error)

	// 查询symbol的LOT_SIZE最小下单步长，返回交易所原始字符串如"0.001"
	LotStepSize(ctx context.Context, symbol string) (string, error)

	// 设置symbol的杠杆倍数
	SetLeverage(ctx context.Context, symbol string, leverage int) error

	// 提交市价单，quantity必须是已对齐精度的字符串
	CreateMarketOrder(ctx context.Context, symbol, side, quantity string) (*OrderAck, error)
}

// 下单方向
const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// AccountSummary 合约账户余额概况
type AccountSummary struct {
	Asset                 string           `json:"asset"`
	AvailableBalance      *decimal.Decimal `json:"available_balance"`
	WalletBalance         *decimal.Decimal `json:"wallet_balance"`
	CrossWalletBalance    *decimal.Decimal `json:"cross_wallet_balance"`
	TotalWalletBalance    *decimal.Decimal `json:"total_wallet_balance"`
	TotalUnrealizedProfit *decimal.Decimal `json:"total_unrealized_profit"`
	TotalMarginBalance    *decimal.Decimal `json:"total_margin_balance"`
	UpdateTime            int64            `json:"update_time"`
}

// OrderAck 交易所下单应答
type OrderAck struct {
	OrderId string                 `json:"order_id"`
	Raw     map[string]interface{} `json:"raw"`
}

// APIError 交易所明确拒绝请求，带交易所错误码
type APIError struct {
	HttpStatus int
	Code       int
	Msg        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("exchange api error: code=%d msg=%s (http %d)", e.Code, e.Msg, e.HttpStatus)
}

// TransportError 网络层失败（连接、超时），和交易所拒绝区分开
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("exchange transport error during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
