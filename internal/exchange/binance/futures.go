package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
	"tradebridge/internal/exchange"
	"tradebridge/pkg/logger"
)

// 合约接口封装，Client实现exchange.Gateway

type assetBalance struct {
	Asset              string `json:"asset"`
	Balance            string `json:"balance"`
	CrossWalletBalance string `json:"crossWalletBalance"`
	AvailableBalance   string `json:"availableBalance"`
	UpdateTime         int64  `json:"updateTime"`
}

type accountInfo struct {
	TotalWalletBalance    string `json:"totalWalletBalance"`
	TotalUnrealizedProfit string `json:"totalUnrealizedProfit"`
	TotalMarginBalance    string `json:"totalMarginBalance"`
	UpdateTime            int64  `json:"updateTime"`
}

// AccountSummary 查询USDT资产余额和账户总览
func (c *Client) AccountSummary(ctx context.Context) (*exchange.AccountSummary, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/fapi/v2/balance", nil, true)
	if err != nil {
		return nil, err
	}
	var balances []assetBalance
	if err := json.Unmarshal(body, &balances); err != nil {
		return nil, fmt.Errorf("decode balance response: %w", err)
	}

	summary := &exchange.AccountSummary{Asset: "USDT"}
	for _, b := range balances {
		if b.Asset != "USDT" {
			continue
		}
		summary.AvailableBalance = parseOptionalDecimal(b.AvailableBalance)
		summary.WalletBalance = parseOptionalDecimal(b.Balance)
		summary.CrossWalletBalance = parseOptionalDecimal(b.CrossWalletBalance)
		summary.UpdateTime = b.UpdateTime
		break
	}

	// 账户总览失败不致命，余额部分已经够sizing用
	if body, err = c.doRequest(ctx, http.MethodGet, "/fapi/v2/account", nil, true); err == nil {
		var info accountInfo
		if err := json.Unmarshal(body, &info); err == nil {
			summary.TotalWalletBalance = parseOptionalDecimal(info.TotalWalletBalance)
			summary.TotalUnrealizedProfit = parseOptionalDecimal(info.TotalUnrealizedProfit)
			summary.TotalMarginBalance = parseOptionalDecimal(info.TotalMarginBalance)
			if info.UpdateTime > 0 {
				summary.UpdateTime = info.UpdateTime
			}
		}
	} else {
		logger.Warnf("account info unavailable, balance only: %v", err)
	}

	return summary, nil
}

// TickerPrice 获取最新成交价
func (c *Client) TickerPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	body, err := c.doRequest(ctx, http.MethodGet, "/fapi/v1/ticker/price", params, false)
	if err != nil {
		return decimal.Zero, err
	}
	var ticker struct {
		Symbol string `json:"symbol"`
		Price  string `json:"price"`
	}
	if err := json.Unmarshal(body, &ticker); err != nil {
		return decimal.Zero, fmt.Errorf("decode ticker response: %w", err)
	}
	price, err := decimal.NewFromString(ticker.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid ticker price %q: %w", ticker.Price, err)
	}
	return price, nil
}

// LotStepSize 从exchangeInfo里找symbol的LOT_SIZE步长
func (c *Client) LotStepSize(ctx context.Context, symbol string) (string, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/fapi/v1/exchangeInfo", nil, false)
	if err != nil {
		return "", err
	}
	var info struct {
		Symbols []struct {
			Symbol  string `json:"symbol"`
			Filters []struct {
				FilterType string `json:"filterType"`
				StepSize   string `json:"stepSize"`
			} `json:"filters"`
		} `json:"symbols"`
	}
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("decode exchange info: %w", err)
	}
	for _, s := range info.Symbols {
		if s.Symbol != symbol {
			continue
		}
		for _, f := range s.Filters {
			if f.FilterType == "LOT_SIZE" && f.StepSize != "" {
				return f.StepSize, nil
			}
		}
	}
	return "", fmt.Errorf("no LOT_SIZE filter for symbol %s", symbol)
}

// SetLeverage 设置symbol的杠杆倍数
func (c *Client) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("leverage", strconv.Itoa(leverage))
	_, err := c.doRequest(ctx, http.MethodPost, "/fapi/v1/leverage", params, true)
	return err
}

// CreateMarketOrder 提交市价单
// quantity必须是已按step size渲染好的字符串，交易所对精度格式敏感
func (c *Client) CreateMarketOrder(ctx context.Context, symbol, side, quantity string) (*exchange.OrderAck, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("side", side)
	params.Set("type", "MARKET")
	params.Set("quantity", quantity)
	params.Set("newClientOrderId", c.newClientOrderId())

	body, err := c.doRequest(ctx, http.MethodPost, "/fapi/v1/order", params, true)
	if err != nil {
		return nil, err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode order response: %w", err)
	}

	ack := &exchange.OrderAck{Raw: raw}
	switch v := raw["orderId"].(type) {
	case float64:
		ack.OrderId = strconv.FormatInt(int64(v), 10)
	case string:
		ack.OrderId = v
	}
	return ack, nil
}

func parseOptionalDecimal(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
