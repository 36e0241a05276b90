package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
	"tradebridge/internal/exchange"
	"tradebridge/internal/model/entity"
)

// 测试用的交易所fake，记录调用并返回预设应答

type fakeGateway struct {
	mu sync.Mutex

	balance    string
	price      string
	stepSize   string
	stepErr    error
	orderErr   error
	levErr     error
	priceErr   error
	balanceErr error

	leverageCalls []int
	orders        []fakeOrder
}

type fakeOrder struct {
	symbol   string
	side     string
	quantity string
}

func (f *fakeGateway) AccountSummary(ctx context.Context) (*exchange.AccountSummary, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	bal, _ := decimal.NewFromString(f.balance)
	return &exchange.AccountSummary{Asset: "USDT", AvailableBalance: &bal}, nil
}

func (f *fakeGateway) TickerPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if f.priceErr != nil {
		return decimal.Zero, f.priceErr
	}
	return decimal.NewFromString(f.price)
}

func (f *fakeGateway) LotStepSize(ctx context.Context, symbol string) (string, error) {
	if f.stepErr != nil {
		return "", f.stepErr
	}
	if f.stepSize == "" {
		return "", fmt.Errorf("no LOT_SIZE filter for symbol %s", symbol)
	}
	return f.stepSize, nil
}

func (f *fakeGateway) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.levErr != nil {
		return f.levErr
	}
	f.leverageCalls = append(f.leverageCalls, leverage)
	return nil
}

func (f *fakeGateway) CreateMarketOrder(ctx context.Context, symbol, side, quantity string) (*exchange.OrderAck, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	f.orders = append(f.orders, fakeOrder{symbol: symbol, side: side, quantity: quantity})
	return &exchange.OrderAck{
		OrderId: "10001",
		Raw:     map[string]interface{}{"orderId": float64(10001), "status": "FILLED"},
	}, nil
}

// 内存dao，落库内容直接断言

type fakePreferenceDao struct {
	pref *entity.StrategyPreference
	err  error
}

func (d *fakePreferenceDao) GetOrCreate(ctx context.Context, userRef string) (*entity.StrategyPreference, error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.pref == nil {
		d.pref = &entity.StrategyPreference{UserRef: userRef}
	}
	return d.pref, nil
}

func (d *fakePreferenceDao) Update(ctx context.Context, userRef string, updates map[string]interface{}) (*entity.StrategyPreference, error) {
	return d.pref, d.err
}

type fakeSignalDao struct {
	mu      sync.Mutex
	signals []*entity.Signal
}

func (d *fakeSignalDao) SaveSignal(ctx context.Context, signal *entity.Signal) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.signals = append(d.signals, signal)
	return nil
}

type fakeExecutionDao struct {
	mu    sync.Mutex
	execs []*entity.Execution
}

func (d *fakeExecutionDao) SaveExecution(ctx context.Context, exec *entity.Execution) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.execs = append(d.execs, exec)
	return nil
}

func (d *fakeExecutionDao) GetRecent(ctx context.Context, limit int) ([]entity.Execution, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]entity.Execution, 0, len(d.execs))
	for i := len(d.execs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *d.execs[i])
	}
	return out, nil
}

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }
func prefRow(p entity.StrategyPreference) *entity.StrategyPreference { return &p }
