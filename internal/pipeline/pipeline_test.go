package pipeline

import (
	"context"
	"strings"
	"testing"

	"tradebridge/internal/exchange"
	"tradebridge/internal/model"
	"tradebridge/internal/model/entity"
)

func newTestPipeline(gw exchange.Gateway, row *entity.StrategyPreference) (*SignalPipeline, *fakeSignalDao, *fakeExecutionDao) {
	signalDao := &fakeSignalDao{}
	execDao := &fakeExecutionDao{}
	p := NewSignalPipeline(gw, &fakePreferenceDao{pref: row}, signalDao, execDao, "default")
	return p, signalDao, execDao
}

func allowAllPref() *entity.StrategyPreference {
	return prefRow(entity.StrategyPreference{
		UserRef:  "default",
		Strategy: strPtr("ALSAPRO 1"),
	})
}

func TestProcessExecutesAllowedSignal(t *testing.T) {
	gw := &fakeGateway{balance: "10000", price: "50000"}
	p, signalDao, execDao := newTestPipeline(gw, allowAllPref())

	result := p.Process(context.Background(), model.Alert{
		Action:   "buy",
		Symbol:   "BINANCE:BTCUSDT.P",
		Quantity: "0.0156",
		Strategy: "ALSAPRO 1",
		Time:     "2024-01-01T10:00:00Z",
	})

	if result.Status != model.StatusSuccess {
		t.Fatalf("status = %s message = %s", result.Status, result.Message)
	}
	if result.Message != "Trade executed" {
		t.Errorf("message = %q", result.Message)
	}
	if result.Result == nil || !result.Result.Success || result.Result.OrderId != "10001" {
		t.Errorf("result = %+v", result.Result)
	}

	// 下单参数：symbol归一化，数量对齐step size
	if len(gw.orders) != 1 {
		t.Fatalf("orders = %d", len(gw.orders))
	}
	order := gw.orders[0]
	if order.symbol != "BTCUSDT" || order.side != "BUY" || order.quantity != "0.015" {
		t.Errorf("order = %+v", order)
	}

	// timing全阶段都有
	tr := result.Timing
	if tr == nil || tr.SignalSent == nil || tr.Received == nil || tr.Processed == nil ||
		tr.SentToExchange == nil || tr.Executed == nil {
		t.Errorf("timing incomplete: %+v", tr)
	}

	// 信号和执行都落库
	if len(signalDao.signals) != 1 {
		t.Errorf("signals saved = %d", len(signalDao.signals))
	}
	if len(execDao.execs) != 1 || execDao.execs[0].Status != "success" {
		t.Fatalf("execs = %+v", execDao.execs)
	}
	if execDao.execs[0].OrderId == nil || *execDao.execs[0].OrderId != "10001" {
		t.Errorf("saved order id = %v", execDao.execs[0].OrderId)
	}
}

func TestProcessIgnoresFilteredSignal(t *testing.T) {
	gw := &fakeGateway{}
	row := prefRow(entity.StrategyPreference{
		UserRef:       "default",
		Strategy:      strPtr("ALSAPRO 1"),
		DirectionMode: strPtr("allow_long_only"),
	})
	p, signalDao, execDao := newTestPipeline(gw, row)

	result := p.Process(context.Background(), model.Alert{
		Action:   "sell",
		Symbol:   "ETHUSDT",
		Quantity: "1",
		Strategy: "ALSAPRO 1",
	})

	if result.Status != model.StatusIgnored {
		t.Fatalf("status = %s", result.Status)
	}
	if !strings.Contains(result.Message, "Blocked short signal") {
		t.Errorf("message = %q", result.Message)
	}
	if len(gw.orders) != 0 {
		t.Errorf("no order expected, got %d", len(gw.orders))
	}

	// 被忽略的信号也要留痕
	if len(signalDao.signals) != 1 {
		t.Errorf("signals saved = %d", len(signalDao.signals))
	}
	if len(execDao.execs) != 1 || execDao.execs[0].Status != "ignored" {
		t.Fatalf("execs = %+v", execDao.execs)
	}
	if execDao.execs[0].ErrorMessage == nil || !strings.Contains(*execDao.execs[0].ErrorMessage, "Blocked short signal") {
		t.Errorf("saved reason = %v", execDao.execs[0].ErrorMessage)
	}
}

func TestProcessLeverageAndCapitalApplied(t *testing.T) {
	gw := &fakeGateway{balance: "10000", price: "50000"}
	row := prefRow(entity.StrategyPreference{
		UserRef:                  "default",
		Strategy:                 strPtr("ALSAPRO 1"),
		Leverage:                 floatPtr(2),
		CapitalAllocationPercent: floatPtr(50),
	})
	p, _, execDao := newTestPipeline(gw, row)

	result := p.Process(context.Background(), model.Alert{
		Action:   "buy",
		Symbol:   "BTCUSDT",
		Quantity: "0.01",
		Strategy: "ALSAPRO 1",
	})

	if result.Status != model.StatusSuccess || !result.Result.Success {
		t.Fatalf("result = %+v", result)
	}
	if len(gw.leverageCalls) != 1 || gw.leverageCalls[0] != 2 {
		t.Errorf("leverage calls = %v", gw.leverageCalls)
	}
	// 10000×50%/50000 = 0.1 > 0.01，资金下限生效
	if gw.orders[0].quantity != "0.1" {
		t.Errorf("order quantity = %s, want 0.1", gw.orders[0].quantity)
	}
	if result.Result.AppliedLeverage == nil || *result.Result.AppliedLeverage != 2 {
		t.Errorf("applied leverage = %v", result.Result.AppliedLeverage)
	}
	if result.Result.AppliedCapitalPercent == nil || *result.Result.AppliedCapitalPercent != 50 {
		t.Errorf("applied percent = %v", result.Result.AppliedCapitalPercent)
	}
	if execDao.execs[0].AppliedLeverage == nil || *execDao.execs[0].AppliedLeverage != 2 {
		t.Errorf("saved leverage = %v", execDao.execs[0].AppliedLeverage)
	}
}

func TestProcessOrderFailure(t *testing.T) {
	gw := &fakeGateway{orderErr: &exchange.APIError{HttpStatus: 400, Code: -2019, Msg: "Margin is insufficient."}}
	p, _, execDao := newTestPipeline(gw, allowAllPref())

	result := p.Process(context.Background(), model.Alert{
		Action:   "buy",
		Symbol:   "BTCUSDT",
		Quantity: "0.01",
		Strategy: "ALSAPRO 1",
	})

	// 准入通过但下单失败：status仍是success，失败细节在result里
	if result.Status != model.StatusSuccess {
		t.Fatalf("status = %s", result.Status)
	}
	if result.Message != "Trade execution failed" {
		t.Errorf("message = %q", result.Message)
	}
	if result.Result.Success || !strings.Contains(result.Result.Error, "Margin is insufficient.") {
		t.Errorf("result = %+v", result.Result)
	}
	if execDao.execs[0].Status != "failed" {
		t.Errorf("saved status = %s", execDao.execs[0].Status)
	}
	// 失败路径的timing也完整
	if result.Timing.Executed == nil {
		t.Error("executed stamp missing on failure")
	}
}

// 数量低于最小下单单位时不应该碰交易所下单接口
func TestProcessSubStepQuantity(t *testing.T) {
	gw := &fakeGateway{}
	p, _, _ := newTestPipeline(gw, allowAllPref())

	result := p.Process(context.Background(), model.Alert{
		Action:   "buy",
		Symbol:   "BTCUSDT",
		Quantity: "0.0005",
		Strategy: "ALSAPRO 1",
	})

	if result.Status != model.StatusSuccess || result.Result.Success {
		t.Fatalf("result = %+v", result)
	}
	if !strings.Contains(result.Result.Error, "Calculated quantity is zero") {
		t.Errorf("error = %q", result.Result.Error)
	}
	if len(gw.orders) != 0 {
		t.Errorf("no order expected, got %d", len(gw.orders))
	}
}

func TestProcessLeverageFailureAborts(t *testing.T) {
	gw := &fakeGateway{levErr: context.DeadlineExceeded}
	row := prefRow(entity.StrategyPreference{
		UserRef:  "default",
		Strategy: strPtr("ALSAPRO 1"),
		Leverage: floatPtr(3),
	})
	p, _, _ := newTestPipeline(gw, row)

	result := p.Process(context.Background(), model.Alert{
		Action:   "buy",
		Symbol:   "BTCUSDT",
		Quantity: "0.01",
		Strategy: "ALSAPRO 1",
	})

	if result.Result == nil || result.Result.Success {
		t.Fatalf("result = %+v", result)
	}
	if !strings.Contains(result.Result.Error, "Failed to set leverage") {
		t.Errorf("error = %q", result.Result.Error)
	}
	if len(gw.orders) != 0 {
		t.Error("order must not be submitted after leverage failure")
	}
}

func TestProcessEmptyAlert(t *testing.T) {
	p, signalDao, execDao := newTestPipeline(&fakeGateway{}, allowAllPref())

	result := p.Process(context.Background(), model.Alert{})
	if result.Status != model.StatusIgnored {
		t.Fatalf("status = %s", result.Status)
	}
	if result.Message != "Empty signal payload" {
		t.Errorf("message = %q", result.Message)
	}
	// 空信号不落库
	if len(signalDao.signals) != 0 || len(execDao.execs) != 0 {
		t.Errorf("empty alert should not be recorded: signals=%d execs=%d", len(signalDao.signals), len(execDao.execs))
	}
}

func TestProcessNoGateway(t *testing.T) {
	p, _, _ := newTestPipeline(nil, allowAllPref())

	result := p.Process(context.Background(), model.Alert{
		Action: "buy", Symbol: "BTCUSDT", Quantity: "0.01", Strategy: "ALSAPRO 1",
	})
	if result.Status != model.StatusIgnored {
		t.Fatalf("status = %s", result.Status)
	}
	if result.Message != "Exchange client not configured" {
		t.Errorf("message = %q", result.Message)
	}
}

// 应答里回显双方的strategy/product，便于排查mismatch
func TestProcessEchoesSelections(t *testing.T) {
	row := prefRow(entity.StrategyPreference{
		UserRef:  "default",
		Strategy: strPtr("ALSAPRO 1"),
		Product:  strPtr("BTC"),
	})
	p, _, _ := newTestPipeline(&fakeGateway{}, row)

	result := p.Process(context.Background(), model.Alert{
		Action: "buy", Symbol: "ETHUSDT", Quantity: "1", Strategy: "ALSAPRO 2",
	})
	if result.SelectedStrategy != "ALSAPRO 1" || result.SelectedProduct != "BTC" {
		t.Errorf("selected echo = %q/%q", result.SelectedStrategy, result.SelectedProduct)
	}
	if result.SignalStrategy != "ALSAPRO 2" || result.SignalProduct != "ETH" {
		t.Errorf("signal echo = %q/%q", result.SignalStrategy, result.SignalProduct)
	}
}
