package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestNormalizeFloorsToStep(t *testing.T) {
	n := NewPrecisionNormalizer(&fakeGateway{})
	ctx := context.Background()

	cases := []struct {
		symbol string
		qty    string
		want   string
	}{
		{"BTCUSDT", "0.0156", "0.015"},
		{"BTCUSDT", "0.001", "0.001"},
		{"ETHUSDT", "1.23456", "1.2345"},
		{"ADAUSDT", "15.9", "15"},
		{"XRPUSDT", "10.57", "10.5"},
		{"1000PEPEUSDT", "2500", "2000"},
	}
	for _, c := range cases {
		got, err := n.Normalize(ctx, mustDec(t, c.qty), c.symbol)
		if err != nil {
			t.Errorf("Normalize(%s, %s) err: %v", c.symbol, c.qty, err)
			continue
		}
		if got.NormalizedQuantityString != c.want {
			t.Errorf("Normalize(%s, %s) = %q, want %q", c.symbol, c.qty, got.NormalizedQuantityString, c.want)
		}
	}
}

// 取整到零说明仓位小于最小下单单位，必须报错而不是下0单
func TestNormalizeZeroQuantity(t *testing.T) {
	n := NewPrecisionNormalizer(&fakeGateway{})
	_, err := n.Normalize(context.Background(), mustDec(t, "0.0005"), "BTCUSDT")
	if err == nil {
		t.Fatal("expected error for sub-step quantity")
	}
	var se *SizingError
	if !errors.As(err, &se) {
		t.Fatalf("want SizingError, got %T", err)
	}
	if se.Msg != "Calculated quantity is zero" {
		t.Errorf("msg = %q", se.Msg)
	}
}

// 静态表没有的symbol走exchangeInfo
func TestNormalizeDynamicStep(t *testing.T) {
	n := NewPrecisionNormalizer(&fakeGateway{stepSize: "0.1"})
	got, err := n.Normalize(context.Background(), mustDec(t, "3.456"), "NEWCOINUSDT")
	if err != nil {
		t.Fatal(err)
	}
	if got.NormalizedQuantityString != "3.4" {
		t.Errorf("dynamic step = %q, want 3.4", got.NormalizedQuantityString)
	}
}

// exchangeInfo也拿不到时用保守默认步长
func TestNormalizeDefaultStep(t *testing.T) {
	n := NewPrecisionNormalizer(&fakeGateway{stepErr: errors.New("boom")})
	got, err := n.Normalize(context.Background(), mustDec(t, "0.0156"), "NEWCOINUSDT")
	if err != nil {
		t.Fatal(err)
	}
	if got.NormalizedQuantityString != "0.015" {
		t.Errorf("default step = %q, want 0.015", got.NormalizedQuantityString)
	}
}

// symbol先归一化再查表，TradingView格式不该落到fallback
func TestNormalizeCleansSymbol(t *testing.T) {
	n := NewPrecisionNormalizer(&fakeGateway{stepErr: errors.New("should not be called")})
	got, err := n.Normalize(context.Background(), mustDec(t, "0.0156"), "BINANCE:BTCUSDT.P")
	if err != nil {
		t.Fatal(err)
	}
	if got.NormalizedQuantityString != "0.015" {
		t.Errorf("cleaned symbol step = %q, want 0.015", got.NormalizedQuantityString)
	}
}

// 向下取整的两条性质：结果不超过原值，差值小于一个step
func TestNormalizeFloorProperties(t *testing.T) {
	n := NewPrecisionNormalizer(&fakeGateway{})
	ctx := context.Background()
	step := mustDec(t, "0.001")

	for _, raw := range []string{"0.0011", "0.0019", "1.999999", "42.0001"} {
		qty := mustDec(t, raw)
		got, err := n.Normalize(ctx, qty, "BTCUSDT")
		if err != nil {
			t.Fatal(err)
		}
		if got.NormalizedQuantity.GreaterThan(qty) {
			t.Errorf("floored %s above input %s", got.NormalizedQuantity, qty)
		}
		if qty.Sub(got.NormalizedQuantity).GreaterThanOrEqual(step) {
			t.Errorf("floored %s more than one step below %s", got.NormalizedQuantity, qty)
		}
	}
}
