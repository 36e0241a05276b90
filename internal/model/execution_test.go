package model

import (
	"encoding/json"
	"testing"
	"time"
)

// timing应答的key和时间格式是和前端的硬约定
func TestTimingTraceMarshal(t *testing.T) {
	sent := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	trace := NewTimingTrace()
	trace.MarkSignalSent(sent)
	trace.MarkProcessed()

	data, err := json.Marshal(trace)
	if err != nil {
		t.Fatal(err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"signal_sent", "received", "processed", "sent_to_exchange", "executed"} {
		if _, ok := m[key]; !ok {
			t.Errorf("timing json missing key %q", key)
		}
	}

	if got := m["signal_sent"]; got != "2024-01-01T10:00:00" {
		t.Errorf("signal_sent = %v, want 2024-01-01T10:00:00", got)
	}
	// 未到达的阶段渲染为null
	if m["executed"] != nil {
		t.Errorf("executed should be null, got %v", m["executed"])
	}
	if m["received"] == nil || m["processed"] == nil {
		t.Error("received/processed should be stamped")
	}
}

func TestOutcomeConstructors(t *testing.T) {
	ok := SuccessOutcome("123", map[string]interface{}{"orderId": float64(123)})
	if !ok.Success || ok.OrderId != "123" {
		t.Errorf("unexpected success outcome: %+v", ok)
	}

	bad := FailureOutcome(20003, "Order failed: boom")
	if bad.Success || bad.Error == "" || bad.ErrKind != 20003 {
		t.Errorf("unexpected failure outcome: %+v", bad)
	}
}
