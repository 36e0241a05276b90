package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// JSON解析失败也返回200+status文档，绝不给TradingView可重试的状态码
func TestWebhookMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g := gin.New()
	h := NewHandler(nil)
	g.POST("/webhook", h.HandlerWebhook())

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "error" {
		t.Errorf("status field = %v", body["status"])
	}
	if body["timing"] == nil {
		t.Error("timing missing from error response")
	}
}
