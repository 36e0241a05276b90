package webhook

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"tradebridge/internal/model"
	"tradebridge/internal/pipeline"
)

type Handler struct {
	pipeline *pipeline.SignalPipeline
}

func NewHandler(p *pipeline.SignalPipeline) *Handler {
	return &Handler{pipeline: p}
}

// HandlerWebhook 接收TradingView的alert并交给流水线处理
// 应答永远是200+status文档，不走ApiResponse包装：
// TradingView不解析应答体，但对非200会盲目重试，重试一笔市价单比丢一笔更糟
func (h *Handler) HandlerWebhook() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var alert model.Alert
		if err := ctx.ShouldBindJSON(&alert); err != nil {
			ctx.JSON(http.StatusOK, model.WebhookResult{
				Status:  model.StatusError,
				Message: fmt.Sprintf("Invalid payload: %v", err),
				Timing:  model.NewTimingTrace(),
			})
			return
		}

		result := h.pipeline.Process(ctx.Request.Context(), alert)
		ctx.JSON(http.StatusOK, result)
	}
}
