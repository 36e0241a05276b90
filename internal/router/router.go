package router

import (
	"github.com/gin-gonic/gin"
	"tradebridge/internal/handler/execution"
	"tradebridge/internal/handler/ping"
	"tradebridge/internal/handler/preference"
	"tradebridge/internal/handler/webhook"
	"tradebridge/internal/middleware"
)

type ApiRouter struct {
	webhookHandler *webhook.Handler
	prefHandler    *preference.Handler
	execHandler    *execution.Handler
}

func NewApiRouter(wh *webhook.Handler, ph *preference.Handler, eh *execution.Handler) *ApiRouter {
	return &ApiRouter{webhookHandler: wh, prefHandler: ph, execHandler: eh}
}

func (api *ApiRouter) Load(g *gin.Engine) {

	g.Use(gin.Recovery())
	g.Use(middleware.RequestId())
	g.Use(middleware.Logger)
	g.Use(middleware.NoCache())

	g.GET("/ping", ping.Ping())

	// webhook挂在根路径，TradingView的alert配置里只填一个URL
	// 不挂防重中间件：同一策略连续发信号是合法场景
	g.POST("/webhook", api.webhookHandler.HandlerWebhook())

	base := g.Group("/api/v1")

	p := base.Group("/preferences", middleware.AntiDuplicateMiddleware())
	{
		p.GET("/options", api.prefHandler.Options())
		p.GET("/current", api.prefHandler.Current())
		p.POST("/product", api.prefHandler.SelectProduct())
		p.POST("/strategy", api.prefHandler.SelectStrategy())
		p.POST("/direction", api.prefHandler.SelectDirection())
		p.POST("/leverage", api.prefHandler.SelectLeverage())
		p.POST("/capital", api.prefHandler.SelectCapital())
	}

	e := base.Group("/executions")
	{
		e.GET("", api.execHandler.Recent())
	}

	a := base.Group("/account")
	{
		a.GET("/summary", api.execHandler.AccountSummary())
	}
}
