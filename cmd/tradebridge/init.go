package main

import (
	"gorm.io/gorm"
	"tradebridge/conf"
	"tradebridge/internal/dao/query"
	"tradebridge/internal/exchange"
	"tradebridge/internal/exchange/binance"
	"tradebridge/internal/handler/execution"
	"tradebridge/internal/handler/preference"
	"tradebridge/internal/handler/webhook"
	"tradebridge/internal/pipeline"
	"tradebridge/internal/router"
	"tradebridge/pkg/logger"
)

func InitRouter(db *gorm.DB) Router {
	appCfg := conf.AppConfig

	var gw exchange.Gateway
	client, err := binance.NewClient(appCfg.Binance.ApiKey, appCfg.Binance.SecretKey, appCfg.Binance.Testnet)
	if err != nil {
		// 没有密钥也要把服务拉起来：信号照收照记，只是不下单
		logger.Warnf("binance client unavailable, signals will be recorded but not executed: %v", err)
	} else {
		gw = client
	}

	prefDao := query.NewPreferenceDao(db)
	signalDao := query.NewSignalDao(db)
	execDao := query.NewExecutionDao(db)

	userRef := appCfg.Webhook.DefaultUserRef
	if userRef == "" {
		userRef = "default"
	}

	p := pipeline.NewSignalPipeline(gw, prefDao, signalDao, execDao, userRef)

	wh := webhook.NewHandler(p)
	ph := preference.NewHandler(prefDao, userRef)
	eh := execution.NewHandler(execDao, gw)

	return router.NewApiRouter(wh, ph, eh)
}
