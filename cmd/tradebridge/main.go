package main

import (
	"log"

	"tradebridge/conf"
	"tradebridge/internal/model/entity"
	"tradebridge/pkg/db"
	"tradebridge/pkg/logger"
)

// 启动服务（监听TradingView webhook）

/*
测试

curl -X POST http://localhost:8090/webhook \
  -H "Content-Type: application/json" \
  -d '{"action":"buy","symbol":"BTCUSDT","quantity":"0.01","strategy":"ALSAPRO 1","time":"2026-08-29T10:00:00Z"}'

*/

func main() {
	// 加载配置文件
	if err := conf.LoadConfig("config.yaml"); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(conf.AppConfig.Log)
	defer logger.Sync()

	gdb := db.Init(db.NewConfig(
		conf.AppConfig.Db.Username,
		conf.AppConfig.Db.Password,
		conf.AppConfig.Db.Host,
		conf.AppConfig.Db.Port,
		conf.AppConfig.Db.DbName,
	))

	// 表结构迁移，单用户部署直接在启动时做
	if err := gdb.AutoMigrate(
		&entity.StrategyPreference{},
		&entity.Signal{},
		&entity.Execution{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	apiRouter := InitRouter(gdb)

	srv := NewServer(&conf.AppConfig)
	srv.Run(apiRouter)
}
