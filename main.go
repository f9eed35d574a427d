package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/balajiselvarajk/tds-solver-project-2/internal/api"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/config"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/llm"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/redis"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/service/answer"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := os.Getenv("TDS_SOLVER_CONFIG")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if cfg.LLM.Token == "" {
		log.Printf("warning: LLM_FOUNDRY_TOKEN not set, remote answers will fail")
	}

	// Answer history is optional: enabled only when a database is configured.
	var history api.HistoryLister
	var histStore answer.HistoryStore
	dbType := os.Getenv("TDS_SOLVER_DB")
	if dbType == "" {
		dbType = "sqlite3"
	}
	if _, ok := cfg.Databases[dbType]; ok {
		db, err := storage.Open(dbType, cfg)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()
		if err := storage.Migrate(db, dbType); err != nil {
			log.Fatalf("migrate database: %v", err)
		}
		store := storage.NewStore(db)
		history = store
		histStore = store
	}

	// The answer cache is optional too; an unreachable redis only disables it.
	var cache *redis.Client
	if cfg.Redis.Host != "" {
		cache, err = redis.NewClient(cfg)
		if err != nil {
			log.Printf("answer cache disabled: %v", err)
			cache = nil
		}
	}
	defer cache.Close()

	model := llm.NewClient(cfg)
	service, err := answer.NewService(cfg, model, cache, histStore)
	if err != nil {
		log.Fatalf("init answer service: %v", err)
	}

	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()
	service.StartTempSweeper(sweepCtx,
		time.Duration(cfg.BasicConfig.TempSweepInterval)*time.Minute,
		time.Duration(cfg.BasicConfig.TempDirTTL)*time.Minute)

	handlers := api.NewHandler(service, history)
	router := gin.Default()
	handlers.RegisterRoutes(router)

	if err := router.Run(cfg.BasicConfig.ServerAddress); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
