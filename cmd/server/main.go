package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"stockdesk/internal/commons"
	"stockdesk/internal/config"
	"stockdesk/internal/infrastructure/logger"
	"stockdesk/internal/infrastructure/metrics"
	"stockdesk/internal/infrastructure/mysql"
	"stockdesk/internal/order"
	orderrepo "stockdesk/internal/order/repository"
	"stockdesk/internal/order/usecase"
	"stockdesk/internal/server"
	"stockdesk/internal/stock"
	stockrepo "stockdesk/internal/stock/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	var (
		orderRepo usecase.OrderRepository
		stockRepo stock.Repository
	)

	switch cfg.Storage.Driver {
	case config.StorageMySQL:
		var db *sql.DB
		db, err = mysql.NewConnection(cfg.Database)
		if err != nil {
			zapLogger.Fatal("connecting to database", zap.Error(err))
		}
		defer db.Close()
		zapLogger.Info("database connected")

		orderRepo = orderrepo.NewMySQLOrderRepository(db)
		stockRepo = stockrepo.NewMySQLRepository(db)
	default:
		seed := &commons.Seed{}
		if cfg.Storage.SeedFile != "" {
			seed, err = commons.LoadSeed(cfg.Storage.SeedFile)
			if err != nil {
				zapLogger.Fatal("loading seed data", zap.String("file", cfg.Storage.SeedFile), zap.Error(err))
			}
		}
		zapLogger.Info("using in-memory storage",
			zap.Int("orders", len(seed.Orders)),
			zap.Int("stockLevels", len(seed.Stock)),
		)

		orderRepo = orderrepo.NewMemoryOrderRepository(seed.Orders...)
		stockRepo = stockrepo.NewMemoryRepository(seed.Stock...)
	}

	m := metrics.New()

	stockModule := stock.NewModule(stockRepo, zapLogger)
	orderModule, err := order.NewModule(orderRepo, stockModule.Service, m, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("building order module", zap.Error(err))
	}

	router := server.NewRouter(orderModule.Controller, stockModule.Controller, m, zapLogger)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
