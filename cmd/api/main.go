package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httpadp "lending-ledger/internal/adapter/http"
	"lending-ledger/internal/adapter/middleware"
	"lending-ledger/internal/adapter/repository/mysql"
	"lending-ledger/internal/config"
	"lending-ledger/internal/domain/ledger"
	"lending-ledger/internal/infrastructure/cache"
	"lending-ledger/internal/infrastructure/db"
	"lending-ledger/internal/infrastructure/logging"
	"lending-ledger/internal/infrastructure/metrics"
	"lending-ledger/internal/infrastructure/storage"
	ucAccount "lending-ledger/internal/usecase/account"
	ucCollateral "lending-ledger/internal/usecase/collateral"
	ucLedger "lending-ledger/internal/usecase/ledger"
	ucLoan "lending-ledger/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logging.InitLogger(cfg.LogLevel, cfg.LogFormat); err != nil {
		log.Fatalf("logger: %v", err)
	}
	logger := logging.GetLogger()
	defer func() { _ = logger.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN(), cfg.DBPool())
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Fatal("database handle", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Fatal("open redis", zap.Error(err))
	}
	defer rdb.Close()

	files, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal("upload dir", zap.Error(err))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	chain := ucLedger.NewChain(ledger.Zone(cfg.LedgerTZOffsetMinutes), nil)
	tx := mysql.NewGormUoW(gdb)

	loans := ucLoan.NewUsecase(mysql.NewLoanRepository(gdb), tx, chain, logging.WithComponent("loan"), m)
	accounts := ucAccount.NewUsecase(mysql.NewAccountRepository(gdb), tx, chain, logging.WithComponent("account"), m)
	collaterals := ucCollateral.NewUsecase(mysql.NewCollateralRepository(gdb), tx, files, chain, logging.WithComponent("collateral"), m)
	blocks := ucLedger.NewUsecase(mysql.NewBlockRepository(gdb), tx, chain, logging.WithComponent("ledger"), m)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover(), middleware.RequestLogger(logging.WithComponent("http")))

	httpadp.RegisterRoutes(e, httpadp.Handlers{
		Health:     httpadp.NewHandler(sqlDB).WithCheck("redis", cache.NewHealthCheck(rdb)),
		Loans:      httpadp.NewLoanHandler(loans),
		Ledger:     httpadp.NewLedgerHandler(blocks),
		Accounts:   httpadp.NewAccountHandler(accounts, loans),
		Collateral: httpadp.NewCollateralHandler(collaterals),
		Metrics:    metrics.Handler(reg),
	}, middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.AppPort
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
