package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpadp "github.com/samnaidups/CordaProjects/internal/adapter/http"
	"github.com/samnaidups/CordaProjects/internal/adapter/middleware"
	"github.com/samnaidups/CordaProjects/internal/adapter/repository/mysql"
	"github.com/samnaidups/CordaProjects/internal/config"
	"github.com/samnaidups/CordaProjects/internal/domain/ledger"
	"github.com/samnaidups/CordaProjects/internal/flow"
	"github.com/samnaidups/CordaProjects/internal/infrastructure/cache"
	"github.com/samnaidups/CordaProjects/internal/infrastructure/db"
	"github.com/samnaidups/CordaProjects/internal/oracle"
	"github.com/samnaidups/CordaProjects/internal/usecase/transition"
	"github.com/samnaidups/CordaProjects/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		slog.Error("mysql", "err", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		slog.Error("migrate", "err", err)
		os.Exit(1)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		slog.Error("redis", "err", err)
		os.Exit(1)
	}

	var resolver flow.IdentityResolver
	if len(cfg.PartyRegistry) > 0 {
		reg := flow.StaticResolver{}
		for key, name := range cfg.PartyRegistry {
			reg[key] = ledger.Party{Name: name, Key: key}
		}
		resolver = reg
	}

	uc := transition.NewUsecase(
		mysql.NewGormUoW(gdb),
		oracle.Static{Value: cfg.OracleAttested},
		resolver,
		time.Duration(cfg.SignTTLSecs)*time.Second,
	)

	h := httpadp.NewHandler()
	th := httpadp.NewTransitionHandler(uc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	idemp := middleware.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second)
	g := e.Group("/loans", idemp)
	g.POST("/proposals", th.Propose)
	g.POST("/proposals/:linear_id/roi", th.ModifyROI)
	g.POST("/proposals/:linear_id/installments", th.ModifyInstallments)
	g.POST("/proposals/:linear_id/accept", th.Accept)
	g.POST("/requests", th.Request)
	g.POST("/:linear_id/settlements", th.Settle)
	g.GET("/:linear_id", th.Get)

	addr := ":" + cfg.AppPort
	slog.Info("listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		slog.Error("server", "err", err)
		os.Exit(1)
	}
}
