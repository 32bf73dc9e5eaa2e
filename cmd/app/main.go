package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rpsduel/internal/config"
	"rpsduel/internal/db"
	"rpsduel/internal/domain"
	"rpsduel/internal/engine"
	"rpsduel/internal/events"
	httpServer "rpsduel/internal/http"
	"rpsduel/internal/http/handlers"
	"rpsduel/internal/http/middleware"
	"rpsduel/internal/ledger"
	"rpsduel/internal/logger"
	"rpsduel/internal/repository"
	"rpsduel/internal/service"
	"rpsduel/internal/ws"

	"github.com/gin-gonic/gin"
)

const escrowAccount = "escrow:rpsduel"

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)
	service.InitJWT(cfg.JWTSecret)

	dbPool := db.Connect(cfg.DatabaseURL)
	defer dbPool.Close()

	bank := ledger.NewPostgres(dbPool)
	archiveRepo := repository.NewGameArchiveRepository(dbPool)
	entryRepo := repository.NewLedgerEntryRepository(dbPool)
	admins := service.NewAdminList(cfg.AdminAddresses)

	hub := ws.NewHub()
	defer hub.Close()

	// The archiver snapshots games through the engine, which in turn emits
	// into the archiver. The closure breaks the construction cycle; no event
	// is emitted before engine.New returns.
	var eng *engine.Engine
	archiver := events.NewArchiver(archiveRepo, func(id string) (domain.Game, bool) {
		return eng.Game(id)
	})
	defer archiver.Close()

	eng, err := engine.New(engine.Options{
		Instance:           cfg.InstanceTag,
		EscrowAccount:      escrowAccount,
		EntryFee:           cfg.EntryFee,
		SecondsUntilReveal: cfg.RevealWindowSeconds,
		Ledger:             bank,
		Admin:              admins,
		Sink: events.Fanout{
			events.LogSink{},
			events.MetricsSink{},
			hub,
			archiver,
		},
	})
	if err != nil {
		logger.Fatal("engine init failed", "error", err)
	}

	h := &handlers.Handler{
		Engine:          eng,
		Ledger:          bank,
		Admins:          admins,
		Archive:         archiveRepo,
		Entries:         entryRepo,
		StartingBalance: cfg.StartingBalance,
	}

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	r := gin.Default()

	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	httpServer.RegisterRoutes(r, h, hub, dbPool,
		cfg.APIRateLimit, time.Duration(cfg.APIRateWindowSeconds)*time.Second)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "instance", cfg.InstanceTag)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
