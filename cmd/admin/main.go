package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-shop-api/internal/core/auth"
	"go-shop-api/internal/core/cache"
	"go-shop-api/internal/core/config"
	"go-shop-api/internal/core/database"
	"go-shop-api/internal/core/logger"
	"go-shop-api/internal/core/server"
	"go-shop-api/internal/event"
	"go-shop-api/internal/repo"
	"go-shop-api/internal/service"
	"go-shop-api/internal/transport/http/router"
)

// 管理端独立进程，端口和用户端分开，方便只在内网暴露
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	}

	var pub event.Publisher = event.Nop{}
	if cfg.AMQP.URL != "" {
		if p, err := event.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange); err != nil {
			log.Warn("amqp connect failed, events disabled", zap.Error(err))
		} else {
			pub = p
			defer p.Close()
		}
	}

	users := repo.NewUserRepo(db)
	deps := router.Deps{
		Log:     log,
		DB:      db,
		Cfg:     cfg,
		JWTer:   jwter,
		Auth:    service.NewAuthService(users, jwter, log),
		Catalog: service.NewCatalogService(repo.NewProductRepo(db), c, log),
		Cart:    service.NewCartService(repo.NewCartRepo(db)),
		Orders:  service.NewOrderService(repo.NewOrderRepo(db), pub, log),
		Tickets: service.NewTicketService(repo.NewTicketRepo(db)),
		Users:   users,
	}

	r := router.NewAdminEngine(deps)

	addr := server.Addr(cfg.App.Admin.Host, cfg.App.Admin.Port)
	srv := server.BuildServer(addr, r, 5*time.Second, 15*time.Second, 60*time.Second)

	log.Info("admin api starting", zap.String("addr", addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("admin api start FAILED", zap.Error(err))
		}
	}()
	log.Info("admin api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("admin api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
