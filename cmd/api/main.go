package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-shop-api/internal/bootstrap"
	"go-shop-api/internal/core/auth"
	"go-shop-api/internal/core/cache"
	"go-shop-api/internal/core/config"
	"go-shop-api/internal/core/database"
	"go-shop-api/internal/core/logger"
	"go-shop-api/internal/core/oauth"
	"go-shop-api/internal/core/server"
	"go-shop-api/internal/domain"
	"go-shop-api/internal/event"
	"go-shop-api/internal/repo"
	"go-shop-api/internal/service"
	"go-shop-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))

	var log *zap.Logger
	var cleanup func()
	if cfg.Log.File.Enable {
		log, cleanup = logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Enable:     true,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		})
	} else {
		log, cleanup = logger.New(cfg.Log.Level, cfg.Log.JSON)
	}
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{}, &domain.Product{}, &domain.Cart{},
			&domain.Order{}, &domain.Ticket{}, &domain.TableConfig{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	bootstrap.Seed(context.Background(), db, cfg, log)

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// Redis 没配就不走缓存
	var c *cache.Cache
	if cfg.Redis.Addr != "" {
		c = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		log.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// AMQP 没配就用 Nop
	var pub event.Publisher = event.Nop{}
	if cfg.AMQP.URL != "" {
		p, err := event.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warn("amqp connect failed, events disabled", zap.Error(err))
		} else {
			pub = p
			defer p.Close()
			log.Info("amqp publisher connected", zap.String("exchange", cfg.AMQP.Exchange))
		}
	}

	users := repo.NewUserRepo(db)
	deps := router.Deps{
		Log:       log,
		DB:        db,
		Cfg:       cfg,
		JWTer:     jwter,
		Auth:      service.NewAuthService(users, jwter, log),
		Catalog:   service.NewCatalogService(repo.NewProductRepo(db), c, log),
		Cart:      service.NewCartService(repo.NewCartRepo(db)),
		Orders:    service.NewOrderService(repo.NewOrderRepo(db), pub, log),
		Tickets:   service.NewTicketService(repo.NewTicketRepo(db)),
		Users:     users,
		Providers: buildProviders(cfg),
	}

	r := router.NewAPIEngine(deps)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)
	if errLog, err := logger.ToStdLogger(log, zapcore.ErrorLevel); err == nil {
		srv.ErrorLog = errLog
	}

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("shop api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("shop api start FAILED", zap.Error(err))
		}
	}()
	log.Info("shop api started SUCCESS")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("shop api stopped gracefully")
}

// buildProviders 凭据缺一不可，没配的 provider 不挂
func buildProviders(cfg *config.Config) map[string]*oauth.Provider {
	base := cfg.App.BaseURL
	out := map[string]*oauth.Provider{}
	if p := cfg.OAuth.Google; p.ClientID != "" && p.ClientSecret != "" {
		out[domain.ProviderGoogle] = oauth.Google(p.ClientID, p.ClientSecret, base+"/api/v1/auth/google/callback")
	}
	if p := cfg.OAuth.Facebook; p.ClientID != "" && p.ClientSecret != "" {
		out[domain.ProviderFacebook] = oauth.Facebook(p.ClientID, p.ClientSecret, base+"/api/v1/auth/facebook/callback")
	}
	if p := cfg.OAuth.Line; p.ClientID != "" && p.ClientSecret != "" {
		out[domain.ProviderLine] = oauth.Line(p.ClientID, p.ClientSecret, base+"/api/v1/auth/line/callback")
	}
	return out
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
