package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-shop-api/internal/core/server"
	mdw "go-shop-api/internal/transport/http/middleware"
)

// NewAPIEngine 面向店面前端的引擎
func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewEngine(d.Log, d.Cfg.App.ClientOrigin)

	maxBody := int64(d.Cfg.Uploads.MaxSizeMB) << 20
	if maxBody <= 0 {
		maxBody = 16 << 20
	}
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(maxBody),
		mdw.Timeout(10*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/uploads", d.Cfg.Uploads.Dir)

	api := r.Group("/api/v1")

	// 鉴权分组（/me、购物车、订单、工单都挂这里）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWTer, false))

	mountAuth(api, authed, d)
	mountCatalog(api, d)
	mountCart(authed, d)
	mountOrders(authed, d)
	mountTickets(authed, d)
	mountUpload(authed, d)

	return r
}
