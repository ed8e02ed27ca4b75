package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewEngine 两个端共用的底座：CORS + panic 恢复，其余中间件由各端自己叠
func NewEngine(l *zap.Logger, allowOrigins ...string) *gin.Engine {
	r := gin.New()
	r.Use(ginzap.RecoveryWithZap(l, true))

	cc := cors.DefaultConfig()
	if len(allowOrigins) > 0 {
		cc.AllowOrigins = allowOrigins
	} else {
		cc.AllowAllOrigins = true
	}
	cc.AllowCredentials = !cc.AllowAllOrigins
	cc.AddAllowHeaders("Authorization")
	r.Use(cors.New(cc))
	return r
}

func BuildServer(addr string, handler http.Handler, rt, wt, it time.Duration) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        handler,
		ReadTimeout:    rt,
		WriteTimeout:   wt,
		IdleTimeout:    it,
		MaxHeaderBytes: 1 << 20, // 1MB
	}
}

func Addr(host string, port int) string { return fmt.Sprintf("%s:%d", host, port) }
