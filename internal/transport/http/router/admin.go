package router

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"go-shop-api/internal/core/server"
	"go-shop-api/internal/domain"
	"go-shop-api/internal/transport/http/ez"
	mdw "go-shop-api/internal/transport/http/middleware"
)

// NewAdminEngine 管理端引擎，整组 isAdmin 才放行
func NewAdminEngine(d Deps) *gin.Engine {
	r := server.NewEngine(d.Log, d.Cfg.App.ClientOrigin)

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(15*time.Second),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := r.Group("/admin/v1")
	admin.Use(mdw.AuthJWT(d.JWTer, true))

	mountAdminUsers(admin, d)
	mountAdminProducts(admin, d)
	mountAdminOrders(admin, d)
	mountAdminTickets(admin, d)

	// 每个管理员自己的表格列布局
	ez.Crud(ez.CrudConfig[domain.TableConfig]{
		DB:      d.DB,
		Group:   admin,
		Path:    "/table-configs",
		New:     func() *domain.TableConfig { return &domain.TableConfig{} },
		OrderBy: "updated_at DESC",
	})

	return r
}

func mountAdminUsers(admin *gin.RouterGroup, d Deps) {
	e := ez.New(admin)

	e.GET("/users", func(c *gin.Context) (any, error) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
		if page < 1 {
			page = 1
		}
		if size < 1 || size > 100 {
			size = 20
		}
		users, total, err := d.Users.List(c, domain.UserListFilter{
			Offset:      (page - 1) * size,
			Limit:       size,
			Query:       c.Query("q"),
			WithDeleted: c.Query("withDeleted") == "true",
		})
		if err != nil {
			return nil, actionErr(err)
		}
		return gin.H{"list": users, "total": total, "page": page, "size": size}, nil
	})

	// 封号即软删，历史订单/工单保留
	ez.RegisterAction[struct{}, gin.H](e, d.DB, ez.Action[struct{}, gin.H]{
		Method: "POST",
		Path:   "/users/:id/ban",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := d.Users.SoftDelete(c, id); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, ez.NotFound("user not found")
				}
				return nil, err
			}
			return gin.H{"id": id, "banned": true}, nil
		},
	})
}
