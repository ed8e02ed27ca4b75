package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-shop-api/internal/domain"
	"go-shop-api/internal/transport/http/ez"
)

func mountAdminOrders(admin *gin.RouterGroup, d Deps) {
	e := ez.New(admin)

	e.GET("/orders", func(c *gin.Context) (any, error) {
		list, err := d.Orders.AdminList(c)
		if err != nil {
			return nil, actionErr(err)
		}
		return list, nil
	})

	ez.RegisterAction[domain.OrderStatusUpdate, *domain.Order](e, d.DB, ez.Action[domain.OrderStatusUpdate, *domain.Order]{
		Method: "PATCH",
		Path:   "/orders/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *domain.OrderStatusUpdate) (*domain.Order, error) {
			o, err := d.Orders.AdminUpdate(c, c.Param("id"), *in)
			if err != nil {
				return nil, actionErr(err)
			}
			return o, nil
		},
	})
}
