package router

import (
	"github.com/gin-gonic/gin"

	"go-shop-api/internal/service"
	"go-shop-api/internal/transport/http/ez"
	mdw "go-shop-api/internal/transport/http/middleware"
)

func mountOrders(authed *gin.RouterGroup, d Deps) {
	e := ez.New(authed)

	e.GET("/orders", func(c *gin.Context) (any, error) {
		list, err := d.Orders.ListByUser(c, c.GetString(mdw.KeyUserID))
		if err != nil {
			return nil, actionErr(err)
		}
		return list, nil
	})

	ez.POST(e, "/orders", func(c *gin.Context, in service.PlaceOrderInput) (any, error) {
		o, err := d.Orders.Place(c, c.GetString(mdw.KeyUserID), in)
		if err != nil {
			return nil, actionErr(err)
		}
		return o, nil
	})
}
