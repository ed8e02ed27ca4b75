package router

import (
	"github.com/gin-gonic/gin"

	"go-shop-api/internal/domain"
	"go-shop-api/internal/transport/http/ez"
	mdw "go-shop-api/internal/transport/http/middleware"
)

func mountCart(authed *gin.RouterGroup, d Deps) {
	e := ez.New(authed)

	e.GET("/cart", func(c *gin.Context) (any, error) {
		cart, err := d.Cart.Get(c, c.GetString(mdw.KeyUserID))
		if err != nil {
			return nil, actionErr(err)
		}
		return cart, nil
	})

	// 整车覆盖写；带 version 就做条件写（不匹配回 409），不带保持覆盖语义
	type replaceIn struct {
		Items   domain.CartItems `json:"items"`
		Version *int64           `json:"version"`
	}
	ez.POST(e, "/cart", func(c *gin.Context, in replaceIn) (any, error) {
		cart, err := d.Cart.Replace(c, c.GetString(mdw.KeyUserID), in.Items, in.Version)
		if err != nil {
			return nil, actionErr(err)
		}
		return cart, nil
	})

	type mergeIn struct {
		Items domain.CartItems `json:"items"`
	}
	ez.POST(e, "/cart/merge", func(c *gin.Context, in mergeIn) (any, error) {
		cart, err := d.Cart.Merge(c, c.GetString(mdw.KeyUserID), in.Items)
		if err != nil {
			return nil, actionErr(err)
		}
		return cart, nil
	})
}
