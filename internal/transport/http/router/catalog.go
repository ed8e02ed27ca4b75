package router

import (
	"github.com/gin-gonic/gin"

	"go-shop-api/internal/transport/http/ez"
)

func mountCatalog(api *gin.RouterGroup, d Deps) {
	pub := ez.New(api)

	pub.GET("/products", func(c *gin.Context) (any, error) {
		list, err := d.Catalog.PublicList(c)
		if err != nil {
			return nil, actionErr(err)
		}
		return list, nil
	})

	// :id 对外就是 sku
	pub.GET("/products/:id", func(c *gin.Context) (any, error) {
		p, err := d.Catalog.PublicDetail(c, c.Param("id"))
		if err != nil {
			return nil, actionErr(err)
		}
		return p, nil
	})
}
