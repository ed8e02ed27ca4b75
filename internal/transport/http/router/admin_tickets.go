package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-shop-api/internal/domain"
	"go-shop-api/internal/transport/http/ez"
	mdw "go-shop-api/internal/transport/http/middleware"
)

func mountAdminTickets(admin *gin.RouterGroup, d Deps) {
	e := ez.New(admin)

	e.GET("/tickets", func(c *gin.Context) (any, error) {
		list, err := d.Tickets.AdminList(c, c.Query("status"))
		if err != nil {
			return nil, actionErr(err)
		}
		return list, nil
	})

	e.GET("/tickets/:id", func(c *gin.Context) (any, error) {
		t, err := d.Tickets.AdminGet(c, c.Param("id"))
		if err != nil {
			return nil, actionErr(err)
		}
		return t, nil
	})

	// 客服回复；带 status 顺手改状态，不带则状态不动
	type replyIn struct {
		Text        string            `json:"text"`
		Attachments domain.StringList `json:"attachments"`
		Status      string            `json:"status"`
	}
	ez.POST(e, "/tickets/:id/messages", func(c *gin.Context, in replyIn) (any, error) {
		t, err := d.Tickets.ReplyAsAdmin(c, c.Param("id"), c.GetString(mdw.KeyUserID), in.Text, in.Attachments, in.Status)
		if err != nil {
			return nil, actionErr(err)
		}
		return t, nil
	})

	ez.RegisterAction[domain.TicketPatch, *domain.Ticket](e, d.DB, ez.Action[domain.TicketPatch, *domain.Ticket]{
		Method: "PATCH",
		Path:   "/tickets/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, _ *gorm.DB, in *domain.TicketPatch) (*domain.Ticket, error) {
			t, err := d.Tickets.AdminPatch(c, c.Param("id"), *in)
			if err != nil {
				return nil, actionErr(err)
			}
			return t, nil
		},
	})
}
