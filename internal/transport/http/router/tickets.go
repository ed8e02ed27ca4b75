package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"go-shop-api/internal/domain"
	"go-shop-api/internal/service"
	"go-shop-api/internal/transport/http/ez"
	mdw "go-shop-api/internal/transport/http/middleware"
)

func mountTickets(authed *gin.RouterGroup, d Deps) {
	e := ez.New(authed)

	e.GET("/tickets", func(c *gin.Context) (any, error) {
		list, err := d.Tickets.ListOwn(c, c.GetString(mdw.KeyUserID))
		if err != nil {
			return nil, actionErr(err)
		}
		return list, nil
	})

	ez.POST(e, "/tickets", func(c *gin.Context, in service.TicketCreate) (any, error) {
		t, err := d.Tickets.Create(c, c.GetString(mdw.KeyUserID), in)
		if err != nil {
			return nil, actionErr(err)
		}
		return t, nil
	})

	e.GET("/tickets/:id", func(c *gin.Context) (any, error) {
		t, err := d.Tickets.GetOwn(c, c.Param("id"), c.GetString(mdw.KeyUserID))
		if err != nil {
			return nil, actionErr(err)
		}
		return t, nil
	})

	type replyIn struct {
		Text        string            `json:"text"`
		Attachments domain.StringList `json:"attachments"`
	}
	ez.POST(e, "/tickets/:id/messages", func(c *gin.Context, in replyIn) (any, error) {
		t, err := d.Tickets.ReplyAsUser(c, c.Param("id"), c.GetString(mdw.KeyUserID), in.Text, in.Attachments)
		if err != nil {
			return nil, actionErr(err)
		}
		return t, nil
	})

	// 关单不收 body，BindNone
	ez.RegisterAction[struct{}, *domain.Ticket](e, d.DB, ez.Action[struct{}, *domain.Ticket]{
		Method: "PATCH",
		Path:   "/tickets/:id/close",
		Binder: ez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *gorm.DB, _ *struct{}) (*domain.Ticket, error) {
			t, err := d.Tickets.CloseByUser(c, c.Param("id"), c.GetString(mdw.KeyUserID))
			if err != nil {
				return nil, actionErr(err)
			}
			return t, nil
		},
	})
}
