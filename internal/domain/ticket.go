package domain

import (
	"context"
	"database/sql/driver"
	"time"
)

const (
	TicketStatusOpen     = "open"
	TicketStatusPending  = "pending"
	TicketStatusResolved = "resolved"
	TicketStatusClosed   = "closed"

	TicketAuthorUser  = "user"
	TicketAuthorAdmin = "admin"
)

func ValidTicketStatus(s string) bool {
	switch s {
	case TicketStatusOpen, TicketStatusPending, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

func ValidTicketCategory(s string) bool {
	switch s {
	case "order", "product", "payment", "account", "other":
		return true
	}
	return false
}

func ValidTicketPriority(s string) bool {
	switch s {
	case "low", "normal", "high":
		return true
	}
	return false
}

type TicketMessage struct {
	Author      string     `json:"author"` // user | admin
	UserID      string     `json:"userId"`
	Text        string     `json:"text"`
	Attachments StringList `json:"attachments"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type TicketMessages []TicketMessage

func (l TicketMessages) Value() (driver.Value, error) { return jsonValue([]TicketMessage(l)) }
func (l *TicketMessages) Scan(src any) error          { return jsonScan(l, src) }

// Ticket 追加式留言串；用户追加留言会把状态强制拉回 pending，
// 后台可以显式设任意合法状态。不删除。
type Ticket struct {
	ID        string         `gorm:"primaryKey;size:36" json:"id"`
	UserID    string         `gorm:"size:36;not null;index" json:"userId"`
	Subject   string         `gorm:"size:191;not null" json:"subject"`
	Category  string         `gorm:"size:16;not null;default:other" json:"category"`
	Priority  string         `gorm:"size:16;not null;default:normal" json:"priority"`
	Status    string         `gorm:"size:16;not null;default:open;index" json:"status"`
	Messages  TicketMessages `gorm:"type:json" json:"messages"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (Ticket) TableName() string { return "tickets" }

// AppendMessage 作者是用户时状态强制变 pending（resolved/closed 也会被拉回）；
// 后台作者只在显式给出 status 时改状态。
func (t *Ticket) AppendMessage(m TicketMessage, explicitStatus string) {
	t.Messages = append(t.Messages, m)
	if m.Author == TicketAuthorUser {
		t.Status = TicketStatusPending
		return
	}
	if explicitStatus != "" {
		t.Status = explicitStatus
	}
}

// TicketPatch 后台改工单属性，nil 字段不动
type TicketPatch struct {
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
	Category *string `json:"category"`
}

type TicketRepository interface {
	Create(ctx context.Context, t *Ticket) error
	FindByID(ctx context.Context, id string) (*Ticket, error)
	// FindByIDForUser 非本人返回 nil（对外表现为 404）
	FindByIDForUser(ctx context.Context, id, userID string) (*Ticket, error)
	Save(ctx context.Context, t *Ticket) error
	ListByUser(ctx context.Context, userID string) ([]Ticket, error)
	ListAll(ctx context.Context, status string) ([]Ticket, error)
}
