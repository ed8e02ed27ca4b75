package service

import (
	"context"
	"strings"
	"time"

	"go-shop-api/internal/domain"
	"go-shop-api/pkg/utils"
)

type TicketService struct {
	tickets domain.TicketRepository
}

func NewTicketService(tickets domain.TicketRepository) *TicketService {
	return &TicketService{tickets: tickets}
}

type TicketCreate struct {
	Subject     string            `json:"subject"`
	Category    string            `json:"category"`
	Priority    string            `json:"priority"`
	Message     string            `json:"message"`
	Attachments domain.StringList `json:"attachments"`
}

func (s *TicketService) Create(ctx context.Context, userID string, in TicketCreate) (*domain.Ticket, error) {
	if strings.TrimSpace(in.Subject) == "" || strings.TrimSpace(in.Message) == "" {
		return nil, Invalid("subject and message required")
	}
	category := in.Category
	if category == "" {
		category = "other"
	}
	priority := in.Priority
	if priority == "" {
		priority = "normal"
	}
	if !domain.ValidTicketCategory(category) {
		return nil, Invalid("invalid category")
	}
	if !domain.ValidTicketPriority(priority) {
		return nil, Invalid("invalid priority")
	}
	t := &domain.Ticket{
		ID:       utils.NewID(),
		UserID:   userID,
		Subject:  in.Subject,
		Category: category,
		Priority: priority,
		Status:   domain.TicketStatusOpen,
		Messages: domain.TicketMessages{{
			Author:      domain.TicketAuthorUser,
			UserID:      userID,
			Text:        in.Message,
			Attachments: in.Attachments,
			CreatedAt:   time.Now(),
		}},
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) ListOwn(ctx context.Context, userID string) ([]domain.Ticket, error) {
	return s.tickets.ListByUser(ctx, userID)
}

func (s *TicketService) GetOwn(ctx context.Context, id, userID string) (*domain.Ticket, error) {
	t, err := s.tickets.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

// ReplyAsUser 用户追加留言，状态强制回到 pending（resolved/closed 也一样）
func (s *TicketService) ReplyAsUser(ctx context.Context, id, userID, text string, attachments domain.StringList) (*domain.Ticket, error) {
	if strings.TrimSpace(text) == "" && len(attachments) == 0 {
		return nil, Invalid("text or attachments required")
	}
	t, err := s.GetOwn(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	t.AppendMessage(domain.TicketMessage{
		Author:      domain.TicketAuthorUser,
		UserID:      userID,
		Text:        text,
		Attachments: attachments,
		CreatedAt:   time.Now(),
	}, "")
	if err := s.tickets.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) CloseByUser(ctx context.Context, id, userID string) (*domain.Ticket, error) {
	t, err := s.GetOwn(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	t.Status = domain.TicketStatusClosed
	if err := s.tickets.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ---------- 后台 ----------

func (s *TicketService) AdminList(ctx context.Context, status string) ([]domain.Ticket, error) {
	if status != "" && !domain.ValidTicketStatus(status) {
		return nil, Invalid("invalid status")
	}
	return s.tickets.ListAll(ctx, status)
}

func (s *TicketService) AdminGet(ctx context.Context, id string) (*domain.Ticket, error) {
	t, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNotFound
	}
	return t, nil
}

// ReplyAsAdmin 后台留言不自动改状态，带 status 才改
func (s *TicketService) ReplyAsAdmin(ctx context.Context, id, adminID, text string, attachments domain.StringList, status string) (*domain.Ticket, error) {
	if strings.TrimSpace(text) == "" && len(attachments) == 0 {
		return nil, Invalid("text or attachments required")
	}
	if status != "" && !domain.ValidTicketStatus(status) {
		return nil, Invalid("invalid status")
	}
	t, err := s.AdminGet(ctx, id)
	if err != nil {
		return nil, err
	}
	t.AppendMessage(domain.TicketMessage{
		Author:      domain.TicketAuthorAdmin,
		UserID:      adminID,
		Text:        text,
		Attachments: attachments,
		CreatedAt:   time.Now(),
	}, status)
	if err := s.tickets.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TicketService) AdminPatch(ctx context.Context, id string, patch domain.TicketPatch) (*domain.Ticket, error) {
	if patch.Status != nil && !domain.ValidTicketStatus(*patch.Status) {
		return nil, Invalid("invalid status")
	}
	if patch.Priority != nil && !domain.ValidTicketPriority(*patch.Priority) {
		return nil, Invalid("invalid priority")
	}
	if patch.Category != nil && !domain.ValidTicketCategory(*patch.Category) {
		return nil, Invalid("invalid category")
	}
	t, err := s.AdminGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if err := s.tickets.Save(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}
