package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"go-shop-api/internal/domain"
)

type TicketRepo struct{ db *gorm.DB }

func NewTicketRepo(db *gorm.DB) *TicketRepo { return &TicketRepo{db: db} }

func (r *TicketRepo) Create(ctx context.Context, t *domain.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TicketRepo) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *TicketRepo) FindByIDForUser(ctx context.Context, id, userID string) (*domain.Ticket, error) {
	return r.findOne(ctx, "id = ? AND user_id = ?", id, userID)
}

func (r *TicketRepo) findOne(ctx context.Context, cond string, args ...any) (*domain.Ticket, error) {
	var t domain.Ticket
	err := r.db.WithContext(ctx).First(&t, append([]any{cond}, args...)...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepo) Save(ctx context.Context, t *domain.Ticket) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *TicketRepo) ListByUser(ctx context.Context, userID string) ([]domain.Ticket, error) {
	var ts []domain.Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&ts).Error
	return ts, err
}

func (r *TicketRepo) ListAll(ctx context.Context, status string) ([]domain.Ticket, error) {
	q := r.db.WithContext(ctx).Model(&domain.Ticket{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var ts []domain.Ticket
	err := q.Order("updated_at DESC").Find(&ts).Error
	return ts, err
}
