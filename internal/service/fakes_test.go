package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"

	"go-shop-api/internal/domain"
	"go-shop-api/internal/event"
)

// 内存版仓库，只给单测用

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.users {
		if ex.Provider == u.Provider && ex.ProviderID == u.ProviderID {
			return errors.New("Error 1062: Duplicate entry")
		}
		if u.Username != nil && ex.Username != nil && *ex.Username == *u.Username {
			return errors.New("Error 1062: Duplicate entry")
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok && !u.DeletedAt.Valid {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByProvider(_ context.Context, provider, providerID string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Provider == provider && u.ProviderID == providerID && !u.DeletedAt.Valid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username != nil && *u.Username == username && !u.DeletedAt.Valid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(_ context.Context, f domain.UserListFilter) ([]domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		if u.DeletedAt.Valid && !f.WithDeleted {
			continue
		}
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

// SoftDelete 和真仓库一致：行留在唯一索引里，默认查询看不见
func (r *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.DeletedAt.Valid {
		return gorm.ErrRecordNotFound
	}
	u.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return nil
}

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newFakeCartRepo() *fakeCartRepo { return &fakeCartRepo{carts: map[string]*domain.Cart{}} }

func (r *fakeCartRepo) Get(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.carts[userID]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeCartRepo) write(userID string, items domain.CartItems) *domain.Cart {
	c, ok := r.carts[userID]
	if !ok {
		c = &domain.Cart{ID: "cart-" + userID, UserID: userID}
		r.carts[userID] = c
	}
	c.Items = domain.NormalizeItems(items)
	c.Version++
	cp := *c
	return &cp
}

func (r *fakeCartRepo) Replace(_ context.Context, userID string, items domain.CartItems, expectedVersion *int64) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var cur int64
	if c, ok := r.carts[userID]; ok {
		cur = c.Version
	}
	if expectedVersion != nil && *expectedVersion != cur {
		return nil, domain.ErrVersionConflict
	}
	return r.write(userID, items), nil
}

func (r *fakeCartRepo) Merge(_ context.Context, userID string, anon domain.CartItems) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var server domain.CartItems
	if c, ok := r.carts[userID]; ok {
		server = c.Items
	}
	return r.write(userID, domain.MergeItems(server, domain.NormalizeItems(anon))), nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products []domain.Product
}

func (r *fakeProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ex := range r.products {
		if ex.SKU == p.SKU {
			return errors.New("Error 1062: Duplicate entry")
		}
	}
	r.products = append(r.products, *p)
	return nil
}

func (r *fakeProductRepo) find(sku string, activeOnly bool) *domain.Product {
	for i := range r.products {
		if r.products[i].SKU == sku && (!activeOnly || r.products[i].Active) {
			cp := r.products[i]
			return &cp
		}
	}
	return nil
}

func (r *fakeProductRepo) FindBySKU(_ context.Context, sku string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(sku, false), nil
}

func (r *fakeProductRepo) FindActiveBySKU(_ context.Context, sku string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(sku, true), nil
}

func (r *fakeProductRepo) ListActive(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Product{}
	for _, p := range r.products {
		if p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListAll(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Product(nil), r.products...), nil
}

func (r *fakeProductRepo) UpdateBySKU(_ context.Context, sku string, upd domain.ProductUpdate) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].SKU != sku {
			continue
		}
		p := &r.products[i]
		if upd.Name != nil {
			p.Name = *upd.Name
		}
		if upd.Price != nil {
			p.Price = *upd.Price
		}
		if upd.Active != nil {
			p.Active = *upd.Active
		}
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProductRepo) DeleteBySKU(_ context.Context, sku string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].SKU == sku {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []domain.Order
	// Place 的约定是同事务清空购物车，这里记录被清过的用户
	clearedFor []string
}

func (r *fakeOrderRepo) Place(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, *o)
	r.clearedFor = append(r.clearedFor, o.UserID)
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			cp := r.orders[i]
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Order(nil), r.orders...), nil
}

func (r *fakeOrderRepo) Update(_ context.Context, id string, upd domain.OrderStatusUpdate) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID != id {
			continue
		}
		o := &r.orders[i]
		if upd.Status != nil {
			o.Status = *upd.Status
		}
		if upd.TrackingNo != nil {
			o.TrackingNo = *upd.TrackingNo
		}
		if upd.TrackingCompany != nil {
			o.TrackingCompany = *upd.TrackingCompany
		}
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[string]*domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo { return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}} }

func (r *fakeTicketRepo) Create(_ context.Context, t *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tickets[t.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) FindByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tickets[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTicketRepo) FindByIDForUser(_ context.Context, id, userID string) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tickets[id]; ok && t.UserID == userID {
		cp := *t
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeTicketRepo) Save(_ context.Context, t *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.tickets[t.ID] = &cp
	return nil
}

func (r *fakeTicketRepo) ListByUser(_ context.Context, userID string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Ticket{}
	for _, t := range r.tickets {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) ListAll(_ context.Context, status string) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.Ticket{}
	for _, t := range r.tickets {
		if status == "" || t.Status == status {
			out = append(out, *t)
		}
	}
	return out, nil
}

type publishedEvent struct {
	key string
	ev  event.OrderEvent
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, ev event.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{key: key, ev: ev})
	return nil
}

func (p *fakePublisher) Close() {}
