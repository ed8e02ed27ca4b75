package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop-api/internal/domain"
)

func TestTicketCreate_Defaults(t *testing.T) {
	s := NewTicketService(newFakeTicketRepo())

	tk, err := s.Create(context.Background(), "u1", TicketCreate{
		Subject: "Broken pump",
		Message: "The serum pump arrived broken",
	})
	require.NoError(t, err)
	assert.Equal(t, "other", tk.Category)
	assert.Equal(t, "normal", tk.Priority)
	assert.Equal(t, domain.TicketStatusOpen, tk.Status)
	require.Len(t, tk.Messages, 1)
	assert.Equal(t, domain.TicketAuthorUser, tk.Messages[0].Author)
	assert.Equal(t, "u1", tk.Messages[0].UserID)
}

func TestTicketCreate_Validation(t *testing.T) {
	s := NewTicketService(newFakeTicketRepo())
	ctx := context.Background()
	var ve *ValidationError

	_, err := s.Create(ctx, "u1", TicketCreate{Subject: "", Message: "x"})
	assert.ErrorAs(t, err, &ve)
	_, err = s.Create(ctx, "u1", TicketCreate{Subject: "x", Message: " "})
	assert.ErrorAs(t, err, &ve)
	_, err = s.Create(ctx, "u1", TicketCreate{Subject: "x", Message: "y", Category: "misc"})
	assert.ErrorAs(t, err, &ve)
	_, err = s.Create(ctx, "u1", TicketCreate{Subject: "x", Message: "y", Priority: "urgent"})
	assert.ErrorAs(t, err, &ve)
}

func TestTicketOwnership(t *testing.T) {
	s := NewTicketService(newFakeTicketRepo())
	ctx := context.Background()

	tk, err := s.Create(ctx, "u1", TicketCreate{Subject: "s", Message: "m"})
	require.NoError(t, err)

	_, err = s.GetOwn(ctx, tk.ID, "u2")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.GetOwn(ctx, tk.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, tk.ID, got.ID)
}

func TestTicketReplyAsUser_ReopensToPending(t *testing.T) {
	repo := newFakeTicketRepo()
	s := NewTicketService(repo)
	ctx := context.Background()

	tk, err := s.Create(ctx, "u1", TicketCreate{Subject: "s", Message: "m"})
	require.NoError(t, err)

	// 客服标记 resolved
	_, err = s.ReplyAsAdmin(ctx, tk.ID, "a1", "done", nil, domain.TicketStatusResolved)
	require.NoError(t, err)

	// 用户再回一句，状态被拉回 pending
	got, err := s.ReplyAsUser(ctx, tk.ID, "u1", "still broken", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusPending, got.Status)
	assert.Len(t, got.Messages, 3)
}

func TestTicketReply_RequiresContent(t *testing.T) {
	s := NewTicketService(newFakeTicketRepo())
	ctx := context.Background()

	tk, err := s.Create(ctx, "u1", TicketCreate{Subject: "s", Message: "m"})
	require.NoError(t, err)

	var ve *ValidationError
	_, err = s.ReplyAsUser(ctx, tk.ID, "u1", "  ", nil)
	assert.ErrorAs(t, err, &ve)

	// 只有附件也算内容
	_, err = s.ReplyAsUser(ctx, tk.ID, "u1", "", domain.StringList{"/uploads/a.jpg"})
	assert.NoError(t, err)
}

func TestTicketReplyAsAdmin_StatusOptional(t *testing.T) {
	s := NewTicketService(newFakeTicketRepo())
	ctx := context.Background()

	tk, err := s.Create(ctx, "u1", TicketCreate{Subject: "s", Message: "m"})
	require.NoError(t, err)

	// 不带 status 不动状态
	got, err := s.ReplyAsAdmin(ctx, tk.ID, "a1", "checking", nil, "")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusOpen, got.Status)

	var ve *ValidationError
	_, err = s.ReplyAsAdmin(ctx, tk.ID, "a1", "x", nil, "archived")
	assert.ErrorAs(t, err, &ve)
}

func TestTicketCloseByUser(t *testing.T) {
	s := NewTicketService(newFakeTicketRepo())
	ctx := context.Background()

	tk, err := s.Create(ctx, "u1", TicketCreate{Subject: "s", Message: "m"})
	require.NoError(t, err)

	got, err := s.CloseByUser(ctx, tk.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusClosed, got.Status)

	_, err = s.CloseByUser(ctx, tk.ID, "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTicketAdminListAndPatch(t *testing.T) {
	s := NewTicketService(newFakeTicketRepo())
	ctx := context.Background()

	tk, err := s.Create(ctx, "u1", TicketCreate{Subject: "s", Message: "m"})
	require.NoError(t, err)
	_, err = s.Create(ctx, "u2", TicketCreate{Subject: "s2", Message: "m2"})
	require.NoError(t, err)

	var ve *ValidationError
	_, err = s.AdminList(ctx, "weird")
	assert.ErrorAs(t, err, &ve)

	all, err := s.AdminList(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	high := "high"
	got, err := s.AdminPatch(ctx, tk.ID, domain.TicketPatch{Priority: &high})
	require.NoError(t, err)
	assert.Equal(t, "high", got.Priority)

	resolved := domain.TicketStatusResolved
	got, err = s.AdminPatch(ctx, tk.ID, domain.TicketPatch{Status: &resolved})
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusResolved, got.Status)

	only, err := s.AdminList(ctx, domain.TicketStatusResolved)
	require.NoError(t, err)
	assert.Len(t, only, 1)
}
