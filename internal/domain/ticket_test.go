package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppendMessage_UserForcesPending(t *testing.T) {
	for _, start := range []string{TicketStatusOpen, TicketStatusPending, TicketStatusResolved, TicketStatusClosed} {
		tk := &Ticket{Status: start}
		tk.AppendMessage(TicketMessage{Author: TicketAuthorUser, Text: "still broken"}, "")
		assert.Equal(t, TicketStatusPending, tk.Status, "from %s", start)
		assert.Len(t, tk.Messages, 1)
	}
}

func TestAppendMessage_AdminKeepsStatusByDefault(t *testing.T) {
	tk := &Ticket{Status: TicketStatusPending}
	tk.AppendMessage(TicketMessage{Author: TicketAuthorAdmin, Text: "looking into it"}, "")
	assert.Equal(t, TicketStatusPending, tk.Status)
}

func TestAppendMessage_AdminExplicitStatus(t *testing.T) {
	tk := &Ticket{Status: TicketStatusPending}
	tk.AppendMessage(TicketMessage{Author: TicketAuthorAdmin, Text: "fixed"}, TicketStatusResolved)
	assert.Equal(t, TicketStatusResolved, tk.Status)
}

func TestTicketVocabularies(t *testing.T) {
	assert.True(t, ValidTicketStatus("open"))
	assert.False(t, ValidTicketStatus("archived"))
	assert.True(t, ValidTicketCategory("payment"))
	assert.False(t, ValidTicketCategory("misc"))
	assert.True(t, ValidTicketPriority("high"))
	assert.False(t, ValidTicketPriority("urgent"))
}
