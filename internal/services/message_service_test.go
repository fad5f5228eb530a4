package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/services/dto"
	"portfolio_backend/pkg/apperrors"
)

func TestMessageCreateNotifies(t *testing.T) {
	e := newTestEnv(t)
	sender := newStubSender()
	svc := NewMessageService(e.msgRepo, sender, e.cache)

	msg, err := svc.Create(e.ctx(), e.db, &dto.CreateMessageRequest{
		SenderName:  "Bob",
		SenderEmail: "bob@example.com",
		Subject:     "Hello",
		Body:        "Nice portfolio",
	})
	require.NoError(t, err)
	assert.False(t, msg.Read)

	select {
	case <-sender.delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was never sent")
	}
	assert.Equal(t, []string{"Hello"}, sender.notified())
}

func TestMessageReadLifecycle(t *testing.T) {
	e := newTestEnv(t)
	svc := NewMessageService(e.msgRepo, newStubSender(), e.cache)

	msg, err := svc.Create(e.ctx(), e.db, &dto.CreateMessageRequest{
		SenderName: "Bob", SenderEmail: "bob@example.com", Body: "hi",
	})
	require.NoError(t, err)

	unread, err := svc.UnreadCount(e.ctx(), e.db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, svc.SetRead(e.ctx(), e.db, msg.ID, true))
	unread, err = svc.UnreadCount(e.ctx(), e.db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	require.NoError(t, svc.SetRead(e.ctx(), e.db, msg.ID, false))
	unread, err = svc.UnreadCount(e.ctx(), e.db)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}

func TestMessageDeleteAndNotFound(t *testing.T) {
	e := newTestEnv(t)
	svc := NewMessageService(e.msgRepo, newStubSender(), e.cache)

	msg, err := svc.Create(e.ctx(), e.db, &dto.CreateMessageRequest{
		SenderName: "Bob", SenderEmail: "bob@example.com", Body: "hi",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(e.ctx(), e.db, msg.ID))

	err = svc.Delete(e.ctx(), e.db, msg.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestMessageListNewestFirst(t *testing.T) {
	e := newTestEnv(t)
	svc := NewMessageService(e.msgRepo, newStubSender(), e.cache)

	for _, body := range []string{"one", "two", "three"} {
		_, err := svc.Create(e.ctx(), e.db, &dto.CreateMessageRequest{
			SenderName: "Bob", SenderEmail: "bob@example.com", Body: body,
		})
		require.NoError(t, err)
	}

	page, err := svc.List(e.ctx(), e.db, dto.ListQuery{SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Len(t, page.Items, 3)
}
