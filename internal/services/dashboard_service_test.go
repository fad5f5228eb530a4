package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_backend/internal/models"
	"portfolio_backend/internal/services/dto"
)

func TestDashboardStats(t *testing.T) {
	e := newTestEnv(t)
	appSvc := newAppService(e)
	msgSvc := NewMessageService(e.msgRepo, newStubSender(), e.cache)
	svc := NewDashboardService(e.appRepo, e.techRepo, e.msgRepo, e.cache)

	createApps(t, e, appSvc, "a", "b")
	require.NoError(t, e.db.Create(&models.Technology{UserID: e.owner.ID, Name: "Go", DisplayOrder: 1}).Error)

	msg, err := msgSvc.Create(e.ctx(), e.db, &dto.CreateMessageRequest{
		SenderName: "Bob", SenderEmail: "bob@example.com", Body: "hi",
	})
	require.NoError(t, err)
	_, err = msgSvc.Create(e.ctx(), e.db, &dto.CreateMessageRequest{
		SenderName: "Eve", SenderEmail: "eve@example.com", Body: "hello",
	})
	require.NoError(t, err)
	require.NoError(t, msgSvc.SetRead(e.ctx(), e.db, msg.ID, true))

	stats, err := svc.Stats(e.ctx(), e.db, e.owner.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Applications)
	assert.Equal(t, int64(1), stats.Technologies)
	assert.Equal(t, int64(2), stats.Messages)
	assert.Equal(t, int64(1), stats.UnreadMessages)
}
