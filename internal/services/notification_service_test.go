package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/sharedspace-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationLifecycle(t *testing.T) {
	db := setupDB(t)
	svc := NewNotificationService(db)

	user := seedUser(t, db, "painter")
	other := seedUser(t, db, "other")

	require.NoError(t, svc.Send(user.ID, models.NotificationKindReportUpdate, "Content Flagged", "body"))
	require.NoError(t, svc.Send(user.ID, models.NotificationKindSystemAlert, "Report Resolved", "body"))
	require.NoError(t, svc.Send(other.ID, models.NotificationKindSystemAlert, "not yours", "body"))

	list, err := svc.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Ownership is enforced on every mutation.
	assert.ErrorIs(t, svc.MarkRead(other.ID, list[0].ID), ErrNotificationNotFound)
	require.NoError(t, svc.MarkRead(user.ID, list[0].ID))

	require.NoError(t, svc.MarkAllRead(user.ID))
	list, err = svc.ListForUser(user.ID)
	require.NoError(t, err)
	for _, n := range list {
		assert.True(t, n.IsRead)
	}

	assert.ErrorIs(t, svc.Delete(other.ID, list[0].ID), ErrNotificationNotFound)
	require.NoError(t, svc.Delete(user.ID, list[0].ID))
	assert.ErrorIs(t, svc.Delete(user.ID, uuid.New()), ErrNotificationNotFound)
}
