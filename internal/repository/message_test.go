package repository

import (
	"context"
	"testing"

	"glimpse/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepository_BetweenWithCursor(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	a := &models.User{Username: "a", Email: "a@example.com", Password: "x"}
	b := &models.User{Username: "b", Email: "b@example.com", Password: "x"}
	c := &models.User{Username: "c", Email: "c@example.com", Password: "x"}
	for _, u := range []*models.User{a, b, c} {
		require.NoError(t, db.Create(u).Error)
	}

	m1 := &models.Message{SenderID: a.ID, ReceiverID: b.ID, Content: "hi"}
	m2 := &models.Message{SenderID: b.ID, ReceiverID: a.ID, Content: "hey"}
	m3 := &models.Message{SenderID: a.ID, ReceiverID: b.ID, Content: "how are you"}
	other := &models.Message{SenderID: a.ID, ReceiverID: c.ID, Content: "unrelated"}
	for _, m := range []*models.Message{m1, m2, m3, other} {
		require.NoError(t, repo.Create(ctx, m))
	}

	// Full conversation, both directions, ascending by ID.
	messages, err := repo.Between(ctx, a.ID, b.ID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, m1.ID, messages[0].ID)
	assert.Equal(t, m2.ID, messages[1].ID)
	assert.Equal(t, m3.ID, messages[2].ID)

	// Cursor excludes everything at or before it.
	messages, err = repo.Between(ctx, a.ID, b.ID, m2.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, m3.ID, messages[0].ID)

	// Cursor past the end yields an empty slice.
	messages, err = repo.Between(ctx, a.ID, b.ID, m3.ID)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
