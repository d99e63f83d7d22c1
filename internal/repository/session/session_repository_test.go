package session_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-chat/internal/database"
	"github.com/iyunix/go-chat/internal/domain"
	"github.com/iyunix/go-chat/internal/repository/session"
)

func newRepo(t *testing.T) session.Repository {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	return session.NewSessionRepository(db, nil)
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.ChatSession{UserID: "alice", Title: "Trip"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.UserID)
	assert.Equal(t, "Trip", found.Title)
}

func TestCreateRejectsBadInput(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, &domain.ChatSession{Title: "x"})
	assert.Error(t, err)
	_, err = repo.Create(ctx, &domain.ChatSession{UserID: "alice"})
	assert.Error(t, err)
	_, err = repo.Create(ctx, &domain.ChatSession{UserID: "alice", Title: strings.Repeat("a", 101)})
	assert.Error(t, err)
}

func TestFindByUserIDNewestFirst(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	var ids []uuid.UUID
	for _, title := range []string{"one", "two", "three"} {
		s, err := repo.Create(ctx, &domain.ChatSession{UserID: "alice", Title: title})
		require.NoError(t, err)
		ids = append(ids, s.ID)
	}
	_, err := repo.Create(ctx, &domain.ChatSession{UserID: "bob", Title: "other"})
	require.NoError(t, err)

	list, err := repo.FindByUserID(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[1], list[1].ID)
	assert.Equal(t, ids[0], list[2].ID)

	empty, err := repo.FindByUserID(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestFindByIDMissing(t *testing.T) {
	repo := newRepo(t)
	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestUpdateTitleFiltersByOwner(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	s, err := repo.Create(ctx, &domain.ChatSession{UserID: "alice", Title: "old"})
	require.NoError(t, err)

	_, err = repo.UpdateTitle(ctx, s.ID, "bob", "hijacked")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	updated, err := repo.UpdateTitle(ctx, s.ID, "alice", "new")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)

	again, err := repo.UpdateTitle(ctx, s.ID, "alice", "new")
	require.NoError(t, err)
	assert.Equal(t, "new", again.Title)
	assert.Equal(t, updated.CreatedAt.Unix(), again.CreatedAt.Unix())
}

func TestDeleteFiltersByOwner(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()
	s, err := repo.Create(ctx, &domain.ChatSession{UserID: "alice", Title: "keep"})
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Delete(ctx, s.ID, "bob"), session.ErrSessionNotFound)
	count, err := rowCount(repo.FindByUserID(ctx, "alice"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.Delete(ctx, s.ID, "alice"))
	count, err = rowCount(repo.FindByUserID(ctx, "alice"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)

	assert.ErrorIs(t, repo.Delete(ctx, s.ID, "alice"), session.ErrSessionNotFound)
}

func rowCount[T any](rows []T, err error) (int, error) {
	return len(rows), err
}
