package unitofwork_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-chat/internal/database"
	"github.com/iyunix/go-chat/internal/domain"
	"github.com/iyunix/go-chat/internal/logger"
	"github.com/iyunix/go-chat/internal/repository/session"
	"github.com/iyunix/go-chat/internal/repository/unitofwork"
)

func TestRollbackDiscardsWrites(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	ctx := context.Background()
	factory := unitofwork.NewFactory(db, &logger.NoOpLogger{})

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	_, err = uow.SessionRepository().Create(ctx, &domain.ChatSession{UserID: "alice", Title: "temp"})
	require.NoError(t, err)
	require.NoError(t, uow.Rollback())

	count, err := rowCount(session.NewSessionRepository(db, nil).FindByUserID(ctx, "alice"))
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}

func TestCommitPersistsWrites(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	ctx := context.Background()
	factory := unitofwork.NewFactory(db, &logger.NoOpLogger{})

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	s, err := uow.SessionRepository().Create(ctx, &domain.ChatSession{UserID: "alice", Title: "kept"})
	require.NoError(t, err)
	_, err = uow.MessageRepository().Create(ctx, &domain.ChatMessage{
		SessionID: s.ID, UserID: "alice", Role: domain.RoleUser, Type: domain.TypeText, Content: "hi",
	})
	require.NoError(t, err)
	require.NoError(t, uow.Commit())

	count, err := rowCount(session.NewSessionRepository(db, nil).FindByUserID(ctx, "alice"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestTransactionStateErrors(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	ctx := context.Background()
	uow := unitofwork.NewFactory(db, nil).NewUnitOfWork(ctx)

	assert.Error(t, uow.Commit())
	assert.Error(t, uow.Rollback())
	require.NoError(t, uow.Begin(ctx))
	assert.Error(t, uow.Begin(ctx))
	require.NoError(t, uow.Rollback())
}

func rowCount[T any](rows []T, err error) (int, error) {
	return len(rows), err
}
