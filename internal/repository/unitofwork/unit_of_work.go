package unitofwork

import (
	"context"

	"github.com/iyunix/go-chat/internal/repository/message"
	"github.com/iyunix/go-chat/internal/repository/session"
)

type Factory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}

// UnitOfWork hands out repositories bound to one transaction once Begin has run.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SessionRepository() session.Repository
	MessageRepository() message.MessageRepository
}
