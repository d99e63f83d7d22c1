package unitofwork

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/iyunix/go-chat/internal/logger"
	"github.com/iyunix/go-chat/internal/repository/message"
	"github.com/iyunix/go-chat/internal/repository/session"
)

type factoryImpl struct {
	db  *gorm.DB
	log logger.Logger
}

func NewFactory(db *gorm.DB, log logger.Logger) Factory {
	return &factoryImpl{db: db, log: log}
}

func (f *factoryImpl) NewUnitOfWork(ctx context.Context) UnitOfWork {
	return &unitOfWorkImpl{db: f.db, log: f.log}
}

type unitOfWorkImpl struct {
	db  *gorm.DB
	tx  *gorm.DB
	log logger.Logger
}

func (u *unitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *unitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *unitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *unitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

func (u *unitOfWorkImpl) SessionRepository() session.Repository {
	return session.NewSessionRepository(u.getDB(), u.log)
}

func (u *unitOfWorkImpl) MessageRepository() message.MessageRepository {
	return message.NewMessageRepository(u.getDB(), u.log)
}
