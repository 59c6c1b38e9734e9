package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store 仓储集合。InTx 回调中拿到的仓储共享同一个事务，回调返回错误时整体回滚
type Store interface {
	Posts() PostRepository
	Opportunities() OpportunityRepository
	InTx(ctx context.Context, fn func(tx Store) error) error
}

type store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &store{db: db}
}

func (s *store) Posts() PostRepository {
	return NewPostRepository(s.db)
}

func (s *store) Opportunities() OpportunityRepository {
	return NewOpportunityRepository(s.db)
}

// InTx 仓储内部的事务在这里退化为 savepoint
func (s *store) InTx(ctx context.Context, fn func(tx Store) error) error {
	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(&store{db: tx})
		return fnErr
	})
	if fnErr != nil {
		return fnErr
	}
	return wrapErr("提交事务失败", err)
}
