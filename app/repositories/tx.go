package repositories

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction. Repository
// methods that must join a larger transaction take the *gorm.DB handle as a
// parameter; everything else uses the repository's own connection.
type TxManager interface {
	Do(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
