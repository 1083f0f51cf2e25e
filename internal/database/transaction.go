package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type txContextKey struct{}

// Transactor runs a function inside a single database transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// GormTransactor is the gorm implementation of Transactor. The transaction
// is carried in the context handed to fn; repositories pick it up with Conn.
type GormTransactor struct {
	db *gorm.DB
}

// NewTransactor creates a new Transactor
func NewTransactor(db *gorm.DB) *GormTransactor {
	return &GormTransactor{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// Nested calls join the outer transaction.
func (t *GormTransactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return fmt.Errorf("transaction function is required")
	}

	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey{}, tx))
	})
}

// Conn returns the transaction in ctx if there is one, otherwise fallback
// bound to ctx.
func Conn(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

func txFromContext(ctx context.Context) (*gorm.DB, bool) {
	if ctx == nil {
		return nil, false
	}
	tx, ok := ctx.Value(txContextKey{}).(*gorm.DB)
	return tx, ok
}
