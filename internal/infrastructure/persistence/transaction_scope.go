package persistence

import (
	"context"

	appcontent "github.com/atelier/storefront/internal/application/content"
	apptrade "github.com/atelier/storefront/internal/application/trade"
	"github.com/atelier/storefront/internal/domain/catalog"
	"github.com/atelier/storefront/internal/domain/content"
	"github.com/atelier/storefront/internal/domain/trade"
	"gorm.io/gorm"
)

// GormTransactionScope implements the checkout TransactionScope using GORM transactions.
// It provides atomic execution of stock reservation and order persistence.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apptrade.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
}

// gormTransactionalRepositories provides access to the checkout repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// ProductRepo returns the product repository scoped to the current transaction.
func (r *gormTransactionalRepositories) ProductRepo() catalog.ProductRepository {
	return NewGormProductRepository(r.tx)
}

// OrderRepo returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) OrderRepo() trade.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// GormPortfolioTransactionScope runs portfolio batch updates atomically.
type GormPortfolioTransactionScope struct {
	db *gorm.DB
}

// NewGormPortfolioTransactionScope creates a new GormPortfolioTransactionScope.
func NewGormPortfolioTransactionScope(db *gorm.DB) *GormPortfolioTransactionScope {
	return &GormPortfolioTransactionScope{db: db}
}

// Execute runs fn with a portfolio repository bound to a single transaction.
func (s *GormPortfolioTransactionScope) Execute(ctx context.Context, fn func(repo content.PortfolioRepository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormPortfolioRepository(tx))
	})
}

var (
	_ apptrade.TransactionScope            = (*GormTransactionScope)(nil)
	_ apptrade.TransactionalRepositories   = (*gormTransactionalRepositories)(nil)
	_ appcontent.PortfolioTransactionScope = (*GormPortfolioTransactionScope)(nil)
)
