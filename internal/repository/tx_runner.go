package repository

import (
	"context"

	"go-inventory-reorder/internal/model"

	"gorm.io/gorm"
)

// Repositories bundles the repositories bound to one *gorm.DB, either the
// pool or an open transaction.
type Repositories struct {
	Users         UserRepository
	Vendors       VendorRepository
	Products      ProductRepository
	Transactions  TransactionRepository
	OrderRequests OrderRequestRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	return Repositories{
		Users:         NewUserRepo(db),
		Vendors:       NewVendorRepo(db),
		Products:      NewProductRepo(db),
		Transactions:  NewTransactionRepo(db),
		OrderRequests: NewOrderRequestRepo(db),
	}
}

// TxRunner runs fn inside a database transaction, handing it repositories
// bound to that transaction. fn returning an error rolls everything back.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repositories) error) error
}

type gormTxRunner struct {
	db *gorm.DB
}

func NewTxRunner(db *gorm.DB) TxRunner {
	return &gormTxRunner{db: db}
}

func (r *gormTxRunner) Run(ctx context.Context, fn func(repos Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// AutoMigrate creates or updates every table the service uses.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Vendor{},
		&model.Product{},
		&model.InventoryTransaction{},
		&model.OrderRequest{},
	)
}
