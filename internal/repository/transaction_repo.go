package repository

import (
	"context"
	"errors"
	"time"

	"go-inventory-reorder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TransactionRepository interface {
	Create(ctx context.Context, txn *model.InventoryTransaction) error
	FindAll(ctx context.Context) ([]model.InventoryTransaction, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryTransaction, error)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.InventoryTransaction, error)
	GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

// StockMovementData is one day of the stock movement chart. OrderRequests
// counts the reorder requests raised that day.
type StockMovementData struct {
	Date          string `json:"date"`
	Received      int    `json:"received"`
	Issued        int    `json:"issued"`
	OrderRequests int    `json:"order_requests"`
}

// DashboardStats is the overview shown on the dashboard.
type DashboardStats struct {
	TotalProducts     int64  `json:"total_products"`
	LowStockCount     int64  `json:"low_stock_count"`
	TotalValuation    string `json:"total_valuation"`
	OpenOrderRequests int64  `json:"open_order_requests"`
}

type transactionRepo struct {
	db *gorm.DB
}

func NewTransactionRepo(db *gorm.DB) TransactionRepository {
	return &transactionRepo{db}
}

func (r *transactionRepo) Create(ctx context.Context, txn *model.InventoryTransaction) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(txn).Error
	// The only foreign key on the table is product_id.
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return model.NewNotFound("product", txn.ProductID)
	}
	return translate(err, "transaction", nil)
}

func (r *transactionRepo) FindAll(ctx context.Context) ([]model.InventoryTransaction, error) {
	var transactions []model.InventoryTransaction
	err := r.db.WithContext(ctx).Preload("Product").Order("created_at DESC").Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryTransaction, error) {
	var txn model.InventoryTransaction
	if err := r.db.WithContext(ctx).Preload("Product").First(&txn, "id = ?", id).Error; err != nil {
		return nil, translate(err, "transaction", id)
	}
	return &txn, nil
}

// FindByProduct returns the movements of one product in the order they were applied.
func (r *transactionRepo) FindByProduct(ctx context.Context, productID uuid.UUID) ([]model.InventoryTransaction, error) {
	var transactions []model.InventoryTransaction
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepo) GetStockMovement(ctx context.Context, startDate, endDate time.Time) ([]StockMovementData, error) {
	var results []StockMovementData

	rows, err := r.db.WithContext(ctx).Model(&model.InventoryTransaction{}).
		Select(`
			DATE(created_at)::text as date,
			COALESCE(SUM(CASE WHEN transaction_type = ? THEN quantity ELSE 0 END), 0) as received,
			COALESCE(SUM(CASE WHEN transaction_type = ? THEN quantity ELSE 0 END), 0) as issued
		`, model.TxReceive, model.TxIssue).
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data StockMovementData
		if err := rows.Scan(&data.Date, &data.Received, &data.Issued); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *transactionRepo) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.Product{}).
		Where("inventory_level < reorder_point").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	// Rendered by postgres so the numeric keeps its precision.
	if err := db.Model(&model.Product{}).
		Select("COALESCE(SUM(inventory_level * price), 0)::text").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&model.OrderRequest{}).
		Where("status = ?", model.OrderStatusNew).
		Count(&stats.OpenOrderRequests).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
