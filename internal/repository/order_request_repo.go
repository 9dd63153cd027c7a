package repository

import (
	"context"
	"time"

	"go-inventory-reorder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRequestRepository interface {
	Create(ctx context.Context, req *model.OrderRequest) error
	FindAll(ctx context.Context, status model.OrderStatus) ([]model.OrderRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.OrderRequest, error)
	Update(ctx context.Context, req *model.OrderRequest) error
	// HasOpenRequest reports whether productID has a request in status New,
	// ignoring the request with id exclude (uuid.Nil ignores nothing).
	HasOpenRequest(ctx context.Context, productID, exclude uuid.UUID) (bool, error)
	CountOpen(ctx context.Context) (int64, error)
	// CountCreatedByDay counts requests created per day in [startDate, endDate].
	CountCreatedByDay(ctx context.Context, startDate, endDate time.Time) ([]DailyCount, error)
}

// DailyCount is a per day tally; Date is formatted as YYYY-MM-DD.
type DailyCount struct {
	Date  string
	Count int
}

type orderRequestRepo struct {
	db *gorm.DB
}

func NewOrderRequestRepo(db *gorm.DB) OrderRequestRepository {
	return &orderRequestRepo{db}
}

func (r *orderRequestRepo) Create(ctx context.Context, req *model.OrderRequest) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(req).Error, "order request", nil)
}

// FindAll lists requests newest first. An empty status lists every request.
func (r *orderRequestRepo) FindAll(ctx context.Context, status model.OrderStatus) ([]model.OrderRequest, error) {
	var requests []model.OrderRequest
	q := r.db.WithContext(ctx).Preload("Product").Preload("Vendor").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&requests).Error
	return requests, err
}

func (r *orderRequestRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.OrderRequest, error) {
	var req model.OrderRequest
	if err := r.db.WithContext(ctx).Preload("Product").Preload("Vendor").First(&req, "id = ?", id).Error; err != nil {
		return nil, translate(err, "order request", id)
	}
	return &req, nil
}

func (r *orderRequestRepo) Update(ctx context.Context, req *model.OrderRequest) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(req).Error
	return translate(err, "order request", req.ID)
}

func (r *orderRequestRepo) HasOpenRequest(ctx context.Context, productID, exclude uuid.UUID) (bool, error) {
	var n int64
	q := r.db.WithContext(ctx).Model(&model.OrderRequest{}).
		Where("product_id = ? AND status = ?", productID, model.OrderStatusNew)
	if exclude != uuid.Nil {
		q = q.Where("id <> ?", exclude)
	}
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *orderRequestRepo) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.OrderRequest{}).
		Where("status = ?", model.OrderStatusNew).
		Count(&n).Error
	return n, err
}

func (r *orderRequestRepo) CountCreatedByDay(ctx context.Context, startDate, endDate time.Time) ([]DailyCount, error) {
	var results []DailyCount

	rows, err := r.db.WithContext(ctx).Model(&model.OrderRequest{}).
		Select("DATE(created_at)::text as date, COUNT(*) as count").
		Where("created_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(created_at)").
		Order("date ASC").
		Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d DailyCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, err
		}
		results = append(results, d)
	}

	return results, rows.Err()
}
