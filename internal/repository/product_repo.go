package repository

import (
	"context"
	"time"

	"go-inventory-reorder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindAll(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	FindBelowReorderPoint(ctx context.Context) ([]model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateInventoryLevel(ctx context.Context, id uuid.UUID, level int, updatedBy string) error
}

// editableProductColumns are the columns the edit path may write. inventory_level is not one of them.
var editableProductColumns = []string{
	"description", "sku", "price", "warehouse_bins", "reorder_point", "reorder_quantity",
	"images", "specification", "vendor_id", "updated_by", "updated_at",
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error, "product", nil)
}

func (r *productRepo) FindAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("Vendor").Order("sku ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).Preload("Vendor").First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err, "product", id)
	}
	return &product, nil
}

// FindByIDForUpdate locks the product row until the surrounding transaction ends.
func (r *productRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, "product", id)
	}
	return &product, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var product model.Product
	if err := r.db.WithContext(ctx).First(&product, "sku = ?", sku).Error; err != nil {
		return nil, translate(err, "product", nil)
	}
	return &product, nil
}

func (r *productRepo) FindBelowReorderPoint(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).
		Preload("Vendor").
		Where("inventory_level < reorder_point").
		Order("reorder_point - inventory_level DESC").
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, product *model.Product) error {
	err := r.db.WithContext(ctx).
		Model(product).
		Select(editableProductColumns).
		Updates(product).Error
	return translate(err, "product", product.ID)
}

// UpdateInventoryLevel writes the level column directly, skipping hooks, so it
// can run inside the reorder transaction without reloading the product.
func (r *productRepo) UpdateInventoryLevel(ctx context.Context, id uuid.UUID, level int, updatedBy string) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"inventory_level": level,
			"updated_by":      updatedBy,
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return model.NewNotFound("product", id)
	}
	return nil
}
