package repository

import (
	"context"

	"go-inventory-reorder/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VendorRepository interface {
	Create(ctx context.Context, vendor *model.Vendor) error
	FindAll(ctx context.Context) ([]model.Vendor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
	Update(ctx context.Context, vendor *model.Vendor) error
}

type vendorRepo struct {
	db *gorm.DB
}

func NewVendorRepo(db *gorm.DB) VendorRepository {
	return &vendorRepo{db}
}

func (r *vendorRepo) Create(ctx context.Context, vendor *model.Vendor) error {
	return translate(r.db.WithContext(ctx).Create(vendor).Error, "vendor", nil)
}

func (r *vendorRepo) FindAll(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&vendors).Error
	return vendors, err
}

func (r *vendorRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	var vendor model.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, translate(err, "vendor", id)
	}
	return &vendor, nil
}

func (r *vendorRepo) Update(ctx context.Context, vendor *model.Vendor) error {
	return translate(r.db.WithContext(ctx).Save(vendor).Error, "vendor", vendor.ID)
}
