package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	Description     string          `gorm:"type:varchar(255);not null" json:"description"`
	SKU             string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	WarehouseBins   string          `gorm:"type:varchar(255);not null" json:"warehouse_bins"`
	ReorderPoint    int             `gorm:"not null" json:"reorder_point"`
	ReorderQuantity int             `gorm:"not null" json:"reorder_quantity"`
	Images          string          `gorm:"type:varchar(255)" json:"images"`
	Specification   string          `gorm:"type:varchar(255)" json:"specification"`

	// Only inventory transactions move this; the edit path never writes it.
	InventoryLevel int `gorm:"not null;default:0" json:"inventory_level"`

	VendorID uuid.UUID `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor   *Vendor   `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

// ProductFields holds the user-editable product attributes.
type ProductFields struct {
	Description     string
	SKU             string
	Price           decimal.Decimal
	WarehouseBins   string
	ReorderPoint    int
	ReorderQuantity int
	Images          string
	Specification   string
	VendorID        uuid.UUID
}

func NewProduct(f ProductFields) (*Product, error) {
	p := &Product{}
	if err := p.Assign(f); err != nil {
		return nil, err
	}
	return p, nil
}

// Assign validates f as a whole and only then overwrites the product.
// InventoryLevel is left untouched.
func (p *Product) Assign(f ProductFields) error {
	next := *p
	if err := firstError(
		next.SetSKU(f.SKU),
		next.SetPrice(f.Price),
		next.SetReorderPoint(f.ReorderPoint),
		next.SetReorderQuantity(f.ReorderQuantity),
		next.SetVendor(f.VendorID),
	); err != nil {
		return err
	}
	next.Description = f.Description
	next.WarehouseBins = f.WarehouseBins
	next.Images = f.Images
	next.Specification = f.Specification
	*p = next
	return nil
}

func (p *Product) SetSKU(sku string) error {
	if err := ValidateSKU(sku); err != nil {
		return err
	}
	p.SKU = sku
	return nil
}

func (p *Product) SetPrice(price decimal.Decimal) error {
	if err := ValidatePrice(price); err != nil {
		return err
	}
	p.Price = price
	return nil
}

func (p *Product) SetReorderPoint(point int) error {
	if err := ValidateReorderPoint(point); err != nil {
		return err
	}
	p.ReorderPoint = point
	return nil
}

func (p *Product) SetReorderQuantity(qty int) error {
	if err := ValidateReorderQuantity(qty); err != nil {
		return err
	}
	p.ReorderQuantity = qty
	return nil
}

func (p *Product) SetVendor(vendorID uuid.UUID) error {
	if err := validateReference("vendor_id", "Vendor", vendorID); err != nil {
		return err
	}
	if p.Vendor != nil && p.Vendor.ID != vendorID {
		p.Vendor = nil
	}
	p.VendorID = vendorID
	return nil
}

// NeedsReorder reports whether stock sits strictly below the reorder point.
func (p *Product) NeedsReorder() bool {
	return p.InventoryLevel < p.ReorderPoint
}

func (p *Product) Validate() error {
	return firstError(
		ValidateSKU(p.SKU),
		ValidatePrice(p.Price),
		ValidateReorderPoint(p.ReorderPoint),
		ValidateReorderQuantity(p.ReorderQuantity),
		validateReference("vendor_id", "Vendor", p.VendorID),
	)
}

func (p *Product) BeforeSave(tx *gorm.DB) error {
	return p.Validate()
}
