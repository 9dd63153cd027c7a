package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusNew     OrderStatus = "New"
	OrderStatusOrdered OrderStatus = "Ordered"
	OrderStatusClosed  OrderStatus = "Closed/Received"
)

// OrderRequest is a replenishment request sent to a vendor.
// A request in status New is "open"; a product has at most one open request,
// backed by the partial unique index on product_id.
type OrderRequest struct {
	BaseModel
	ProductID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_order_requests_open_product,where:status = 'New' AND deleted_at IS NULL" json:"product_id"`
	Product         *Product    `json:"product,omitempty"`
	VendorID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Vendor          *Vendor     `json:"vendor,omitempty"`
	ReorderQuantity int         `gorm:"not null" json:"reorder_quantity"`
	Status          OrderStatus `gorm:"type:varchar(50);not null;default:New;index" json:"status"`
}

type OrderRequestFields struct {
	ProductID       uuid.UUID
	VendorID        uuid.UUID
	ReorderQuantity int
	Status          OrderStatus
}

func NewOrderRequest(f OrderRequestFields) (*OrderRequest, error) {
	o := &OrderRequest{}
	if err := o.Assign(f); err != nil {
		return nil, err
	}
	return o, nil
}

// Assign validates f as a whole and only then overwrites the request.
func (o *OrderRequest) Assign(f OrderRequestFields) error {
	next := *o
	if err := firstError(
		validateReference("product_id", "Product", f.ProductID),
		validateReference("vendor_id", "Vendor", f.VendorID),
		next.SetReorderQuantity(f.ReorderQuantity),
		next.SetStatus(f.Status),
	); err != nil {
		return err
	}
	if next.ProductID != f.ProductID {
		next.Product = nil
	}
	if next.VendorID != f.VendorID {
		next.Vendor = nil
	}
	next.ProductID = f.ProductID
	next.VendorID = f.VendorID
	*o = next
	return nil
}

func (o *OrderRequest) SetReorderQuantity(qty int) error {
	if err := ValidateOrderQuantity(qty); err != nil {
		return err
	}
	o.ReorderQuantity = qty
	return nil
}

func (o *OrderRequest) SetStatus(status OrderStatus) error {
	if err := ValidateOrderStatus(status); err != nil {
		return err
	}
	o.Status = status
	return nil
}

func (o *OrderRequest) IsOpen() bool {
	return o.Status == OrderStatusNew
}

func (o *OrderRequest) Validate() error {
	return firstError(
		validateReference("product_id", "Product", o.ProductID),
		validateReference("vendor_id", "Vendor", o.VendorID),
		ValidateOrderQuantity(o.ReorderQuantity),
		ValidateOrderStatus(o.Status),
	)
}

func (o *OrderRequest) BeforeSave(tx *gorm.DB) error {
	return o.Validate()
}
