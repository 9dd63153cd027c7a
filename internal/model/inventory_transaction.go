package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TxIssue   TransactionType = "issue"
	TxReceive TransactionType = "receive"
)

// InventoryTransaction is one stock movement. It is never edited once stored.
type InventoryTransaction struct {
	BaseModel
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id"`
	Product         *Product        `json:"product,omitempty"`
	TransactionType TransactionType `gorm:"type:varchar(50);not null" json:"transaction_type"`
	Quantity        int             `gorm:"not null" json:"quantity"`
}

func NewInventoryTransaction(productID uuid.UUID, txType TransactionType, quantity int) (*InventoryTransaction, error) {
	t := &InventoryTransaction{ProductID: productID, TransactionType: txType, Quantity: quantity}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Delta is the signed effect of the transaction on the inventory level.
func (t *InventoryTransaction) Delta() int {
	if t.TransactionType == TxIssue {
		return -t.Quantity
	}
	return t.Quantity
}

// Timestamp is the creation time of the movement.
func (t *InventoryTransaction) Timestamp() time.Time {
	return t.CreatedAt
}

func (t *InventoryTransaction) Validate() error {
	return firstError(
		validateReference("product_id", "Product", t.ProductID),
		ValidateTransactionType(t.TransactionType),
		ValidateTransactionQuantity(t.Quantity),
	)
}

func (t *InventoryTransaction) BeforeSave(tx *gorm.DB) error {
	return t.Validate()
}
