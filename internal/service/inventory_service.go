package service

import (
	"context"
	"errors"

	"go-inventory-reorder/internal/metrics"
	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/internal/repository"
	"go-inventory-reorder/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InventoryService interface {
	CreateProduct(ctx context.Context, req *ProductRequest, actor Actor) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *ProductRequest, actor Actor) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetLowStockProducts(ctx context.Context) ([]model.Product, error)
	RecordTransaction(ctx context.Context, req *TransactionRequest, actor Actor) (*TransactionResult, error)
	GetAllTransactions(ctx context.Context) ([]model.InventoryTransaction, error)
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.InventoryTransaction, error)
	GetProductTransactions(ctx context.Context, productID uuid.UUID) ([]model.InventoryTransaction, error)
}

// ProductRequest is the body of product create and edit. It carries no
// inventory level; stock only moves through transactions.
type ProductRequest struct {
	Description     string          `json:"description" validate:"required,max=255"`
	SKU             string          `json:"sku"`
	Price           decimal.Decimal `json:"price"`
	WarehouseBins   string          `json:"warehouse_bins" validate:"required,max=255"`
	ReorderPoint    int             `json:"reorder_point"`
	ReorderQuantity int             `json:"reorder_quantity"`
	Images          string          `json:"images" validate:"max=255"`
	Specification   string          `json:"specification" validate:"max=255"`
	VendorID        uuid.UUID       `json:"vendor_id" validate:"uuid_required"`
}

func (r *ProductRequest) fields() model.ProductFields {
	return model.ProductFields{
		Description:     r.Description,
		SKU:             r.SKU,
		Price:           r.Price,
		WarehouseBins:   r.WarehouseBins,
		ReorderPoint:    r.ReorderPoint,
		ReorderQuantity: r.ReorderQuantity,
		Images:          r.Images,
		Specification:   r.Specification,
		VendorID:        r.VendorID,
	}
}

// TransactionRequest is the body of POST /transactions.
type TransactionRequest struct {
	ProductID       uuid.UUID `json:"product_id" validate:"uuid_required"`
	TransactionType string    `json:"transaction_type"`
	Quantity        int       `json:"quantity"`
}

type TransactionResult struct {
	Transaction    *model.InventoryTransaction `json:"transaction"`
	InventoryLevel int                         `json:"inventory_level"`
	OrderRequest   *model.OrderRequest         `json:"order_request,omitempty"`
}

type inventoryService struct {
	repos  repository.Repositories
	tx     repository.TxRunner
	engine ReorderEngine
	events EventPublisher
	log    *logger.Logger
}

func NewInventoryService(repos repository.Repositories, tx repository.TxRunner, engine ReorderEngine, events EventPublisher, log *logger.Logger) InventoryService {
	return &inventoryService{
		repos:  repos,
		tx:     tx,
		engine: engine,
		events: events,
		log:    log,
	}
}

func (s *inventoryService) CreateProduct(ctx context.Context, req *ProductRequest, actor Actor) (*model.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	product, err := model.NewProduct(req.fields())
	if err != nil {
		return nil, err
	}
	product.Stamp(actor.ID)

	if err := s.checkProductRefs(ctx, s.repos, product); err != nil {
		return nil, err
	}
	if err := s.repos.Products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.events.Publish(EventProductCreated, map[string]interface{}{
		"product": productInfo(product),
		"user":    userInfo(actor),
	})
	return product, nil
}

func (s *inventoryService) UpdateProduct(ctx context.Context, id uuid.UUID, req *ProductRequest, actor Actor) (*model.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var updated *model.Product
	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Products.FindByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := existing.Assign(req.fields()); err != nil {
			return err
		}
		existing.Stamp(actor.ID)

		if err := s.checkProductRefs(ctx, repos, existing); err != nil {
			return err
		}
		if err := repos.Products.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(EventProductUpdated, map[string]interface{}{
		"product": productInfo(updated),
		"user":    userInfo(actor),
	})
	return updated, nil
}

// checkProductRefs enforces SKU uniqueness and that the vendor exists.
func (s *inventoryService) checkProductRefs(ctx context.Context, repos repository.Repositories, product *model.Product) error {
	existing, err := repos.Products.FindBySKU(ctx, product.SKU)
	switch {
	case err == nil && existing.ID != product.ID:
		return &model.ConflictError{Message: "SKU already exists"}
	case err != nil && !errors.Is(err, model.ErrNotFound):
		return err
	}

	if _, err := repos.Vendors.FindByID(ctx, product.VendorID); err != nil {
		return err
	}
	return nil
}

func (s *inventoryService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.repos.Products.FindAll(ctx)
}

func (s *inventoryService) GetProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	return s.repos.Products.FindByID(ctx, id)
}

func (s *inventoryService) GetLowStockProducts(ctx context.Context) ([]model.Product, error) {
	return s.repos.Products.FindBelowReorderPoint(ctx)
}

// RecordTransaction stores the movement and applies it in one database
// transaction, so a failure leaves neither the row nor the level change behind.
func (s *inventoryService) RecordTransaction(ctx context.Context, req *TransactionRequest, actor Actor) (*TransactionResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	txn, err := model.NewInventoryTransaction(req.ProductID, model.TransactionType(req.TransactionType), req.Quantity)
	if err != nil {
		return nil, err
	}
	txn.Stamp(actor.ID)

	var outcome *ReorderOutcome
	err = s.tx.Run(ctx, func(repos repository.Repositories) error {
		// Lock the product before inserting, so a missing product is
		// reported as such rather than as a foreign key failure.
		product, err := repos.Products.FindByIDForUpdate(ctx, txn.ProductID)
		if err != nil {
			return err
		}
		if err := repos.Transactions.Create(ctx, txn); err != nil {
			return err
		}
		outcome, err = s.engine.Apply(ctx, repos, product, txn, actor)
		return err
	})
	if err != nil {
		return nil, err
	}

	metrics.InventoryTransactions.WithLabelValues(string(txn.TransactionType)).Inc()
	s.log.Info().
		Str("transaction_id", txn.ID.String()).
		Str("sku", outcome.Product.SKU).
		Str("type", string(txn.TransactionType)).
		Int("quantity", txn.Quantity).
		Int("inventory_level", outcome.Product.InventoryLevel).
		Msg("inventory transaction recorded")

	s.events.Publish(EventTransactionCreated, map[string]interface{}{
		"transaction": map[string]interface{}{
			"id":               txn.ID,
			"transaction_type": txn.TransactionType,
			"quantity":         txn.Quantity,
			"product_id":       txn.ProductID,
		},
		"product": productInfo(outcome.Product),
		"user":    userInfo(actor),
	})

	if outcome.OrderRequest != nil {
		metrics.OrderRequestsGenerated.Inc()
		s.events.Publish(EventOrderRequestCreated, map[string]interface{}{
			"order_request": orderRequestInfo(outcome.OrderRequest),
			"product":       productInfo(outcome.Product),
			"automatic":     true,
		})
	}

	return &TransactionResult{
		Transaction:    txn,
		InventoryLevel: outcome.Product.InventoryLevel,
		OrderRequest:   outcome.OrderRequest,
	}, nil
}

func (s *inventoryService) GetAllTransactions(ctx context.Context) ([]model.InventoryTransaction, error) {
	return s.repos.Transactions.FindAll(ctx)
}

func (s *inventoryService) GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.InventoryTransaction, error) {
	return s.repos.Transactions.FindByID(ctx, id)
}

func (s *inventoryService) GetProductTransactions(ctx context.Context, productID uuid.UUID) ([]model.InventoryTransaction, error) {
	if _, err := s.repos.Products.FindByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.repos.Transactions.FindByProduct(ctx, productID)
}

func productInfo(p *model.Product) map[string]interface{} {
	return map[string]interface{}{
		"id":              p.ID,
		"sku":             p.SKU,
		"description":     p.Description,
		"inventory_level": p.InventoryLevel,
		"reorder_point":   p.ReorderPoint,
	}
}

func orderRequestInfo(o *model.OrderRequest) map[string]interface{} {
	return map[string]interface{}{
		"id":               o.ID,
		"product_id":       o.ProductID,
		"vendor_id":        o.VendorID,
		"reorder_quantity": o.ReorderQuantity,
		"status":           o.Status,
	}
}
