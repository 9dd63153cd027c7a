package service

import (
	"context"

	"go-inventory-reorder/internal/metrics"
	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/internal/repository"
	"go-inventory-reorder/pkg/logger"

	"github.com/google/uuid"
)

// ReorderOutcome is what applying one transaction did to its product.
type ReorderOutcome struct {
	Product *model.Product
	// OrderRequest is set only when this transaction generated a new request.
	OrderRequest *model.OrderRequest
}

// ReorderEngine turns a stored inventory transaction into an inventory level
// change and, when stock drops below the reorder point, an order request.
type ReorderEngine interface {
	Apply(ctx context.Context, repos repository.Repositories, product *model.Product, txn *model.InventoryTransaction, actor Actor) (*ReorderOutcome, error)
}

type reorderEngine struct {
	log *logger.Logger
}

func NewReorderEngine(log *logger.Logger) ReorderEngine {
	return &reorderEngine{log: log}
}

// Apply must run inside the transaction that stored txn, with product already
// loaded through FindByIDForUpdate. The row lock serialises concurrent
// transactions on the same product and makes the open-request check below
// race free.
func (e *reorderEngine) Apply(ctx context.Context, repos repository.Repositories, product *model.Product, txn *model.InventoryTransaction, actor Actor) (*ReorderOutcome, error) {
	level := product.InventoryLevel + txn.Delta()
	if err := repos.Products.UpdateInventoryLevel(ctx, product.ID, level, actor.ID); err != nil {
		return nil, err
	}
	product.InventoryLevel = level

	outcome := &ReorderOutcome{Product: product}
	if !product.NeedsReorder() {
		return outcome, nil
	}

	req, err := e.requestReorder(ctx, repos, product, actor)
	if err != nil {
		return nil, err
	}
	outcome.OrderRequest = req
	return outcome, nil
}

// requestReorder creates the product's order request unless one is already open.
func (e *reorderEngine) requestReorder(ctx context.Context, repos repository.Repositories, product *model.Product, actor Actor) (*model.OrderRequest, error) {
	open, err := repos.OrderRequests.HasOpenRequest(ctx, product.ID, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if open {
		metrics.ReorderSkipped.WithLabelValues(metrics.SkipOpenRequest).Inc()
		e.log.Debug().Str("sku", product.SKU).Msg("order request already open, not creating another")
		return nil, nil
	}

	req, err := model.NewOrderRequest(model.OrderRequestFields{
		ProductID:       product.ID,
		VendorID:        product.VendorID,
		ReorderQuantity: product.ReorderQuantity,
		Status:          model.OrderStatusNew,
	})
	if err != nil {
		if _, ok := model.AsValidation(err); ok {
			// reorder_quantity 0 means the product is not restocked automatically.
			metrics.ReorderSkipped.WithLabelValues(metrics.SkipZeroReorderAmount).Inc()
			e.log.Warn().
				Str("sku", product.SKU).
				Int("inventory_level", product.InventoryLevel).
				Int("reorder_point", product.ReorderPoint).
				Msg("below reorder point but reorder quantity is zero")
			return nil, nil
		}
		return nil, err
	}
	req.Stamp(actor.ID)

	if err := repos.OrderRequests.Create(ctx, req); err != nil {
		return nil, err
	}

	e.log.Info().
		Str("sku", product.SKU).
		Str("order_request_id", req.ID.String()).
		Int("reorder_quantity", req.ReorderQuantity).
		Msg("order request generated")
	return req, nil
}
