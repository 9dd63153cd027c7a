package service

import (
	"context"

	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/internal/repository"

	"github.com/google/uuid"
)

type OrderRequestService interface {
	ListOrderRequests(ctx context.Context, status string) ([]model.OrderRequest, error)
	GetOrderRequest(ctx context.Context, id uuid.UUID) (*model.OrderRequest, error)
	CreateOrderRequest(ctx context.Context, req *OrderRequestInput, actor Actor) (*model.OrderRequest, error)
	UpdateOrderRequest(ctx context.Context, id uuid.UUID, req *OrderRequestInput, actor Actor) (*model.OrderRequest, error)
}

// OrderRequestInput is the body of manual create and edit. An empty Status
// means New on create and "unchanged" on edit.
type OrderRequestInput struct {
	ProductID       uuid.UUID `json:"product_id" validate:"uuid_required"`
	VendorID        uuid.UUID `json:"vendor_id" validate:"uuid_required"`
	ReorderQuantity int       `json:"reorder_quantity"`
	Status          string    `json:"status"`
}

var errOpenRequestExists = &model.ConflictError{Message: "an open order request already exists for this product"}

type orderRequestService struct {
	repos  repository.Repositories
	tx     repository.TxRunner
	events EventPublisher
}

func NewOrderRequestService(repos repository.Repositories, tx repository.TxRunner, events EventPublisher) OrderRequestService {
	return &orderRequestService{repos: repos, tx: tx, events: events}
}

func (s *orderRequestService) ListOrderRequests(ctx context.Context, status string) ([]model.OrderRequest, error) {
	if status != "" {
		if err := model.ValidateOrderStatus(model.OrderStatus(status)); err != nil {
			return nil, err
		}
	}
	return s.repos.OrderRequests.FindAll(ctx, model.OrderStatus(status))
}

func (s *orderRequestService) GetOrderRequest(ctx context.Context, id uuid.UUID) (*model.OrderRequest, error) {
	return s.repos.OrderRequests.FindByID(ctx, id)
}

// CreateOrderRequest files a manual request. It is always New, so it is
// refused while the product already has an open one.
func (s *orderRequestService) CreateOrderRequest(ctx context.Context, req *OrderRequestInput, actor Actor) (*model.OrderRequest, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	order, err := model.NewOrderRequest(model.OrderRequestFields{
		ProductID:       req.ProductID,
		VendorID:        req.VendorID,
		ReorderQuantity: req.ReorderQuantity,
		Status:          model.OrderStatusNew,
	})
	if err != nil {
		return nil, err
	}
	order.Stamp(actor.ID)

	err = s.tx.Run(ctx, func(repos repository.Repositories) error {
		if err := lockReferences(ctx, repos, order); err != nil {
			return err
		}
		open, err := repos.OrderRequests.HasOpenRequest(ctx, order.ProductID, uuid.Nil)
		if err != nil {
			return err
		}
		if open {
			return errOpenRequestExists
		}
		return repos.OrderRequests.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(EventOrderRequestCreated, map[string]interface{}{
		"order_request": orderRequestInfo(order),
		"automatic":     false,
		"user":          userInfo(actor),
	})
	return order, nil
}

func (s *orderRequestService) UpdateOrderRequest(ctx context.Context, id uuid.UUID, req *OrderRequestInput, actor Actor) (*model.OrderRequest, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	var order *model.OrderRequest
	err := s.tx.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.OrderRequests.FindByID(ctx, id)
		if err != nil {
			return err
		}

		status := existing.Status
		if req.Status != "" {
			status = model.OrderStatus(req.Status)
		}
		if err := existing.Assign(model.OrderRequestFields{
			ProductID:       req.ProductID,
			VendorID:        req.VendorID,
			ReorderQuantity: req.ReorderQuantity,
			Status:          status,
		}); err != nil {
			return err
		}
		existing.Stamp(actor.ID)

		if err := lockReferences(ctx, repos, existing); err != nil {
			return err
		}
		if existing.IsOpen() {
			open, err := repos.OrderRequests.HasOpenRequest(ctx, existing.ProductID, existing.ID)
			if err != nil {
				return err
			}
			if open {
				return errOpenRequestExists
			}
		}
		if err := repos.OrderRequests.Update(ctx, existing); err != nil {
			return err
		}
		order = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(EventOrderRequestUpdated, map[string]interface{}{
		"order_request": orderRequestInfo(order),
		"user":          userInfo(actor),
	})
	return order, nil
}

// lockReferences checks the product and vendor exist. The product row stays
// locked so the open-request check cannot race the reorder engine.
func lockReferences(ctx context.Context, repos repository.Repositories, order *model.OrderRequest) error {
	if _, err := repos.Products.FindByIDForUpdate(ctx, order.ProductID); err != nil {
		return err
	}
	if _, err := repos.Vendors.FindByID(ctx, order.VendorID); err != nil {
		return err
	}
	return nil
}
