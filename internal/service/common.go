package service

import (
	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/pkg/validator"
)

// Actor identifies the authenticated user behind a write, for audit columns and events.
type Actor struct {
	ID       string
	Username string
}

// SystemActor is used for writes not triggered by a user request.
var SystemActor = Actor{ID: "system", Username: "system"}

// EventPublisher pushes realtime events to connected clients. *ws.Hub implements it.
type EventPublisher interface {
	Publish(eventType string, data map[string]interface{})
}

const (
	EventProductCreated      = "product_created"
	EventProductUpdated      = "product_updated"
	EventVendorCreated       = "vendor_created"
	EventVendorUpdated       = "vendor_updated"
	EventTransactionCreated  = "transaction_created"
	EventOrderRequestCreated = "order_request_created"
	EventOrderRequestUpdated = "order_request_updated"
)

// validateRequest checks the raw request shape and reports the first failure
// as a ValidationError.
func validateRequest(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return &model.ValidationError{Field: errs[0].Field, Message: errs[0].String()}
	}
	return nil
}

func userInfo(actor Actor) map[string]interface{} {
	return map[string]interface{}{
		"id":       actor.ID,
		"username": actor.Username,
	}
}
