package handler

import (
	"go-inventory-reorder/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OrderRequestHandler struct {
	service service.OrderRequestService
}

func NewOrderRequestHandler(s service.OrderRequestService) *OrderRequestHandler {
	return &OrderRequestHandler{service: s}
}

// GetOrderRequests lists order requests, optionally filtered by ?status=.
// GET /api/v1/order-requests
func (h *OrderRequestHandler) GetOrderRequests(c *fiber.Ctx) error {
	orders, err := h.service.ListOrderRequests(c.UserContext(), c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

func (h *OrderRequestHandler) GetOrderRequest(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "order request")
	}

	order, err := h.service.GetOrderRequest(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// POST /api/v1/order-requests
func (h *OrderRequestHandler) CreateOrderRequest(c *fiber.Ctx) error {
	var req service.OrderRequestInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.service.CreateOrderRequest(c.UserContext(), &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Order request created", "data": order})
}

// PUT /api/v1/order-requests/:id
func (h *OrderRequestHandler) UpdateOrderRequest(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "order request")
	}

	var req service.OrderRequestInput
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	order, err := h.service.UpdateOrderRequest(c.UserContext(), orderID, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order request updated", "data": order})
}
