package handler

import (
	"go-inventory-reorder/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type VendorHandler struct {
	service service.VendorService
}

func NewVendorHandler(s service.VendorService) *VendorHandler {
	return &VendorHandler{service: s}
}

// POST /api/v1/vendors
func (h *VendorHandler) CreateVendor(c *fiber.Ctx) error {
	var req service.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	vendor, err := h.service.CreateVendor(c.UserContext(), &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Vendor created", "data": vendor})
}

// PUT /api/v1/vendors/:id
func (h *VendorHandler) UpdateVendor(c *fiber.Ctx) error {
	vendorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "vendor")
	}

	var req service.VendorRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	vendor, err := h.service.UpdateVendor(c.UserContext(), vendorID, &req, getActor(c))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Vendor updated", "data": vendor})
}

func (h *VendorHandler) GetVendors(c *fiber.Ctx) error {
	vendors, err := h.service.GetAllVendors(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vendors)
}

func (h *VendorHandler) GetVendor(c *fiber.Ctx) error {
	vendorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, "vendor")
	}

	vendor, err := h.service.GetVendorByID(c.UserContext(), vendorID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(vendor)
}
