package service

import (
	"context"

	"go-inventory-reorder/internal/model"
	"go-inventory-reorder/internal/repository"

	"github.com/google/uuid"
)

type VendorService interface {
	CreateVendor(ctx context.Context, req *VendorRequest, actor Actor) (*model.Vendor, error)
	UpdateVendor(ctx context.Context, id uuid.UUID, req *VendorRequest, actor Actor) (*model.Vendor, error)
	GetAllVendors(ctx context.Context) ([]model.Vendor, error)
	GetVendorByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error)
}

type VendorRequest struct {
	Name          string `json:"name" validate:"required,max=100"`
	ContactPerson string `json:"contact_person" validate:"required,max=100"`
	Email         string `json:"email" validate:"max=100"`
	Phone         string `json:"phone"`
	Address       string `json:"address" validate:"required,max=255"`
}

func (r *VendorRequest) fields() model.VendorFields {
	return model.VendorFields{
		Name:          r.Name,
		ContactPerson: r.ContactPerson,
		Email:         r.Email,
		Phone:         r.Phone,
		Address:       r.Address,
	}
}

type vendorService struct {
	vendorRepo repository.VendorRepository
	events     EventPublisher
}

func NewVendorService(vendorRepo repository.VendorRepository, events EventPublisher) VendorService {
	return &vendorService{vendorRepo: vendorRepo, events: events}
}

func (s *vendorService) CreateVendor(ctx context.Context, req *VendorRequest, actor Actor) (*model.Vendor, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	vendor, err := model.NewVendor(req.fields())
	if err != nil {
		return nil, err
	}
	vendor.Stamp(actor.ID)

	if err := s.vendorRepo.Create(ctx, vendor); err != nil {
		return nil, err
	}

	s.events.Publish(EventVendorCreated, map[string]interface{}{
		"vendor": map[string]interface{}{"id": vendor.ID, "name": vendor.Name},
		"user":   userInfo(actor),
	})
	return vendor, nil
}

func (s *vendorService) UpdateVendor(ctx context.Context, id uuid.UUID, req *VendorRequest, actor Actor) (*model.Vendor, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	vendor, err := s.vendorRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := vendor.Assign(req.fields()); err != nil {
		return nil, err
	}
	vendor.Stamp(actor.ID)

	if err := s.vendorRepo.Update(ctx, vendor); err != nil {
		return nil, err
	}

	s.events.Publish(EventVendorUpdated, map[string]interface{}{
		"vendor": map[string]interface{}{"id": vendor.ID, "name": vendor.Name},
		"user":   userInfo(actor),
	})
	return vendor, nil
}

func (s *vendorService) GetAllVendors(ctx context.Context) ([]model.Vendor, error) {
	return s.vendorRepo.FindAll(ctx)
}

func (s *vendorService) GetVendorByID(ctx context.Context, id uuid.UUID) (*model.Vendor, error) {
	return s.vendorRepo.FindByID(ctx, id)
}
