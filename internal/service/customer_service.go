package service

import (
	"errors"
	"fmt"

	"retail-pos-api/internal/model"
	"retail-pos-api/internal/repository"
	"retail-pos-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerService interface {
	CreateCustomer(ownerID string, req *model.Customer) error
	UpdateCustomer(ownerID string, id uuid.UUID, req *model.Customer) (*model.Customer, error)
	DeleteCustomer(ownerID string, id uuid.UUID) error
	GetAllCustomers(ownerID string) ([]model.Customer, error)
	GetCustomerByID(ownerID string, id uuid.UUID) (*model.Customer, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
}

func NewCustomerService(cRepo repository.CustomerRepository) CustomerService {
	return &customerService{customerRepo: cRepo}
}

func (s *customerService) CreateCustomer(ownerID string, req *model.Customer) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	// Email is unique per owner
	if existing, _ := s.customerRepo.FindByEmail(ownerID, req.Email); existing != nil {
		return ErrCustomerEmailTaken
	}

	req.OwnerID = ownerID
	req.LoyaltyPoints = 0
	if req.PurchaseHistory == nil {
		req.PurchaseHistory = model.PurchaseHistory{}
	}
	return s.customerRepo.Create(req)
}

func (s *customerService) UpdateCustomer(ownerID string, id uuid.UUID, req *model.Customer) (*model.Customer, error) {
	existing, err := s.customerRepo.FindByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Email != "" && req.Email != existing.Email {
		if other, _ := s.customerRepo.FindByEmail(ownerID, req.Email); other != nil {
			return nil, ErrCustomerEmailTaken
		}
		existing.Email = req.Email
	}
	if req.Name != "" {
		existing.Name = req.Name
	}
	existing.Phone = req.Phone
	existing.Address = req.Address
	if req.LoyaltyPoints != 0 {
		existing.LoyaltyPoints = req.LoyaltyPoints
	}
	if req.PurchaseHistory != nil {
		existing.PurchaseHistory = req.PurchaseHistory
	}

	if err := s.customerRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *customerService) DeleteCustomer(ownerID string, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *customerService) GetAllCustomers(ownerID string) ([]model.Customer, error) {
	return s.customerRepo.FindAll(ownerID)
}

func (s *customerService) GetCustomerByID(ownerID string, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return customer, nil
}
