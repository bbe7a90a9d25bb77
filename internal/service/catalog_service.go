package service

import (
	"errors"
	"fmt"

	"retail-pos-api/internal/model"
	"retail-pos-api/internal/repository"
	"retail-pos-api/internal/ws"
	"retail-pos-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(ownerID string, req *model.Product) error
	UpdateProduct(ownerID string, id uuid.UUID, req *model.Product) (*model.Product, error)
	DeleteProduct(ownerID string, id uuid.UUID) error
	GetAllProducts(ownerID string) ([]model.Product, error)
	GetProductByID(ownerID string, id uuid.UUID) (*model.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
	alerter     *StockAlerter
	hub         *ws.Hub
}

func NewCatalogService(pRepo repository.ProductRepository, alerter *StockAlerter, hub *ws.Hub) CatalogService {
	return &catalogService{
		productRepo: pRepo,
		alerter:     alerter,
		hub:         hub,
	}
}

func (s *catalogService) CreateProduct(ownerID string, req *model.Product) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	req.OwnerID = ownerID
	if err := s.productRepo.Create(req); err != nil {
		return err
	}

	go s.hub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_created",
		"product": map[string]interface{}{
			"id":       req.ID,
			"name":     req.Name,
			"category": req.Category,
			"stock":    req.Stock,
			"price":    req.Price,
		},
	})

	if req.IsLowStock() {
		go s.alerter.NotifyLowStock(ownerID, *req)
	}
	return nil
}

// UpdateProduct is the restock/edit path; the only stock mutation besides the
// checkout decrement.
func (s *catalogService) UpdateProduct(ownerID string, id uuid.UUID, req *model.Product) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	existing, err := s.productRepo.FindByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	oldStock := existing.Stock
	existing.Name = req.Name
	existing.Category = req.Category
	existing.Price = req.Price
	existing.Stock = req.Stock
	existing.Image = req.Image
	existing.Description = req.Description

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}

	go s.hub.BroadcastJSON(map[string]interface{}{
		"type":   "stock_update",
		"action": "product_updated",
		"product": map[string]interface{}{
			"id":        existing.ID,
			"name":      existing.Name,
			"old_stock": oldStock,
			"new_stock": existing.Stock,
			"price":     existing.Price,
		},
	})

	if existing.IsLowStock() {
		go s.alerter.NotifyLowStock(ownerID, *existing)
	}
	return existing, nil
}

func (s *catalogService) DeleteProduct(ownerID string, id uuid.UUID) error {
	if err := s.productRepo.Delete(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *catalogService) GetAllProducts(ownerID string) ([]model.Product, error) {
	return s.productRepo.FindAll(ownerID)
}

func (s *catalogService) GetProductByID(ownerID string, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}
