package repository

import (
	"retail-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	FindAll(ownerID string) ([]model.Sale, error)
	FindByID(ownerID string, id uuid.UUID) (*model.Sale, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create accepts the enclosing *gorm.DB (tx) so the sale insert participates
// in the checkout transaction.
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

func (r *saleRepo) FindAll(ownerID string) ([]model.Sale, error) {
	var sales []model.Sale
	err := r.db.Preload("Items").Where("owner_id = ?", ownerID).Order("date DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepo) FindByID(ownerID string, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := r.db.Preload("Items").First(&sale, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}
