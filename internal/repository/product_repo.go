package repository

import (
	"retail-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(ownerID string) ([]model.Product, error)
	FindByID(ownerID string, id uuid.UUID) (*model.Product, error)
	FindByIDsForUpdate(tx *gorm.DB, ownerID string, ids []uuid.UUID) ([]model.Product, error)
	Update(product *model.Product) error
	Delete(ownerID string, id uuid.UUID) error
	DecrementStock(tx *gorm.DB, ownerID string, id uuid.UUID, quantity int) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(ownerID string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(ownerID string, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByIDsForUpdate locks the matched rows for the duration of the enclosing
// transaction. Missing ids simply produce fewer rows; the caller decides.
func (r *productRepo) FindByIDsForUpdate(tx *gorm.DB, ownerID string, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ? AND owner_id = ?", ids, ownerID).
		Find(&products).Error
	return products, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(ownerID string, id uuid.UUID) error {
	result := r.db.Where("owner_id = ?", ownerID).Delete(&model.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementStock runs a single conditional update. It re-verifies ownership
// and remaining stock, so stock can never go negative even outside a lock.
// Returns false when no row matched.
func (r *productRepo) DecrementStock(tx *gorm.DB, ownerID string, id uuid.UUID, quantity int) (bool, error) {
	result := tx.Model(&model.Product{}).
		Where("id = ? AND owner_id = ? AND stock >= ?", id, ownerID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
