package repository

import (
	"retail-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(customer *model.Customer) error
	FindAll(ownerID string) ([]model.Customer, error)
	FindByID(ownerID string, id uuid.UUID) (*model.Customer, error)
	FindByEmail(ownerID, email string) (*model.Customer, error)
	Update(customer *model.Customer) error
	Delete(ownerID string, id uuid.UUID) error
}

type customerRepo struct {
	db *gorm.DB
}

func NewCustomerRepo(db *gorm.DB) CustomerRepository {
	return &customerRepo{db}
}

func (r *customerRepo) Create(customer *model.Customer) error {
	return r.db.Create(customer).Error
}

func (r *customerRepo) FindAll(ownerID string) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (r *customerRepo) FindByID(ownerID string, id uuid.UUID) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) FindByEmail(ownerID, email string) (*model.Customer, error) {
	var customer model.Customer
	err := r.db.First(&customer, "email = ? AND owner_id = ?", email, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepo) Update(customer *model.Customer) error {
	return r.db.Save(customer).Error
}

func (r *customerRepo) Delete(ownerID string, id uuid.UUID) error {
	result := r.db.Where("owner_id = ?", ownerID).Delete(&model.Customer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
