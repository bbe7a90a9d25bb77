package repository

import (
	"retail-pos-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(branch *model.Branch) error
	FindAll(ownerID string) ([]model.Branch, error)
	FindByID(ownerID string, id uuid.UUID) (*model.Branch, error)
	Update(branch *model.Branch) error
	Delete(ownerID string, id uuid.UUID) error
}

type branchRepo struct {
	db *gorm.DB
}

func NewBranchRepo(db *gorm.DB) BranchRepository {
	return &branchRepo{db}
}

func (r *branchRepo) Create(branch *model.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepo) FindAll(ownerID string) ([]model.Branch, error) {
	var branches []model.Branch
	err := r.db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&branches).Error
	return branches, err
}

func (r *branchRepo) FindByID(ownerID string, id uuid.UUID) (*model.Branch, error) {
	var branch model.Branch
	err := r.db.First(&branch, "id = ? AND owner_id = ?", id, ownerID).Error
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepo) Update(branch *model.Branch) error {
	return r.db.Save(branch).Error
}

func (r *branchRepo) Delete(ownerID string, id uuid.UUID) error {
	result := r.db.Where("owner_id = ?", ownerID).Delete(&model.Branch{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
