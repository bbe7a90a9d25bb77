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

type BranchService interface {
	CreateBranch(ownerID string, req *model.Branch) error
	UpdateBranch(ownerID string, id uuid.UUID, req *model.Branch) (*model.Branch, error)
	DeleteBranch(ownerID string, id uuid.UUID) error
	GetAllBranches(ownerID string) ([]model.Branch, error)
}

type branchService struct {
	branchRepo repository.BranchRepository
}

func NewBranchService(bRepo repository.BranchRepository) BranchService {
	return &branchService{branchRepo: bRepo}
}

func (s *branchService) CreateBranch(ownerID string, req *model.Branch) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}
	req.OwnerID = ownerID
	return s.branchRepo.Create(req)
}

func (s *branchService) UpdateBranch(ownerID string, id uuid.UUID, req *model.Branch) (*model.Branch, error) {
	existing, err := s.branchRepo.FindByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.Name != "" {
		existing.Name = req.Name
	}
	if req.Location != "" {
		existing.Location = req.Location
	}
	existing.Size = req.Size
	existing.Manager = req.Manager

	if err := s.branchRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *branchService) DeleteBranch(ownerID string, id uuid.UUID) error {
	if err := s.branchRepo.Delete(ownerID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *branchService) GetAllBranches(ownerID string) ([]model.Branch, error) {
	return s.branchRepo.FindAll(ownerID)
}
