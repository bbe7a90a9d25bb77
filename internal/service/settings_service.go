package service

import (
	"errors"
	"fmt"

	"retail-pos-api/internal/model"
	"retail-pos-api/internal/repository"
	"retail-pos-api/pkg/validator"

	"gorm.io/gorm"
)

type SettingsService interface {
	GetSettings(ownerID string) (*model.StoreSettings, error)
	UpdateSettings(ownerID string, req *model.StoreSettings) (*model.StoreSettings, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

func NewSettingsService(sRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: sRepo}
}

// GetSettings never fails on a missing row: owners that have not saved
// anything yet get the defaults.
func (s *settingsService) GetSettings(ownerID string) (*model.StoreSettings, error) {
	settings, err := s.settingsRepo.FindByOwner(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.DefaultStoreSettings(ownerID), nil
		}
		return nil, err
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ownerID string, req *model.StoreSettings) (*model.StoreSettings, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		first := errs[0]
		return nil, fmt.Errorf("validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag)
	}

	req.OwnerID = ownerID
	if req.CurrencySymbol == "" {
		req.CurrencySymbol = model.DefaultStoreSettings(ownerID).CurrencySymbol
	}
	if err := s.settingsRepo.Upsert(req); err != nil {
		return nil, err
	}
	return s.settingsRepo.FindByOwner(ownerID)
}
