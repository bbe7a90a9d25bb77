package repository

import (
	"retail-pos-api/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	FindByOwner(ownerID string) (*model.StoreSettings, error)
	Upsert(settings *model.StoreSettings) error
}

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) SettingsRepository {
	return &settingsRepo{db}
}

func (r *settingsRepo) FindByOwner(ownerID string) (*model.StoreSettings, error) {
	var settings model.StoreSettings
	err := r.db.First(&settings, "owner_id = ?", ownerID).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// Upsert creates the settings row for the owner on first save.
func (r *settingsRepo) Upsert(settings *model.StoreSettings) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "owner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tax_rate", "currency_symbol", "prices_include_tax", "admin_email",
			"notify_low_stock_email", "notify_low_stock_sms",
			"notify_daily_sales_email", "notify_weekly_sales_email",
			"updated_at",
		}),
	}).Create(settings).Error
}
