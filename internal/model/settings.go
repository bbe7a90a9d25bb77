package model

// NotificationSettings groups the per-store alert toggles.
type NotificationSettings struct {
	LowStockEmail    bool `json:"lowStockEmail"`
	LowStockSms      bool `json:"lowStockSms"`
	DailySalesEmail  bool `json:"dailySalesEmail"`
	WeeklySalesEmail bool `json:"weeklySalesEmail"`
}

type StoreSettings struct {
	BaseModel
	OwnerID          string               `gorm:"type:varchar(64);uniqueIndex;not null" json:"ownerId"`
	TaxRate          float64              `gorm:"type:numeric(5,2);default:0" json:"taxRate" validate:"gte=0"`
	CurrencySymbol   string               `gorm:"type:varchar(10)" json:"currencySymbol"`
	PricesIncludeTax bool                 `gorm:"default:false" json:"pricesIncludeTax"`
	AdminEmail       string               `gorm:"type:varchar(255)" json:"adminEmail" validate:"omitempty,email"`
	Notifications    NotificationSettings `gorm:"embedded;embeddedPrefix:notify_" json:"notifications"`
}

// DefaultStoreSettings returns the settings served before an owner has saved any.
func DefaultStoreSettings(ownerID string) *StoreSettings {
	return &StoreSettings{
		OwnerID:        ownerID,
		CurrencySymbol: "₹",
	}
}
