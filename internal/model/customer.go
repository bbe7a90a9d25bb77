package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Purchase is a denormalized purchase record kept on the customer document.
// Dates are stored as ISO-8601 strings.
type Purchase struct {
	ID            string     `json:"id"`
	Date          string     `json:"date"`
	Items         []CartItem `json:"items"`
	TotalAmount   float64    `json:"totalAmount"`
	InvoiceNumber string     `json:"invoiceNumber"`
}

// PurchaseHistory is stored as a JSONB column.
type PurchaseHistory []Purchase

func (h PurchaseHistory) Value() (driver.Value, error) {
	if h == nil {
		h = PurchaseHistory{}
	}
	return json.Marshal(h)
}

func (h *PurchaseHistory) Scan(value interface{}) error {
	if value == nil {
		*h = PurchaseHistory{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for PurchaseHistory")
	}
	return json.Unmarshal(raw, h)
}

type Customer struct {
	BaseModel
	OwnerID         string          `gorm:"type:varchar(64);uniqueIndex:idx_customers_owner_email;not null" json:"ownerId"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email           string          `gorm:"type:varchar(255);uniqueIndex:idx_customers_owner_email;not null" json:"email" validate:"required,email"`
	Phone           string          `gorm:"type:varchar(30)" json:"phone,omitempty"`
	Address         string          `gorm:"type:text" json:"address,omitempty"`
	LoyaltyPoints   int             `gorm:"default:0" json:"loyaltyPoints"`
	PurchaseHistory PurchaseHistory `gorm:"type:jsonb;default:'[]'" json:"purchaseHistory"`
}
