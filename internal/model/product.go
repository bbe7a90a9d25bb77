package model

// LowStockThreshold is the stock level below which a restock alert fires.
const LowStockThreshold = 10

type Product struct {
	BaseModel
	OwnerID     string  `gorm:"type:varchar(64);index;not null" json:"ownerId"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Category    string  `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Price       float64 `gorm:"type:numeric(12,2);default:0" json:"price" validate:"gte=0"`
	Stock       int     `gorm:"default:0" json:"stock" validate:"gte=0"`
	Image       string  `gorm:"type:text" json:"image,omitempty"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
}

// IsLowStock reports whether the product should trigger a restock alert.
func (p *Product) IsLowStock() bool {
	return p.Stock < LowStockThreshold
}
