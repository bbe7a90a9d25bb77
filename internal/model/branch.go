package model

type Branch struct {
	BaseModel
	OwnerID  string `gorm:"type:varchar(64);index;not null" json:"ownerId"`
	Name     string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Location string `gorm:"type:varchar(255);not null" json:"location" validate:"required"`
	Size     string `gorm:"type:varchar(50)" json:"size"` // e.g. "Small", "Medium", "Large" or sqm
	Manager  string `gorm:"type:varchar(255)" json:"manager,omitempty"`
}
