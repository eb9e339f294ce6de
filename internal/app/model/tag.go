package model

import (
	"time"
)

// Tag belongs to a store and can be linked to any of that store's items.
// A tag with linked items refuses deletion.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(80);not null" json:"name"`
	StoreID   uint      `gorm:"not null;index" json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Items []Item `gorm:"many2many:item_tags" json:"items,omitempty"`
}

func (Tag) TableName() string {
	return "tags"
}
