package model

import (
	"time"
)

// Store owns items and tags. Deleting a store cascades to both; the cascade
// runs in the repository so it also holds on test databases without FK
// enforcement.
type Store struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(80);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []Item `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Tags  []Tag  `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
}

func (Store) TableName() string {
	return "stores"
}
