package model

import (
	"time"
)

type Item struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"type:varchar(80);not null" json:"name"`
	Description string    `gorm:"type:varchar(200)" json:"description,omitempty"`
	Price       float64   `gorm:"not null" json:"price"`
	StoreID     uint      `gorm:"not null;index" json:"store_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Store *Store `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Tags  []Tag  `gorm:"many2many:item_tags" json:"tags,omitempty"`
}

func (Item) TableName() string {
	return "items"
}

// ItemTag is the join table behind the Item<->Tag many-to-many relation.
// Declared explicitly so link rows can be deleted in cascade transactions.
type ItemTag struct {
	ItemID    uint      `gorm:"primaryKey" json:"item_id"`
	TagID     uint      `gorm:"primaryKey" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (ItemTag) TableName() string {
	return "item_tags"
}
