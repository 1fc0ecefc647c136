package models

import (
	"github.com/shopspring/decimal"
)

// Food is a menu item. Price is fixed-point decimal(10,2); money never
// travels as float.
type Food struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	Name           string          `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description    string          `gorm:"size:1000;not null" json:"description"`
	Price          decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImagePath      string          `gorm:"size:255" json:"imagePath,omitempty"`
	FoodCategoryID uint            `gorm:"index;not null" json:"foodCategoryId"`
	FoodCategory   *FoodCategory   `gorm:"foreignKey:FoodCategoryID" json:"-"`

	Allergens []Allergen `gorm:"many2many:food_allergens" json:"-"`
}

type FoodCategory struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`

	Foods []Food `gorm:"foreignKey:FoodCategoryID" json:"-"`
}

type Allergen struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

// FoodAllergen is the join row behind the many2many association. Declared
// explicitly so deletes can clear join rows in the same transaction instead
// of relying on a storage-level cascade.
type FoodAllergen struct {
	FoodID     uint `gorm:"primaryKey"`
	AllergenID uint `gorm:"primaryKey"`
}
