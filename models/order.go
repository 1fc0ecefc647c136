package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is immutable once created except for deletion. TotalPrice is the
// sum of quantity × catalog price captured at creation time; later price
// changes never rewrite it.
type Order struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderDate  time.Time       `gorm:"index;not null" json:"orderDate"`
	UserID     uint            `gorm:"index;not null" json:"userId"`
	User       *User           `gorm:"foreignKey:UserID" json:"-"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"totalPrice"`

	OrderFoods []OrderFood `gorm:"foreignKey:OrderID" json:"-"`
}

// OrderFood is one line item, keyed (orderId, foodId) after duplicate
// entries in the submitted cart are collapsed.
type OrderFood struct {
	OrderID  uint  `gorm:"primaryKey" json:"orderId"`
	FoodID   uint  `gorm:"primaryKey" json:"foodId"`
	Food     *Food `gorm:"foreignKey:FoodID" json:"-"`
	Quantity int   `gorm:"not null" json:"quantity"`
}
