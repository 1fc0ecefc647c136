package services

import (
	"encoding/json"

	"github.com/IMarelja/FullGrillPizzeriaOrderSystem/models"
)

// Cart is the client-held pre-order list. It travels as a JSON cookie and
// is discarded wholesale once checkout succeeds.
type Cart struct {
	Items []OrderItemInput `json:"items"`
}

// ParseCart decodes a cart cookie. Corrupt payloads degrade to an empty
// cart rather than failing the request.
func ParseCart(raw string) Cart {
	var cart Cart
	if raw == "" {
		return Cart{}
	}
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return Cart{}
	}
	return cart
}

func (c Cart) Encode() (string, error) {
	data, err := json.Marshal(c)
	return string(data), err
}

// Add increments the quantity for a food, clamped at the per-line maximum,
// appending a new entry on first add.
func (c Cart) Add(foodID uint, quantity int) Cart {
	if quantity < 1 {
		quantity = 1
	}
	for i, it := range c.Items {
		if it.FoodID == foodID {
			q := it.Quantity + quantity
			if q > models.QuantityMax {
				q = models.QuantityMax
			}
			c.Items[i].Quantity = q
			return c
		}
	}
	if quantity > models.QuantityMax {
		quantity = models.QuantityMax
	}
	c.Items = append(c.Items, OrderItemInput{FoodID: foodID, Quantity: quantity})
	return c
}

// Decrement lowers the quantity for a food and drops the entry when it
// reaches zero.
func (c Cart) Decrement(foodID uint) Cart {
	for i, it := range c.Items {
		if it.FoodID == foodID {
			if it.Quantity <= 1 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity--
			}
			return c
		}
	}
	return c
}

func (c Cart) IsEmpty() bool { return len(c.Items) == 0 }
