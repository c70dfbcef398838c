package dto

import "github.com/princinho/marketplace/models"

// Quantity is decoded as a number so that 2.0 is accepted; "integral"
// rejects fractions.
type OrderItemDTO struct {
	ProductID *string  `json:"product_id" binding:"required"`
	Quantity  *float64 `json:"quantity"   binding:"omitempty,integral,min=1"`
}

type CreateOrderDTO struct {
	BuyerName       *string        `json:"buyer_name"       binding:"required"`
	ShippingAddress *string        `json:"shipping_address" binding:"required"`
	Items           []OrderItemDTO `json:"items"            binding:"required,dive"`
}

// HasEmptyItems reports an items list that was sent but holds nothing.
// A missing or null list is left to the required rule.
func (d CreateOrderDTO) HasEmptyItems() bool {
	return d.Items != nil && len(d.Items) == 0
}

// ToModel builds the stored order with status "placed" and a quantity of 1
// for items that did not set one.
func (d CreateOrderDTO) ToModel() models.Order {
	items := make([]models.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		qty := 1
		if it.Quantity != nil {
			qty = int(*it.Quantity)
		}
		items = append(items, models.OrderItem{ProductID: deref(it.ProductID), Quantity: qty})
	}
	return models.Order{
		BuyerName:       deref(d.BuyerName),
		ShippingAddress: deref(d.ShippingAddress),
		Items:           items,
		Status:          models.OrderStatusPlaced,
	}
}
