package models

import "github.com/princinho/marketplace/database"

const OrderCollection = "order"

// OrderStatusPlaced is the status every new order starts with. Status is
// free text; no transitions are enforced.
const OrderStatusPlaced = "placed"

type OrderItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

type Order struct {
	Id              database.DocumentID `bson:"_id,omitempty" json:"_id"`
	BuyerName       string              `bson:"buyer_name" json:"buyer_name"`
	ShippingAddress string              `bson:"shipping_address" json:"shipping_address"`
	Items           []OrderItem         `bson:"items" json:"items"`
	Status          string              `bson:"status" json:"status"`
}
