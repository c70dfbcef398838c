package models

// FieldSchema describes one field of a stored document.
type FieldSchema struct {
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Required    bool          `json:"required"`
	Default     any           `json:"default,omitempty"`
	Description string        `json:"description"`
	Minimum     *float64      `json:"minimum,omitempty"`
	Items       []FieldSchema `json:"items,omitempty"`
}

type CollectionSchema struct {
	Collection string        `json:"collection"`
	Fields     []FieldSchema `json:"fields"`
}

func minimum(v float64) *float64 { return &v }

var orderItemFields = []FieldSchema{
	{Name: "product_id", Type: "string", Required: true, Description: "Product _id as string"},
	{Name: "quantity", Type: "integer", Default: 1, Minimum: minimum(1), Description: "Quantity of the product"},
}

// Schemas lists the document shape of every collection.
func Schemas() []CollectionSchema {
	return []CollectionSchema{
		{
			Collection: SellerCollection,
			Fields: []FieldSchema{
				{Name: "name", Type: "string", Required: true, Description: "Seller display name"},
				{Name: "email", Type: "string", Description: "Contact email"},
				{Name: "address", Type: "string", Description: "Business address"},
				{Name: "is_active", Type: "boolean", Default: true, Description: "Whether seller account is active"},
			},
		},
		{
			Collection: ProductCollection,
			Fields: []FieldSchema{
				{Name: "title", Type: "string", Required: true, Description: "Product title"},
				{Name: "description", Type: "string", Description: "Product description"},
				{Name: "price", Type: "number", Required: true, Minimum: minimum(0), Description: "Price in dollars"},
				{Name: "category", Type: "string", Required: true, Description: "Product category"},
				{Name: "in_stock", Type: "boolean", Default: true, Description: "Whether product is in stock"},
				{Name: "seller_name", Type: "string", Required: true, Description: "Name of the seller offering this product"},
				{Name: "image_url", Type: "string", Description: "Public image URL of the product"},
			},
		},
		{
			Collection: OrderCollection,
			Fields: []FieldSchema{
				{Name: "buyer_name", Type: "string", Required: true, Description: "Name of the buyer"},
				{Name: "shipping_address", Type: "string", Required: true, Description: "Shipping address"},
				{Name: "items", Type: "array", Required: true, Items: orderItemFields, Description: "Products purchased in this order"},
				{Name: "status", Type: "string", Default: OrderStatusPlaced, Description: "Order status"},
			},
		},
	}
}
