package models

import "github.com/princinho/marketplace/database"

const ProductCollection = "product"

type Product struct {
	Id          database.DocumentID `bson:"_id,omitempty" json:"_id"`
	Title       string              `bson:"title" json:"title"`
	Description *string             `bson:"description" json:"description"`
	Price       float64             `bson:"price" json:"price"`
	Category    string              `bson:"category" json:"category"`
	InStock     bool                `bson:"in_stock" json:"in_stock"`
	SellerName  string              `bson:"seller_name" json:"seller_name"` // free text, not checked against sellers
	ImageUrl    *string             `bson:"image_url" json:"image_url"`
}

// ProductQuery selects products. An empty Category selects all of them.
type ProductQuery struct {
	Category string
}

func (q ProductQuery) Query() database.Query {
	dq := database.All()
	if q.Category != "" {
		dq = dq.Where("category", q.Category)
	}
	return dq
}
