package dto

import "github.com/princinho/marketplace/models"

// Required strings are pointers: "required" then checks presence, and an
// empty string is a valid value.
type CreateProductDTO struct {
	Title       *string  `json:"title" binding:"required"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Category    *string  `json:"category" binding:"required"`
	SellerName  *string  `json:"seller_name" binding:"required"`
	ImageUrl    *string  `json:"image_url"`
}

// ToModel builds the stored product. New products are always in stock.
func (d CreateProductDTO) ToModel() models.Product {
	p := models.Product{
		Title:       deref(d.Title),
		Description: d.Description,
		Category:    deref(d.Category),
		InStock:     true,
		SellerName:  deref(d.SellerName),
		ImageUrl:    d.ImageUrl,
	}
	if d.Price != nil {
		p.Price = *d.Price
	}
	return p
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
