package dto

import "github.com/princinho/marketplace/models"

type CreateSellerDTO struct {
	Name     *string `json:"name" binding:"required"`
	Email    *string `json:"email"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"is_active"` // defaults to true
}

func (d CreateSellerDTO) ToModel() models.Seller {
	s := models.Seller{
		Name:     deref(d.Name),
		Email:    d.Email,
		Address:  d.Address,
		IsActive: true,
	}
	if d.IsActive != nil {
		s.IsActive = *d.IsActive
	}
	return s
}
