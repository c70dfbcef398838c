package models

import "github.com/princinho/marketplace/database"

const SellerCollection = "seller"

type Seller struct {
	Id       database.DocumentID `bson:"_id,omitempty" json:"_id"`
	Name     string              `bson:"name" json:"name"`
	Email    *string             `bson:"email" json:"email"`
	Address  *string             `bson:"address" json:"address"`
	IsActive bool                `bson:"is_active" json:"is_active"`
}
