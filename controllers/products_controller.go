package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/marketplace/database"
	"github.com/princinho/marketplace/dto"
	"github.com/princinho/marketplace/models"
)

// GET /api/products?category=
// The category filter is an exact match; an empty value lists everything.
func (ctl *Controller) GetProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		q := models.ProductQuery{Category: c.Query("category")}

		products, err := database.FindAll[models.Product](c.Request.Context(), ctl.Store, models.ProductCollection, q.Query())
		if err != nil {
			ctl.storeFailed(c, "find products", err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// POST /api/products
func (ctl *Controller) AddProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateProductDTO
		if err := c.ShouldBindBodyWithJSON(&body); err != nil {
			validationFailed(c, err)
			return
		}

		id, err := ctl.Store.Insert(c.Request.Context(), models.ProductCollection, body.ToModel())
		if err != nil {
			ctl.storeFailed(c, "insert product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}
