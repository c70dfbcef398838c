package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/marketplace/database"
	"github.com/princinho/marketplace/dto"
	"github.com/princinho/marketplace/models"
)

// POST /api/orders
func (ctl *Controller) CreateOrder() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateOrderDTO
		err := c.ShouldBindBodyWithJSON(&body)
		// An explicitly empty list wins over every other field error.
		if body.HasEmptyItems() {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Order must contain at least one item"})
			return
		}
		if err != nil {
			validationFailed(c, err)
			return
		}

		id, err := ctl.Store.Insert(c.Request.Context(), models.OrderCollection, body.ToModel())
		if err != nil {
			ctl.storeFailed(c, "insert order", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}

// GET /api/orders
func (ctl *Controller) GetOrders() gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := database.FindAll[models.Order](c.Request.Context(), ctl.Store, models.OrderCollection, database.All())
		if err != nil {
			ctl.storeFailed(c, "find orders", err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}
