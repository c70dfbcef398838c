package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/marketplace/dto"
	"github.com/princinho/marketplace/models"
)

// POST /api/sellers
func (ctl *Controller) CreateSeller() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.CreateSellerDTO
		if err := c.ShouldBindBodyWithJSON(&body); err != nil {
			validationFailed(c, err)
			return
		}

		id, err := ctl.Store.Insert(c.Request.Context(), models.SellerCollection, body.ToModel())
		if err != nil {
			ctl.storeFailed(c, "insert seller", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}
