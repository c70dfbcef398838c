package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/princinho/marketplace/controllers"
)

// RegisterRoutes mounts every marketplace endpoint on r.
func RegisterRoutes(r gin.IRouter, ctl *controllers.Controller) {
	r.GET("/", ctl.Root())
	r.GET("/test", ctl.Diagnostics())
	r.GET("/schema", ctl.GetSchemas())

	api := r.Group("/api")
	{
		api.POST("/sellers", ctl.CreateSeller())

		api.GET("/products", ctl.GetProducts())
		api.POST("/products", ctl.AddProduct())

		api.GET("/orders", ctl.GetOrders())
		api.POST("/orders", ctl.CreateOrder())
	}
}
