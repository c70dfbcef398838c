package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/marketplace/models"
	"github.com/princinho/marketplace/utils"
)

const (
	maxListedCollections = 10
	maxErrorText         = 50
)

type DiagnosticsResponse struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      *string  `json:"database_url"`
	DatabaseName     *string  `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// GET /
func (ctl *Controller) Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Marketplace backend running"})
	}
}

// GET /test
// Always answers 200; store failures are reported in the "database" field.
func (ctl *Controller) Diagnostics() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := DiagnosticsResponse{
			Backend:          "✅ Running",
			Database:         "❌ Not Available",
			ConnectionStatus: "Not Connected",
			Collections:      []string{},
		}
		defer func() {
			if r := recover(); r != nil {
				resp.Database = "❌ Error: " + utils.Truncate(fmt.Sprint(r), maxErrorText)
				c.JSON(http.StatusOK, resp)
			}
		}()

		if !ctl.Store.Connected() {
			resp.Database = "⚠️  Available but not initialized"
			c.JSON(http.StatusOK, resp)
			return
		}

		url := "❌ Not Set"
		if ctl.URISet {
			url = "✅ Set"
		}
		name := ctl.Store.Name()
		if name == "" {
			name = "✅ Connected"
		}
		resp.DatabaseURL = &url
		resp.DatabaseName = &name
		resp.Database = "✅ Available"
		resp.ConnectionStatus = "Connected"

		names, err := ctl.Store.ListCollectionNames(c.Request.Context())
		if err != nil {
			resp.Database = "⚠️  Connected but Error: " + utils.Truncate(err.Error(), maxErrorText)
			c.JSON(http.StatusOK, resp)
			return
		}
		if len(names) > maxListedCollections {
			names = names[:maxListedCollections]
		}
		resp.Collections = append(resp.Collections, names...)
		resp.Database = "✅ Connected & Working"
		c.JSON(http.StatusOK, resp)
	}
}

// GET /schema
func (ctl *Controller) GetSchemas() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.Schemas())
	}
}
