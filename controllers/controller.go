package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/marketplace/database"
	"github.com/princinho/marketplace/validation"
	"go.uber.org/zap"
)

// Controller serves the marketplace endpoints over an injected store.
type Controller struct {
	Store database.Store
	Log   *zap.Logger
	// URISet reports whether a connection string was configured. Only
	// shown by diagnostics.
	URISet bool
}

func New(store database.Store, log *zap.Logger, uriSet bool) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	validation.Install()
	return &Controller{Store: store, Log: log, URISet: uriSet}
}

// validationFailed answers 422. Handlers bind with ShouldBindBodyWithJSON so
// the raw body is cached for locating type errors.
func validationFailed(c *gin.Context, err error) {
	var body []byte
	if cached, ok := c.Get(gin.BodyBytesKey); ok {
		body, _ = cached.([]byte)
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": validation.FromBindError(err, body)})
}

func (ctl *Controller) storeFailed(c *gin.Context, op string, err error) {
	ctl.Log.Error("store operation failed",
		zap.String("operation", op),
		zap.String("request_id", c.GetString("requestID")),
		zap.Error(err),
	)
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
