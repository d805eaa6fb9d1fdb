package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"unilink/internal/services"
	"unilink/internal/store"
)

// respond wraps a payload in the success envelope.
func respond(c *gin.Context, code int, payload gin.H) {
	if payload == nil {
		payload = gin.H{}
	}
	payload["success"] = true
	c.JSON(code, payload)
}

func fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "error": message})
}

// failErr maps service errors onto the envelope. Anything outside the known
// taxonomy is a store failure and reports as 500.
func failErr(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, store.ErrDuplicateEmail):
		fail(c, http.StatusBadRequest, "El email ya está registrado")
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Credenciales inválidas")
	default:
		fail(c, http.StatusInternalServerError, err.Error())
	}
}

// parseID converts a path/query id into an ObjectID.
func parseID(raw string) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(raw)
}

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"message": "UCC Red Social API funcionando",
		"version": "1.0",
	})
}

func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":       "Red Social UCC",
		"university": "Universidad Cooperativa de Colombia",
		"endpoints": gin.H{
			"health":        "/health",
			"usuarios":      "/usuarios",
			"publicaciones": "/publicaciones",
		},
	})
}
