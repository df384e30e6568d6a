package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wecreatehub/site_backend/internal/models"
	"github.com/wecreatehub/site_backend/internal/store"
	"github.com/wecreatehub/site_backend/internal/utils"
)

// ConfigAdminController shows operators what public readers will render
// from the stored document.
type ConfigAdminController struct {
	Store store.ConfigStore
}

func (a *ConfigAdminController) Get(c *gin.Context) {
	raw, err := a.Store.Read(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	doc, report, err := models.Merge(models.Default(), raw)
	status := "merged"
	switch {
	case errors.Is(err, models.ErrIncompatible):
		status = "incompatible"
	case errors.Is(err, models.ErrMalformed):
		status = "malformed"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"digest":   utils.SHA256Hex(raw),
		"size":     len(raw),
		"document": doc,
		"report":   report,
	})
}
