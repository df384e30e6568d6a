package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wecreatehub/site_backend/internal/models"
)

type LeadAdminController struct {
	DB *gorm.DB
}

func validSheet(s string) bool {
	switch s {
	case models.SheetInquiries, models.SheetNotifications, models.SheetLeads:
		return true
	}
	return false
}

func (a *LeadAdminController) List(c *gin.Context) {
	limit := 20
	page := 1
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	sortDir := strings.ToUpper(c.DefaultQuery("sort_dir", "DESC"))
	if sortDir != "ASC" && sortDir != "DESC" {
		sortDir = "DESC"
	}

	sheet := strings.ToLower(strings.TrimSpace(c.Query("sheet")))
	if sheet != "" && !validSheet(sheet) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sheet"})
		return
	}
	formType := strings.TrimSpace(c.Query("form_type"))

	filter := func(q *gorm.DB) *gorm.DB {
		if sheet != "" {
			q = q.Where("sheet = ?", sheet)
		}
		if formType != "" {
			q = q.Where("form_type = ?", formType)
		}
		return q
	}

	var total int64
	if err := filter(a.DB.Model(&models.Lead{})).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var items []models.Lead
	err := filter(a.DB.Model(&models.Lead{})).
		Order("created_at " + sortDir).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&items).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": items,
		"meta": gin.H{"total": total, "limit": limit, "page": page, "sort_dir": sortDir, "sheet": sheet},
	})
}

func (a *LeadAdminController) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var lead models.Lead
	if err := a.DB.Where("id = ?", id.String()).First(&lead).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, lead)
}

// Clear deletes every row of one sheet.
func (a *LeadAdminController) Clear(c *gin.Context) {
	sheet := strings.ToLower(strings.TrimSpace(c.Query("sheet")))
	if !validSheet(sheet) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sheet is required"})
		return
	}
	res := a.DB.Where("sheet = ?", sheet).Delete(&models.Lead{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted", "count": res.RowsAffected})
}
