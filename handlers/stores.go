package handlers

import (
	"net/http"
	"strings"

	"distrigestion/config"
	"distrigestion/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListStores returns the store code lookup table.
func ListStores(c *gin.Context) {
	var stores []models.Store
	if err := config.DB.Order("code asc").Find(&stores).Error; err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load stores"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(stores), "stores": stores})
}

type storeRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

// CreateStore adds a code → name mapping. Codes are stored uppercased, the
// way they arrive on orders.
func CreateStore(c *gin.Context) {
	var req storeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store := models.Store{
		ID:   uuid.NewString(),
		Code: strings.ToUpper(strings.TrimSpace(req.Code)),
		Name: strings.ToUpper(strings.TrimSpace(req.Name)),
	}

	var existing models.Store
	if err := config.DB.Where("code = ?", store.Code).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Store code already registered"})
		return
	}

	if err := config.DB.Create(&store).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create store"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Store created", "store": store})
}

// DeleteStore removes a mapping; orders carrying the code fall back to
// displaying it raw.
func DeleteStore(c *gin.Context) {
	id := c.Param("id")
	res := config.DB.Delete(&models.Store{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete store"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Store deleted"})
}
