package handlers

import (
	"net/http"

	"distrigestion/config"
	"distrigestion/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ListTrucks returns the fleet in natural dispatch-label order.
func ListTrucks(c *gin.Context) {
	var trucks []models.Truck
	if err := config.DB.Find(&trucks).Error; err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load trucks"})
		return
	}
	models.SortTrucksByNumber(trucks)
	c.JSON(http.StatusOK, gin.H{"count": len(trucks), "trucks": trucks})
}

type truckRequest struct {
	Number string `json:"number" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Phone  string `json:"phone"`
}

// CreateTruck registers a new vehicle.
func CreateTruck(c *gin.Context) {
	var req truckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	truck := models.Truck{
		ID:     uuid.NewString(),
		Number: req.Number,
		Name:   req.Name,
		Phone:  req.Phone,
	}
	if err := config.DB.Create(&truck).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create truck"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Truck created", "truck": truck})
}

// DeleteTruck removes a vehicle. Orders referencing it keep the dangling id
// and degrade to showing it raw; they are not touched here.
func DeleteTruck(c *gin.Context) {
	id := c.Param("id")
	res := config.DB.Delete(&models.Truck{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete truck"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Truck not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Truck deleted"})
}
