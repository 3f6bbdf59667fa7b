package handlers

import (
	"net/http"
	"time"

	"distrigestion/config"
	"distrigestion/engine"
	"distrigestion/middleware"
	"distrigestion/models"
	"distrigestion/repository"

	"github.com/gin-gonic/gin"
)

// LoadHandler serves the daily load sheet: per-truck committed orders for a
// date, bulk transfers between trucks and incident registration.
type LoadHandler struct {
	Repo repository.OrderRepository
}

// GetLoads returns every truck's load for a service date, trucks in natural
// dispatch-label order, plus the unassigned group that needs urgent
// resolution.
func (h *LoadHandler) GetLoads(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter required (YYYY-MM-DD)"})
		return
	}

	orders, err := h.Repo.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load orders"})
		return
	}

	var trucks []models.Truck
	config.DB.Find(&trucks)
	models.SortTrucksByNumber(trucks)

	byTruck, unassigned := engine.GroupLoads(orders, date)

	type truckLoad struct {
		Truck models.Truck     `json:"truck"`
		Load  engine.TruckLoad `json:"load"`
	}
	loads := make([]truckLoad, 0, len(trucks))
	for _, t := range trucks {
		load := byTruck[t.ID]
		load.TruckID = t.ID
		loads = append(loads, truckLoad{Truck: t, Load: load})
	}

	c.JSON(http.StatusOK, gin.H{
		"date":       date,
		"loads":      loads,
		"unassigned": unassigned,
	})
}

type transferRequest struct {
	SourceTruckID string `json:"source_truck_id" binding:"required"`
	DestTruckID   string `json:"dest_truck_id" binding:"required"`
	SourceDate    string `json:"source_date" binding:"required"`
	TargetDate    string `json:"target_date" binding:"required"`
}

// TransferLoads moves a truck's entire load for one date to another truck
// and date. Zero matching orders is a success, not an error.
func (h *LoadHandler) TransferLoads(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d := &engine.Dispatcher{Repo: h.Repo}
	moved, err := d.Transfer(
		c.Request.Context(),
		req.SourceTruckID, req.DestTruckID,
		req.SourceDate, req.TargetDate,
		time.Now().UTC(), middleware.GetUserName(c),
	)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Transfer failed, reload to resynchronize"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Transfer completed",
		"moved":   moved,
	})
}

// RegisterIncident creates a synthetic zero-value order on a truck's route.
func (h *LoadHandler) RegisterIncident(c *gin.Context) {
	var inc engine.Incident
	if err := c.ShouldBindJSON(&inc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if inc.TruckID == "" || inc.ServiceDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "truck_id and service_date required"})
		return
	}

	d := &engine.Dispatcher{Repo: h.Repo}
	order, err := d.RegisterIncident(c.Request.Context(), inc, time.Now().UTC(), middleware.GetUserName(c))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to register incident"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Incident registered", "order": order})
}
