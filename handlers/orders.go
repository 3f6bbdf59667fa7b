package handlers

import (
	"io"
	"net/http"
	"sort"
	"time"

	"distrigestion/engine"
	"distrigestion/geo"
	"distrigestion/ingest"
	"distrigestion/middleware"
	"distrigestion/models"
	"distrigestion/repository"

	"github.com/gin-gonic/gin"
)

// OrderHandler serves the order dashboard: filtered views, CSV imports and
// edits. The repository is injected so the reconciliation path is the same
// one exercised by the engine tests.
type OrderHandler struct {
	Repo repository.OrderRepository
}

// ListOrders returns the filtered, sorted order view with its aggregates and
// the province/city filter options.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.Repo.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load orders"})
		return
	}

	filters := engine.Filters{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		Province:      c.Query("province"),
		City:          c.Query("city"),
		Store:         c.Query("store"),
		Payment:       engine.PaymentFilter(c.DefaultQuery("payment", "all")),
		ServiceDate:   c.Query("service_date"),
		DateCondition: engine.DateCondition(c.DefaultQuery("date_condition", "equal")),
	}

	provinces := engine.AvailableProvinces(orders)
	cities := engine.AvailableCities(orders, filters.Province)

	// A city filter left over from another province scope resets to "all".
	if filters.City != "" && filters.City != "all" && !contains(cities, filters.City) {
		filters.City = ""
	}

	sortSpec := engine.Sort{
		Field:      engine.SortField(c.DefaultQuery("sort_by", string(engine.SortByServiceDate))),
		Descending: c.DefaultQuery("sort_dir", "desc") == "desc",
	}

	filtered, stats := engine.BuildView(orders, filters, sortSpec)

	c.JSON(http.StatusOK, gin.H{
		"count":     len(filtered),
		"orders":    filtered,
		"stats":     stats,
		"provinces": provinces,
		"cities":    cities,
	})
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// ImportCSV ingests a raw CSV batch, reconciles it with current order state
// and upserts the merged records. Committed dispatch assignments survive the
// reimport untouched.
func (h *OrderHandler) ImportCSV(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	batch := ingest.Decode(string(body))
	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid data detected in CSV"})
		return
	}

	importer := &engine.Importer{Repo: h.Repo}
	res, err := importer.Import(c.Request.Context(), batch, time.Now().UTC())
	if err != nil {
		// The batch write failed as a whole; the client re-fetches to
		// resynchronize with whatever actually persisted.
		c.JSON(http.StatusBadGateway, gin.H{"error": "Import failed, reload to resynchronize"})
		return
	}

	orders, err := h.Repo.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Import written but reload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Import successful",
		"result":  res,
		"count":   len(orders),
	})
}

type orderEditRequest struct {
	Status         models.OrderStatus `json:"status"`
	ServiceDate    string             `json:"service_date"`
	TotalAmount    float64            `json:"total_amount"`
	PendingPayment float64            `json:"pending_payment"`
	ZipCode        string             `json:"zip_code"`
	City           string             `json:"city"`
	Address        string             `json:"address"`
	Notes          string             `json:"notes"`
	Phone1         string             `json:"phone1"`
	Phone2         string             `json:"phone2"`
	TruckID        string             `json:"truck_id"`
	Store          string             `json:"store"`
}

// UpdateOrder applies a manual full edit. The province is always re-derived
// from the zip code, and the edit is stamped with the caller's name.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	id := c.Param("id")

	order, err := h.Repo.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var req orderEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	order.Status = req.Status
	order.ServiceDate = req.ServiceDate
	order.TotalAmount = req.TotalAmount
	order.PendingPayment = req.PendingPayment
	order.ZipCode = req.ZipCode
	order.Province = geo.ResolveProvince(req.ZipCode)
	order.City = req.City
	order.Address = req.Address
	order.Notes = req.Notes
	order.Phone1 = req.Phone1
	order.Phone2 = req.Phone2
	order.TruckID = req.TruckID
	order.Store = req.Store
	order.UpdatedAt = &now
	order.UpdatedBy = middleware.GetUserName(c)

	if err := h.Repo.SaveOrder(c.Request.Context(), order); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to save order"})
		return
	}

	// Read-after-write: return what actually persisted.
	saved, err := h.Repo.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Saved but reload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated", "order": saved})
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus changes only the status of an order.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid := false
	for _, s := range models.AllStatuses {
		if s == req.Status {
			valid = true
			break
		}
	}
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	if _, err := h.Repo.GetOrder(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	now := time.Now().UTC()
	if err := h.Repo.UpdateStatus(c.Request.Context(), id, req.Status, now, middleware.GetUserName(c)); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to update status"})
		return
	}

	saved, err := h.Repo.GetOrder(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Saved but reload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Status updated", "order": saved})
}

const recentEditsLimit = 20

// RecentEdits lists the latest manually edited orders (machine imports carry
// no editor and are excluded), newest first.
func (h *OrderHandler) RecentEdits(c *gin.Context) {
	orders, err := h.Repo.ListOrders(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load orders"})
		return
	}

	var edited []models.Order
	for _, o := range orders {
		if o.UpdatedAt != nil && o.UpdatedBy != "" {
			edited = append(edited, o)
		}
	}
	sort.SliceStable(edited, func(i, j int) bool {
		return edited[i].UpdatedAt.After(*edited[j].UpdatedAt)
	})
	if len(edited) > recentEditsLimit {
		edited = edited[:recentEditsLimit]
	}

	c.JSON(http.StatusOK, gin.H{"count": len(edited), "orders": edited})
}
