package engine

import (
	"context"
	"strings"
	"time"

	"distrigestion/geo"
	"distrigestion/models"
	"distrigestion/repository"

	"github.com/google/uuid"
)

// IncidentIDPrefix marks synthetic incident orders in the id namespace, away
// from the source system's numeric ids.
const IncidentIDPrefix = "INC-"

// TruckLoad is one truck's committed orders for one service date.
type TruckLoad struct {
	TruckID      string         `json:"truck_id"`
	Orders       []models.Order `json:"orders"`
	TotalValue   float64        `json:"total_value"`
	TotalPending float64        `json:"total_pending"`
}

// LoadFor selects a truck's load for a date: the orders assigned to it,
// scheduled for that date, with status Agendado.
func LoadFor(orders []models.Order, truckID, date string) []models.Order {
	var load []models.Order
	for _, o := range orders {
		if o.Status == models.StatusScheduled && o.ServiceDate == date && o.TruckID == truckID {
			load = append(load, o)
		}
	}
	return load
}

// GroupLoads splits the scheduled orders of one date into per-truck loads
// plus the distinguished unassigned group (scheduled, no truck), which needs
// urgent resolution and must be surfaced rather than dropped.
func GroupLoads(orders []models.Order, date string) (byTruck map[string]TruckLoad, unassigned []models.Order) {
	byTruck = make(map[string]TruckLoad)
	for _, o := range orders {
		if o.Status != models.StatusScheduled || o.ServiceDate != date {
			continue
		}
		if o.TruckID == "" {
			unassigned = append(unassigned, o)
			continue
		}
		load := byTruck[o.TruckID]
		load.TruckID = o.TruckID
		load.Orders = append(load.Orders, o)
		load.TotalValue += o.TotalAmount
		load.TotalPending += o.PendingPayment
		byTruck[o.TruckID] = load
	}
	return byTruck, unassigned
}

// Dispatcher performs the multi-record dispatch mutations against the store.
type Dispatcher struct {
	Repo repository.OrderRepository
}

// Transfer moves a truck's entire load for one date to another truck and
// date, as one batch write. An empty selection is a valid steady state and a
// silent no-op: no write is issued. On failure nothing is trusted locally;
// the caller re-reads the store. Returns how many orders were moved.
func (d *Dispatcher) Transfer(ctx context.Context, sourceTruckID, destTruckID, sourceDate, targetDate string, now time.Time, actor string) (int, error) {
	orders, err := d.Repo.ListOrders(ctx)
	if err != nil {
		return 0, err
	}

	load := LoadFor(orders, sourceTruckID, sourceDate)
	if len(load) == 0 {
		return 0, nil
	}

	ids := make([]string, len(load))
	for i, o := range load {
		ids[i] = o.ID
	}

	if err := d.Repo.TransferLoads(ctx, ids, destTruckID, targetDate, now, actor); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Incident describes an operational exception to register against a truck's
// route: a pickup, a damaged delivery, a second visit. Not a real sale.
type Incident struct {
	TruckID     string `json:"truck_id"`
	ServiceDate string `json:"service_date"`
	Description string `json:"description"`
	City        string `json:"city"`
	Address     string `json:"address"`
	ZipCode     string `json:"zip_code"`
	Phone       string `json:"phone"`
}

// RegisterIncident inserts a synthetic zero-value order carrying the incident
// description, directly committed to the given truck and date. Incidents are
// additive records with their own id space; they never merge with imports.
func (d *Dispatcher) RegisterIncident(ctx context.Context, inc Incident, now time.Time, actor string) (models.Order, error) {
	notes := models.IncidentNoteMarker
	if inc.Description != "" {
		notes += " " + inc.Description
	}
	order := models.Order{
		ID:          IncidentIDPrefix + strings.ToUpper(uuid.NewString()[:8]),
		Status:      models.StatusScheduled,
		ServiceDate: inc.ServiceDate,
		TruckID:     inc.TruckID,
		City:        inc.City,
		Address:     inc.Address,
		ZipCode:     inc.ZipCode,
		Province:    geo.ResolveProvince(inc.ZipCode),
		Phone1:      inc.Phone,
		Notes:       notes,
		UpdatedAt:   &now,
		UpdatedBy:   actor,
	}
	if err := d.Repo.InsertOrder(ctx, order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}
