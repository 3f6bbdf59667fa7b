package models

import (
	"strings"
	"time"
)

// OrderStatus is the operational state of a delivery order. The values are the
// literal labels used by the planning team (and stored as-is), not symbolic codes.
type OrderStatus string

const (
	StatusUnreviewed   OrderStatus = "Sin revisar"
	StatusRTC          OrderStatus = "RTC"
	StatusClientNotice OrderStatus = "Cliente Avisa"
	StatusPreparing    OrderStatus = "En preparacion"
	StatusScheduled    OrderStatus = "Agendado"
)

// AllStatuses lists every valid order status, in workflow order.
var AllStatuses = []OrderStatus{
	StatusUnreviewed,
	StatusRTC,
	StatusClientNotice,
	StatusPreparing,
	StatusScheduled,
}

// IncidentNoteMarker tags the notes field of synthetic incident records.
const IncidentNoteMarker = "[INCIDENCIA]"

// Order is the central entity: a delivery with location, monetary and dispatch
// attributes. The ID comes from the source inventory system and is the natural
// merge key across CSV imports.
//
// An order with Status == StatusScheduled is committed to a dispatch plan,
// with or without a truck assigned yet: reimports must not touch its dispatch
// fields.
type Order struct {
	ID             string      `json:"id" gorm:"primaryKey"`
	Status         OrderStatus `json:"status" gorm:"not null;default:'Sin revisar'"`
	ServiceDate    string      `json:"service_date" gorm:"column:service_date"` // ISO YYYY-MM-DD, "" = unscheduled
	TotalAmount    float64     `json:"total_amount" gorm:"column:total_amount"`
	PendingPayment float64     `json:"pending_payment" gorm:"column:pending_payment"`
	ZipCode        string      `json:"zip_code" gorm:"column:zip_code"`
	City           string      `json:"city"`
	Province       string      `json:"province"` // always derived from ZipCode
	Address        string      `json:"address"`
	Notes          string      `json:"notes"`
	Phone1         string      `json:"phone1"`
	Phone2         string      `json:"phone2"`
	TruckID        string      `json:"truck_id" gorm:"column:truck_id"` // "" = unassigned
	Store          string      `json:"store"`                           // short store code, may dangle
	UpdatedAt      *time.Time  `json:"updated_at,omitempty" gorm:"column:updated_at;autoUpdateTime:false"`
	UpdatedBy      string      `json:"updated_by,omitempty" gorm:"column:updated_by"` // empty for machine imports
}

// IsIncident reports whether the order is a synthetic incident record rather
// than a real delivery.
func (o Order) IsIncident() bool {
	return strings.HasPrefix(o.Notes, IncidentNoteMarker)
}

// IsCommitted reports whether the order is locked into a dispatch plan, which
// protects its dispatch fields from bulk reimports. A scheduled order that
// still awaits a truck counts: demoting it would drop it from the loads view.
func (o Order) IsCommitted() bool {
	return o.Status == StatusScheduled
}

// OrderStats are the dashboard aggregates, computed over a filtered view.
type OrderStats struct {
	TotalOrders         int     `json:"total_orders"`
	TotalPortfolioValue float64 `json:"total_portfolio_value"`
	TotalPendingAmount  float64 `json:"total_pending_amount"`
	AverageAmount       float64 `json:"average_amount"`
	PendingCount        int     `json:"pending_count"`
}
