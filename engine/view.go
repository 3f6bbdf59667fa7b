package engine

import (
	"sort"
	"strings"

	"distrigestion/models"
)

// SortField selects the order-list sort key.
type SortField string

const (
	SortByServiceDate    SortField = "serviceDate"
	SortByTotalAmount    SortField = "totalAmount"
	SortByPendingPayment SortField = "pendingPayment"
	SortByID             SortField = "id"
)

// PaymentFilter narrows orders by collection state.
type PaymentFilter string

const (
	PaymentAll  PaymentFilter = "all"
	PaymentZero PaymentFilter = "zero" // fully collected
	PaymentDebt PaymentFilter = "debt" // pending payment outstanding
)

// DateCondition compares an order's service date against the filter date.
// ISO dates compare correctly as plain strings.
type DateCondition string

const (
	DateEqual   DateCondition = "equal"
	DateGreater DateCondition = "greater"
	DateLess    DateCondition = "less"
)

// Filters are AND-combined; the zero value (or "all") of each field leaves it
// inactive.
type Filters struct {
	Search        string
	Status        string
	Province      string
	City          string
	Store         string
	Payment       PaymentFilter
	ServiceDate   string
	DateCondition DateCondition
}

// Sort describes the requested ordering; the sort is stable, so ties keep
// their relative input order.
type Sort struct {
	Field      SortField
	Descending bool
}

func active(v string) bool { return v != "" && v != "all" }

func (f Filters) matches(o models.Order) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(o.ID), term) &&
			!strings.Contains(strings.ToLower(o.City), term) &&
			!strings.Contains(strings.ToLower(o.Address), term) {
			return false
		}
	}
	if active(f.Status) && string(o.Status) != f.Status {
		return false
	}
	if active(f.Province) && o.Province != f.Province {
		return false
	}
	if active(f.City) && o.City != f.City {
		return false
	}
	if active(f.Store) && o.Store != f.Store {
		return false
	}
	switch f.Payment {
	case PaymentZero:
		if o.PendingPayment != 0 {
			return false
		}
	case PaymentDebt:
		if o.PendingPayment <= 0 {
			return false
		}
	}
	if f.ServiceDate != "" {
		switch f.DateCondition {
		case DateGreater:
			if !(o.ServiceDate > f.ServiceDate) {
				return false
			}
		case DateLess:
			if !(o.ServiceDate < f.ServiceDate) {
				return false
			}
		default:
			if o.ServiceDate != f.ServiceDate {
				return false
			}
		}
	}
	return true
}

// BuildView filters and sorts the order set and computes aggregates over the
// filtered result. The input slice is not modified.
func BuildView(orders []models.Order, f Filters, s Sort) ([]models.Order, models.OrderStats) {
	filtered := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if f.matches(o) {
			filtered = append(filtered, o)
		}
	}

	less := lessFunc(s.Field)
	sort.SliceStable(filtered, func(i, j int) bool {
		if s.Descending {
			return less(filtered[j], filtered[i])
		}
		return less(filtered[i], filtered[j])
	})

	return filtered, ComputeStats(filtered)
}

func lessFunc(field SortField) func(a, b models.Order) bool {
	switch field {
	case SortByTotalAmount:
		return func(a, b models.Order) bool { return a.TotalAmount < b.TotalAmount }
	case SortByPendingPayment:
		return func(a, b models.Order) bool { return a.PendingPayment < b.PendingPayment }
	case SortByID:
		return func(a, b models.Order) bool { return a.ID < b.ID }
	default: // service date; "" sorts at the low end
		return func(a, b models.Order) bool { return a.ServiceDate < b.ServiceDate }
	}
}

// ComputeStats aggregates over an already-filtered set.
func ComputeStats(orders []models.Order) models.OrderStats {
	stats := models.OrderStats{TotalOrders: len(orders)}
	for _, o := range orders {
		stats.TotalPortfolioValue += o.TotalAmount
		stats.TotalPendingAmount += o.PendingPayment
		if o.Status == models.StatusUnreviewed {
			stats.PendingCount++
		}
	}
	if stats.TotalOrders > 0 {
		stats.AverageAmount = stats.TotalPortfolioValue / float64(stats.TotalOrders)
	}
	return stats
}

// AvailableProvinces lists the distinct provinces present in the full,
// unfiltered order set, sorted.
func AvailableProvinces(orders []models.Order) []string {
	return distinct(orders, func(o models.Order) string { return o.Province })
}

// AvailableCities lists the distinct cities among orders in the given
// province ("" or "all" for every province), so the city options narrow as
// the province filter narrows, independent of other active filters.
func AvailableCities(orders []models.Order, province string) []string {
	return distinct(orders, func(o models.Order) string {
		if active(province) && o.Province != province {
			return ""
		}
		return o.City
	})
}

func distinct(orders []models.Order, key func(models.Order) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, o := range orders {
		k := key(o)
		if k != "" && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
