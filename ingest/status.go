package ingest

import (
	"strings"

	"distrigestion/models"
)

// MapStatusLabel converts the free-text status column of the export into an
// order status. Matching is case-insensitive and tolerant of the label
// variants the source system emits; anything unrecognized is left for review.
func MapStatusLabel(label string) models.OrderStatus {
	s := strings.ToLower(strings.TrimSpace(label))
	switch {
	case s == "rtc":
		return models.StatusRTC
	case strings.Contains(s, "cliente avisa"):
		return models.StatusClientNotice
	case strings.Contains(s, "prep"):
		return models.StatusPreparing
	case strings.Contains(s, "agen"):
		return models.StatusScheduled
	case s == "" || strings.Contains(s, "pend"):
		return models.StatusUnreviewed
	default:
		return models.StatusUnreviewed
	}
}
