// Package ingest decodes the fixed-column CSV batches exported by the
// external inventory system into order records.
package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"distrigestion/geo"
	"distrigestion/models"
)

// Decode parses a CSV batch into orders. It never fails: malformed fields
// fall back to empty/zero defaults, and input without data rows yields an
// empty slice, which callers must report as "no valid data" rather than
// import silently.
//
// The first row is a header and is discarded. The delimiter is `;` when the
// text contains one anywhere, `,` otherwise.
func Decode(text string) []models.Order {
	delimiter := ","
	if strings.Contains(text, ";") {
		delimiter = ";"
	}

	lines := strings.Split(text, "\n")
	if len(lines) <= 1 {
		return nil
	}

	var orders []models.Order
	for i := 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		cols := strings.Split(line, delimiter)
		for j, v := range cols {
			cols[j] = unquote(strings.TrimSpace(v))
		}

		zip := field(cols, colZipCode)
		if len(zip) == 4 {
			zip = "0" + zip
		}

		id := field(cols, colID)
		if id == "" {
			id = fmt.Sprintf("ID-%d", i)
		}

		orders = append(orders, models.Order{
			ID:             id,
			Status:         MapStatusLabel(field(cols, colStatus)),
			ServiceDate:    toISODate(field(cols, colServiceDate)),
			TotalAmount:    parseAmount(field(cols, colTotalAmount)),
			PendingPayment: parseAmount(field(cols, colPendingPay)),
			ZipCode:        zip,
			Province:       geo.ResolveProvince(zip),
			City:           field(cols, colCity),
			Notes:          field(cols, colNotes),
			Address:        field(cols, colAddress),
			Phone1:         field(cols, colPhone1),
			Phone2:         field(cols, colPhone2),
		})
	}
	return orders
}

func field(cols []string, idx int) string {
	if idx < len(cols) {
		return cols[idx]
	}
	return ""
}

func unquote(v string) string {
	v = strings.TrimPrefix(v, `"`)
	return strings.TrimSuffix(v, `"`)
}

// toISODate converts DD/MM/YYYY to YYYY-MM-DD. Anything that is not three
// slash-separated parts decodes to "".
func toISODate(dateStr string) string {
	if dateStr == "" {
		return ""
	}
	parts := strings.Split(dateStr, "/")
	if len(parts) != 3 {
		return ""
	}
	day, month, year := parts[0], parts[1], parts[2]
	if len(day) == 1 {
		day = "0" + day
	}
	if len(month) == 1 {
		month = "0" + month
	}
	return year + "-" + month + "-" + day
}

// parseAmount reads a Spanish-locale decimal: "." groups thousands, ","
// separates decimals ("1.234,56" -> 1234.56). Parse failure means 0.
func parseAmount(v string) float64 {
	if v == "" {
		return 0
	}
	v = strings.ReplaceAll(v, ".", "")
	v = strings.ReplaceAll(v, ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}
