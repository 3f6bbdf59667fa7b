package ingest

import (
	"strings"
	"testing"

	"distrigestion/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// row builds a 40-column data line with the given cells set.
func row(delim string, cells map[int]string) string {
	cols := make([]string, 40)
	for i, v := range cells {
		cols[i] = v
	}
	return strings.Join(cols, delim)
}

func header(delim string) string {
	cols := make([]string, 40)
	for i := range cols {
		cols[i] = "COL"
	}
	return strings.Join(cols, delim)
}

func TestDecode_FixedColumns(t *testing.T) {
	text := header(",") + "\n" + row(",", map[int]string{
		colID:          "25092535",
		colStatus:      "Cliente Avisa",
		colServiceDate: "01/12/2025",
		colTotalAmount: "200,00",
		colPendingPay:  "150,00",
		colZipCode:     "28001",
		colCity:        "Madrid",
		colNotes:       "Llamar antes",
		colAddress:     "Calle Ejemplo 1",
		colPhone1:      "600000001",
		colPhone2:      "910000001",
	})

	orders := Decode(text)
	require.Len(t, orders, 1)

	o := orders[0]
	assert.Equal(t, "25092535", o.ID)
	assert.Equal(t, models.StatusClientNotice, o.Status)
	assert.Equal(t, "2025-12-01", o.ServiceDate)
	assert.Equal(t, 200.0, o.TotalAmount)
	assert.Equal(t, 150.0, o.PendingPayment)
	assert.Equal(t, "28001", o.ZipCode)
	assert.Equal(t, "Madrid", o.Province)
	assert.Equal(t, "Madrid", o.City)
	assert.Equal(t, "Llamar antes", o.Notes)
	assert.Equal(t, "Calle Ejemplo 1", o.Address)
	assert.Equal(t, "600000001", o.Phone1)
	assert.Equal(t, "910000001", o.Phone2)
}

func TestDecode_RowCountMatchesNonBlankLines(t *testing.T) {
	lines := []string{header(",")}
	for i := 0; i < 5; i++ {
		lines = append(lines, row(",", map[int]string{colID: "A" + string(rune('0'+i))}))
	}
	// Blank lines interleaved must be skipped, not decoded.
	text := lines[0] + "\n" + lines[1] + "\n\n" + lines[2] + "\n" + lines[3] + "\n  \n" + lines[4] + "\n" + lines[5] + "\n"

	orders := Decode(text)
	require.Len(t, orders, 5)
	for i, o := range orders {
		assert.Equal(t, "A"+string(rune('0'+i)), o.ID, "orders must come back in input order")
	}
}

func TestDecode_SemicolonAutoDetect(t *testing.T) {
	text := header(";") + "\n" + row(";", map[int]string{colID: "X1", colCity: "Getafe"})
	orders := Decode(text)
	require.Len(t, orders, 1)
	assert.Equal(t, "X1", orders[0].ID)
	assert.Equal(t, "Getafe", orders[0].City)
}

func TestDecode_QuotedFieldsAndThousandsSeparator(t *testing.T) {
	text := header(",") + "\n" + row(",", map[int]string{
		colID:          `"001"`,
		colStatus:      "RTC",
		colTotalAmount: `"1.234,56"`,
	})
	orders := Decode(text)
	require.Len(t, orders, 1)
	assert.Equal(t, "001", orders[0].ID)
	assert.Equal(t, models.StatusRTC, orders[0].Status)
	assert.Equal(t, 1234.56, orders[0].TotalAmount)
}

func TestDecode_ZipPadding(t *testing.T) {
	text := header(",") + "\n" + row(",", map[int]string{colID: "Z1", colZipCode: "8001"})
	orders := Decode(text)
	require.Len(t, orders, 1)
	assert.Equal(t, "08001", orders[0].ZipCode)
	assert.Equal(t, "Barcelona", orders[0].Province, "province resolves from the padded zip")
}

func TestDecode_MalformedFieldsFallBack(t *testing.T) {
	text := header(",") + "\n" + row(",", map[int]string{
		colID:          "M1",
		colServiceDate: "pronto",
		colTotalAmount: "n/a",
	})
	orders := Decode(text)
	require.Len(t, orders, 1)
	assert.Equal(t, "", orders[0].ServiceDate)
	assert.Equal(t, 0.0, orders[0].TotalAmount)
	assert.Equal(t, models.StatusUnreviewed, orders[0].Status)
}

func TestDecode_MissingIDGetsSynthetic(t *testing.T) {
	text := header(",") + "\n" + row(",", map[int]string{colCity: "Lugo"})
	orders := Decode(text)
	require.Len(t, orders, 1)
	assert.Equal(t, "ID-1", orders[0].ID)
}

func TestDecode_NoDataRows(t *testing.T) {
	assert.Empty(t, Decode(""))
	assert.Empty(t, Decode(header(",")))
	assert.Empty(t, Decode(header(",")+"\n\n \n"))
}

func TestMapStatusLabel(t *testing.T) {
	cases := []struct {
		label string
		want  models.OrderStatus
	}{
		{"RTC", models.StatusRTC},
		{"rtc", models.StatusRTC},
		{"Cliente Avisa", models.StatusClientNotice},
		{"CLIENTE AVISA 9:00", models.StatusClientNotice},
		{"En preparacion", models.StatusPreparing},
		{"Prep.", models.StatusPreparing},
		{"Agendado", models.StatusScheduled},
		{"agenda martes", models.StatusScheduled},
		{"Pendiente", models.StatusUnreviewed},
		{"", models.StatusUnreviewed},
		{"???", models.StatusUnreviewed},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, MapStatusLabel(c.label), "label %q", c.label)
	}
}
