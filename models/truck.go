package models

import (
	"sort"
	"strings"
	"time"
)

// Truck is a delivery vehicle. Number is the human dispatch label ("C-2"),
// Name is the driver.
type Truck struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Number    string    `json:"number" gorm:"not null"`
	Name      string    `json:"name" gorm:"not null"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// Store maps a short code carried on orders to a display name. Orders whose
// code has no matching row degrade to showing the raw code.
type Store struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// SortTrucksByNumber orders trucks by their dispatch label in natural order,
// so "C-2" comes before "C-10".
func SortTrucksByNumber(trucks []Truck) {
	sort.SliceStable(trucks, func(i, j int) bool {
		return naturalLess(trucks[i].Number, trucks[j].Number)
	})
}

// naturalLess compares strings treating digit runs as numbers and letters
// case-insensitively.
func naturalLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for len(a) > 0 && len(b) > 0 {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := leadingNumber(a)
			nb, rb := leadingNumber(b)
			if na != nb {
				return na < nb
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return a[0] < b[0]
		}
		a, b = a[1:], b[1:]
	}
	return len(a) < len(b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func leadingNumber(s string) (int, string) {
	n := 0
	i := 0
	for i < len(s) && isDigit(s[i]) {
		n = n*10 + int(s[i]-'0')
		i++
	}
	return n, s[i:]
}
