package models

import "testing"

func TestSortTrucksByNumber(t *testing.T) {
	trucks := []Truck{
		{ID: "1", Number: "C-10"},
		{ID: "2", Number: "C-2"},
		{ID: "3", Number: "c-1"},
		{ID: "4", Number: "C-21"},
		{ID: "5", Number: "C-3"},
	}

	SortTrucksByNumber(trucks)

	want := []string{"c-1", "C-2", "C-3", "C-10", "C-21"}
	for i, w := range want {
		if trucks[i].Number != w {
			t.Fatalf("position %d: got %q, want %q", i, trucks[i].Number, w)
		}
	}
}

func TestNaturalLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"C-2", "C-10", true},
		{"C-10", "C-2", false},
		{"C-2", "C-2", false},
		{"A-5", "B-1", true},
		{"C", "C-1", true},
		{"c-2", "C-10", true},
	}
	for _, tc := range cases {
		if got := naturalLess(tc.a, tc.b); got != tc.want {
			t.Errorf("naturalLess(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}
