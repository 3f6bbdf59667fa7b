package geo

import "testing"

func TestResolveProvince(t *testing.T) {
	cases := []struct {
		zip  string
		want string
	}{
		{"28001", "Madrid"},
		{"08001", "Barcelona"},
		{"41013", "Sevilla"},
		{"52006", "Melilla"},
		{"01000", "Álava"},
		{"99999", ""}, // unknown prefix
		{"9", ""},     // too short
		{"", ""},
	}
	for _, c := range cases {
		if got := ResolveProvince(c.zip); got != c.want {
			t.Errorf("ResolveProvince(%q) = %q, want %q", c.zip, got, c.want)
		}
	}
}

func TestResolveProvince_PrefixOnly(t *testing.T) {
	// Only the first two digits matter.
	if ResolveProvince("28") != "Madrid" {
		t.Errorf("two-digit input should resolve by prefix")
	}
	if ResolveProvince("28999") != ResolveProvince("28000") {
		t.Errorf("trailing digits must not affect the result")
	}
}
