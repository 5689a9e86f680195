package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"12.34", "12.34", true},
		{"12,34", "12.34", true},
		{" 2.50 ", "2.5", true},
		{"0", "0", true},
		{"-1", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || !got.Equal(dec(tc.out)) {
				t.Fatalf("ParseAmount(%q) = %v, %v; want %s", tc.in, got, err, tc.out)
			}
		} else if err == nil {
			t.Fatalf("ParseAmount(%q) expected error", tc.in)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0,00"},
		{"12.3", "12,30"},
		{"1234.5", "1.234,50"},
		{"1234567.89", "1.234.567,89"},
		{"-950", "-950,00"},
	}
	for _, tc := range cases {
		if got := FormatAmount(dec(tc.in)); got != tc.want {
			t.Fatalf("FormatAmount(%s) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if got := FormatCurrency(dec("10")); got != "R$ 10,00" {
		t.Fatalf("FormatCurrency = %q", got)
	}
}
