package core

import "testing"

func TestComputeTrend(t *testing.T) {
	cases := []struct {
		current  string
		previous string
		percent  string
		isUp     bool
	}{
		{"110", "100", "+10.0%", true},
		{"90", "100", "-10.0%", false},
		{"100", "100", "+0.0%", true},
		{"50", "0", "+100%", true},
		{"0", "0", "0%", true},
		{"0", "80", "-100.0%", false},
		{"250", "200", "+25.0%", true},
	}
	for _, tc := range cases {
		got := ComputeTrend(dec(tc.current), dec(tc.previous))
		if got.Percent != tc.percent || got.IsUp != tc.isUp {
			t.Fatalf("ComputeTrend(%s, %s) = %+v, want {%s %v}",
				tc.current, tc.previous, got, tc.percent, tc.isUp)
		}
	}
}

// The engine reports the raw direction; consumers flip the semantics for
// expense-like metrics. A falling expense must therefore read IsUp=false.
func TestComputeTrendRawPolarity(t *testing.T) {
	got := ComputeTrend(dec("80"), dec("100"))
	if got.IsUp {
		t.Fatal("decreasing metric must report IsUp=false even when favorable")
	}
}
