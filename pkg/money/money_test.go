package money

import "testing"

func TestFormatCOP(t *testing.T) {
	t.Parallel()

	cases := []struct {
		amount int64
		want   string
	}{
		{0, "$0"},
		{999, "$999"},
		{12000, "$12.000"},
		{150000, "$150.000"},
		{1234567, "$1.234.567"},
	}

	for _, tc := range cases {
		if got := FormatCOP(tc.amount); got != tc.want {
			t.Errorf("FormatCOP(%d) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}
