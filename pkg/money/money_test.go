package money_test

import (
	"testing"

	"github.com/rewardly/cbs/pkg/money"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1000.00", want: "1000.00"},
		{in: " 0.01 ", want: "0.01"},
		{in: "300", want: "300.00"},
		{in: "0", wantErr: true},
		{in: "-5.00", wantErr: true},
		{in: "1.005", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := money.ParseAmount(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q): expected error, got %s", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got.StringFixed(money.Scale) != tt.want {
			t.Errorf("ParseAmount(%q) = %s, want %s", tt.in, got.StringFixed(money.Scale), tt.want)
		}
	}
}

func TestValidCurrency(t *testing.T) {
	for _, code := range []string{"AED", "USD", "EUR"} {
		if !money.ValidCurrency(code) {
			t.Errorf("expected %q to be valid", code)
		}
	}
	for _, code := range []string{"", "AE", "AEDX", "aed", "A3D"} {
		if money.ValidCurrency(code) {
			t.Errorf("expected %q to be invalid", code)
		}
	}
}
