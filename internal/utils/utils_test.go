package utils

import (
	"math"
	"testing"
)

func TestFloatToWire(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		in      float64
		want    string
		wantErr bool
	}{
		{name: "integer", in: 1670, want: "1670"},
		{name: "trailing zeros trimmed", in: 1670.10, want: "1670.1"},
		{name: "all eight decimals", in: 0.12345678, want: "0.12345678"},
		{name: "smallest tick", in: 0.00000001, want: "0.00000001"},
		{name: "negative", in: -0.0147, want: "-0.0147"},
		{name: "negative zero normalized", in: math.Copysign(0, -1), want: "0"},
		{name: "zero", in: 0, want: "0"},
		{name: "large with decimals", in: 98765432.1234, want: "98765432.1234"},
		{name: "needs more than eight decimals", in: 2.000000000001, wantErr: true},
		{name: "NaN", in: math.NaN(), wantErr: true},
		{name: "positive infinity", in: math.Inf(1), wantErr: true},
		{name: "negative infinity", in: math.Inf(-1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FloatToWire(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FloatToWire(%v) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FloatToWire(%v): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("FloatToWire(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloatToInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		x       float64
		power   int64
		want    int64
		wantErr bool
	}{
		{name: "two decimals", x: 16.7, power: 2, want: 1670},
		{name: "six decimals", x: 2.5, power: 6, want: 2500000},
		{name: "negative", x: -2.5, power: 6, want: -2500000},
		{name: "no scaling", x: 21, power: 0, want: 21},
		{name: "residual fraction rejected", x: 0.1234567, power: 6, wantErr: true},
		// int64(NaN) is MinInt64, and the rounding guard never fires on
		// NaN, so these must be rejected up front.
		{name: "NaN rejected", x: math.NaN(), power: 6, wantErr: true},
		{name: "positive infinity rejected", x: math.Inf(1), power: 6, wantErr: true},
		{name: "negative infinity rejected", x: math.Inf(-1), power: 6, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FloatToInt(tt.x, tt.power)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FloatToInt(%v, %d) = %d, want error", tt.x, tt.power, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FloatToInt(%v, %d): %v", tt.x, tt.power, err)
			}
			if got != tt.want {
				t.Fatalf("FloatToInt(%v, %d) = %d, want %d", tt.x, tt.power, got, tt.want)
			}
		})
	}
}

func TestFloatToUsdInt(t *testing.T) {
	t.Parallel()

	got, err := FloatToUsdInt(1.5)
	if err != nil {
		t.Fatalf("FloatToUsdInt(1.5): %v", err)
	}
	if got != 1_500_000 {
		t.Fatalf("FloatToUsdInt(1.5) = %d, want 1500000", got)
	}

	got, err = FloatToUsdInt(-0.123456)
	if err != nil {
		t.Fatalf("FloatToUsdInt(-0.123456): %v", err)
	}
	if got != -123_456 {
		t.Fatalf("FloatToUsdInt(-0.123456) = %d, want -123456", got)
	}

	// Sub-microdollar amounts cannot be represented.
	if _, err := FloatToUsdInt(0.0000015); err == nil {
		t.Fatal("FloatToUsdInt(0.0000015) expected error")
	}
}

func TestStringToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "100", want: 100},
		{in: "12.5", want: 12.5},
		{in: "-2.5", want: -2.5},
		{in: "1e-8", want: 1e-8},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2.3", wantErr: true},
		// strconv parses these, but they are never valid amounts.
		{in: "NaN", wantErr: true},
		{in: "nan", wantErr: true},
		{in: "Inf", wantErr: true},
		{in: "+Inf", wantErr: true},
		{in: "-Inf", wantErr: true},
		{in: "Infinity", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := StringToFloat(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("StringToFloat(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("StringToFloat(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Fatalf("StringToFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
