// File: decimal_test.go
// Title: Unit Tests for Decimal Arithmetic
// Description: Unit tests for Decimal values and Context arithmetic. Tests
//              cover rounding at the working precision, exact helpers, error
//              codes and context isolation between goroutines.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-16
//
// Change History:
// - 2025-01-24 v0.1.0: Initial test implementation for decimal arithmetic
// - 2026-10-16 v0.2.0: Rewritten for the context-based API

package mathx

import (
	"strings"
	"sync"
	"testing"

	pberror "github.com/msto63/pibench/foundation/core/error"
)

func TestNewFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		want    string
	}{
		{"positive integer", "123", false, "123"},
		{"negative integer", "-456", false, "-456"},
		{"positive decimal", "123.45", false, "123.45"},
		{"negative decimal", "-67.89", false, "-67.89"},
		{"zero", "0", false, "0"},
		{"exponent form", "1E-5", false, "0.00001"},
		{"surrounding spaces", "  2.5 ", false, "2.5"},
		{"invalid format", "abc", true, ""},
		{"empty string", "", true, ""},
		{"multiple decimals", "12.34.56", true, ""},
		{"infinity", "Inf", true, ""},
		{"nan", "NaN", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewFromString(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewFromString(%q) expected error, got %s", tt.input, got)
				}
				if !pberror.HasCode(err, pberror.CodeInvalidInput) {
					t.Errorf("NewFromString(%q) error code = %s, want %s", tt.input, pberror.GetCode(err), pberror.CodeInvalidInput)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFromString(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("NewFromString(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestZeroValueIsZero(t *testing.T) {
	var d Decimal
	if !d.IsZero() {
		t.Error("zero value Decimal should be zero")
	}
	if d.String() != "0" {
		t.Errorf("zero value String() = %q, want %q", d.String(), "0")
	}
	if d.Sign() != 0 {
		t.Errorf("zero value Sign() = %d, want 0", d.Sign())
	}
}

func TestNewContext_Validation(t *testing.T) {
	tests := []struct {
		precision int
		wantErr   bool
	}{
		{-1, true},
		{0, true},
		{1, false},
		{50, false},
		{MaxPrecision, false},
		{MaxPrecision + 1, true},
	}

	for _, tt := range tests {
		ctx, err := NewContext(tt.precision)
		if tt.wantErr {
			if !pberror.HasCode(err, pberror.CodeInvalidPrecision) {
				t.Errorf("NewContext(%d) error = %v, want %s", tt.precision, err, pberror.CodeInvalidPrecision)
			}
			continue
		}
		if err != nil {
			t.Errorf("NewContext(%d) unexpected error: %v", tt.precision, err)
			continue
		}
		if ctx.Precision() != tt.precision {
			t.Errorf("Precision() = %d, want %d", ctx.Precision(), tt.precision)
		}
	}
}

func TestContext_Arithmetic(t *testing.T) {
	ctx := MustNewContext(10)

	tests := []struct {
		name string
		op   func(x, y Decimal) (Decimal, error)
		x, y string
		want string
	}{
		{"add", ctx.Add, "1.5", "2.25", "3.75"},
		{"add rounds", ctx.Add, "12345678901", "0", "1.234567890E+10"},
		{"sub", ctx.Sub, "10", "0.001", "9.999"},
		{"mul", ctx.Mul, "1.1", "1.1", "1.21"},
		{"mul rounds", ctx.Mul, "3.333333333", "3", "9.999999999"},
		{"quo third", ctx.Quo, "1", "3", "0.3333333333"},
		{"quo two thirds", ctx.Quo, "2", "3", "0.6666666667"},
		{"quo exact", ctx.Quo, "1", "8", "0.125"},
		{"quo negative", ctx.Quo, "-1", "7", "-0.1428571429"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(MustNewFromString(tt.x), MustNewFromString(tt.y))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := MustNewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("%s(%s, %s) = %s, want %s", tt.name, tt.x, tt.y, got, want)
			}
		})
	}
}

func TestContext_RoundHalfEven(t *testing.T) {
	ctx := MustNewContext(3)

	tests := []struct {
		input string
		want  string
	}{
		{"1.235", "1.24"},
		{"1.245", "1.24"},
		{"1.2451", "1.25"},
		{"-1.235", "-1.24"},
		{"3.14159", "3.14"},
		{"99.95", "100"},
	}

	for _, tt := range tests {
		got, err := ctx.Round(MustNewFromString(tt.input))
		if err != nil {
			t.Fatalf("Round(%s) unexpected error: %v", tt.input, err)
		}
		if !got.Equal(MustNewFromString(tt.want)) {
			t.Errorf("Round(%s) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestContext_QuoByZero(t *testing.T) {
	ctx := MustNewContext(10)

	for _, divisor := range []string{"0", "0.000", "-0"} {
		_, err := ctx.Quo(One(), MustNewFromString(divisor))
		if err == nil {
			t.Fatalf("Quo(1, %s) expected error", divisor)
		}
		if !pberror.HasCode(err, pberror.CodeDivisionByZero) {
			t.Errorf("Quo(1, %s) code = %s, want %s", divisor, pberror.GetCode(err), pberror.CodeDivisionByZero)
		}
	}
}

func TestContext_QuoMulRoundTrip(t *testing.T) {
	ctx := MustNewContext(40)
	tolerance := Pow10(-35)

	values := []string{"3.14159", "2", "0.001", "123456.789", "-7.5"}
	for _, a := range values {
		for _, b := range values {
			x, y := MustNewFromString(a), MustNewFromString(b)
			product, err := ctx.Mul(x, y)
			if err != nil {
				t.Fatalf("Mul(%s, %s): %v", a, b, err)
			}
			back, err := ctx.Quo(product, y)
			if err != nil {
				t.Fatalf("Quo(%s, %s): %v", product, b, err)
			}
			diff, err := ctx.Sub(back, x)
			if err != nil {
				t.Fatalf("Sub: %v", err)
			}
			if !diff.Abs().LessThan(tolerance) {
				t.Errorf("(%s * %s) / %s = %s, differs from %s by %s", a, b, b, back, a, diff)
			}
		}
	}
}

func TestDecimal_ExactHelpers(t *testing.T) {
	d := MustNewFromString("-12.50")

	if got := d.Abs().String(); got != "12.50" {
		t.Errorf("Abs() = %s, want 12.50", got)
	}
	if got := d.Neg().String(); got != "12.50" {
		t.Errorf("Neg() = %s, want 12.50", got)
	}
	if d.Sign() != -1 || !d.IsNegative() {
		t.Errorf("Sign() = %d, want -1", d.Sign())
	}
	if !d.LessThan(Zero()) {
		t.Error("-12.50 should be less than 0")
	}
	if !One().GreaterThan(d) {
		t.Error("1 should be greater than -12.50")
	}
	if !d.Equal(MustNewFromString("-12.5")) {
		t.Error("-12.50 should equal -12.5")
	}
	if d.String() != "-12.50" {
		t.Errorf("String() = %s, want -12.50", d)
	}
}

func TestPow10(t *testing.T) {
	tests := []struct {
		exp  int
		want string
	}{
		{0, "1"},
		{3, "1000"},
		{-1, "0.1"},
		{-12, "0.000000000001"},
	}

	for _, tt := range tests {
		if got := Pow10(tt.exp).String(); got != tt.want {
			t.Errorf("Pow10(%d) = %s, want %s", tt.exp, got, tt.want)
		}
	}
}

func TestPow10_OutOfRange(t *testing.T) {
	for _, exp := range []int{100001, -100001, -2_000_000_000} {
		func() {
			defer func() {
				r := recover()
				err, ok := r.(error)
				if !ok || !pberror.HasCode(err, pberror.CodeInvalidInput) {
					t.Errorf("Pow10(%d) panic = %v, want %s", exp, r, pberror.CodeInvalidInput)
				}
			}()
			Pow10(exp)
		}()
	}
}

// A series at MaxPrecision works with terms down to about 10^-precision
// multiplied by full-precision factors.
func TestContext_MaxPrecisionStaysInExponentRange(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large precision arithmetic in short mode")
	}

	ctx := MustNewContext(MaxPrecision)
	factor, err := ctx.Quo(One(), NewFromInt(57121))
	if err != nil {
		t.Fatalf("Quo() unexpected error: %v", err)
	}
	term, err := ctx.Quo(Pow10(-(MaxPrecision + 6)), NewFromInt(7))
	if err != nil {
		t.Fatalf("Quo() of a tiny term unexpected error: %v", err)
	}
	if term.NumDigits() != MaxPrecision {
		t.Errorf("term has %d digits, want %d", term.NumDigits(), MaxPrecision)
	}

	product, err := ctx.Mul(term, factor)
	if err != nil {
		t.Fatalf("Mul() unexpected error: %v", err)
	}
	if _, err := ctx.Quo(product, NewFromInt(99999)); err != nil {
		t.Fatalf("Quo() of the product unexpected error: %v", err)
	}
	if _, err := ctx.Mul(term, term); err != nil {
		t.Fatalf("Mul() of two tiny terms unexpected error: %v", err)
	}

	if _, err := NewContext(MaxPrecision + 1); !pberror.HasCode(err, pberror.CodeInvalidPrecision) {
		t.Errorf("NewContext(MaxPrecision+1) error = %v, want %s", err, pberror.CodeInvalidPrecision)
	}
}

func TestSignificantDigits(t *testing.T) {
	tests := []struct {
		input string
		n     int
		want  string
	}{
		{"3.14159", 3, "314"},
		{"3.14159", 10, "314159"},
		{"-0.000123", 2, "12"},
		{"100", 3, "100"},
		{"0", 3, ""},
		{"3.14", 0, ""},
	}

	for _, tt := range tests {
		if got := MustNewFromString(tt.input).SignificantDigits(tt.n); got != tt.want {
			t.Errorf("SignificantDigits(%s, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestNumDigits(t *testing.T) {
	ctx := MustNewContext(25)
	third, err := ctx.Quo(One(), NewFromInt(3))
	if err != nil {
		t.Fatal(err)
	}
	if third.NumDigits() != 25 {
		t.Errorf("NumDigits() = %d, want 25", third.NumDigits())
	}
	if !strings.HasPrefix(third.String(), "0.3333") {
		t.Errorf("String() = %s, want plain notation", third)
	}
}

func TestContext_IndependentAcrossGoroutines(t *testing.T) {
	precisions := []int{5, 17, 50, 120}
	results := make([]Decimal, len(precisions))

	var wg sync.WaitGroup
	for i, p := range precisions {
		wg.Add(1)
		go func(i, p int) {
			defer wg.Done()
			ctx := MustNewContext(p)
			for n := 0; n < 50; n++ {
				d, err := ctx.Quo(One(), NewFromInt(7))
				if err != nil {
					t.Error(err)
					return
				}
				results[i] = d
			}
		}(i, p)
	}
	wg.Wait()

	for i, p := range precisions {
		if results[i].NumDigits() != p {
			t.Errorf("precision %d produced %d digits", p, results[i].NumDigits())
		}
	}
}
