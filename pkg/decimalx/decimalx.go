package decimalx

import (
	"math"

	"github.com/shopspring/decimal"
)

func MustFromString(s string) decimal.Decimal {
	f, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// Mean returns the arithmetic mean, or zero for an empty slice.
func Mean(ds []decimal.Decimal) decimal.Decimal {
	if len(ds) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, d := range ds {
		sum = sum.Add(d)
	}
	return sum.Div(decimal.NewFromInt(int64(len(ds))))
}

// SampleStdDev returns the Bessel-corrected sample standard deviation.
// Fewer than two samples have no spread, so the result is zero.
func SampleStdDev(ds []decimal.Decimal) decimal.Decimal {
	n := len(ds)
	if n < 2 {
		return decimal.Zero
	}
	mean := Mean(ds)
	variance := decimal.Zero
	for _, d := range ds {
		diff := d.Sub(mean)
		variance = variance.Add(diff.Mul(diff))
	}
	variance = variance.Div(decimal.NewFromInt(int64(n - 1)))
	return decimal.NewFromFloat(math.Sqrt(variance.InexactFloat64()))
}
