package advisor

import (
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatPercent renders a fraction as a one-decimal percentage, 0.064 -> "6.4%".
func FormatPercent(fraction float64) string {
	return decimal.NewFromFloat(fraction).Shift(2).StringFixed(1) + "%"
}

// FormatUSD renders an amount as whole US dollars with grouping, "$123,457".
func FormatUSD(amount float64) string {
	cents := int64(math.RoundToEven(amount)) * 100
	return strings.TrimSuffix(money.New(cents, "USD").Display(), ".00")
}
