package inventory

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// groupThousands formats n with a comma every three digits.
// Example: 1234567 => "1,234,567"; -1500 => "-1,500".
func groupThousands(n int) string {
	neg := n < 0
	s := strconv.FormatInt(int64(n), 10)
	if neg {
		s = s[1:]
	}

	if len(s) > 3 {
		var buf []byte
		count := 0
		for i := len(s) - 1; i >= 0; i-- {
			buf = append(buf, s[i])
			count++
			if count == 3 && i != 0 {
				buf = append(buf, ',')
				count = 0
			}
		}
		for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
			buf[i], buf[j] = buf[j], buf[i]
		}
		s = string(buf)
	}

	if neg {
		return "-" + s
	}
	return s
}

// formatMoney prefixes the grouped amount with the currency symbol; the
// sign goes in front of the symbol.
func formatMoney(symbol string, amount int) string {
	if amount < 0 {
		return "-" + symbol + groupThousands(-amount)
	}
	return symbol + groupThousands(amount)
}

// formatFixed rounds half away from zero to the given number of places.
// Infinite values print as "inf" or "-inf".
func formatFixed(v float64, places int32) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "n/a"
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// discountedPrice applies rate to price in float64 and truncates toward
// zero, so 5500 at 30% off is 3849, not 3850.
func discountedPrice(price int, rate float64) int {
	return int(float64(price) * (1 - rate))
}
