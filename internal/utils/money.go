package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RoundMoney rounds a computed amount to the nearest whole currency unit.
func RoundMoney(x float64) int64 {
	return int64(math.Round(x))
}

// FormatRupiah renders integer amount with thousand separators.
func FormatRupiah(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%sRp%s", sign, formatThousand(amount))
}

func formatThousand(n int64) string {
	if n == 0 {
		return "0"
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte('.')
		}
		out.WriteRune(c)
	}
	return out.String()
}
