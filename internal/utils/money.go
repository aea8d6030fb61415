package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney renders an amount with its currency tag using es-AR
// conventions: thousands separated by '.', decimals by ','. Amounts are
// display-formatted only; no conversion between currency tags happens
// anywhere in the app.
func FormatMoney(amount float64, currency string) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := int64(amount)
	cents := int64((amount-float64(whole))*100 + 0.5)
	if cents >= 100 {
		whole++
		cents -= 100
	}
	cur := strings.TrimSpace(currency)
	if cur == "" {
		cur = "ARS"
	}
	return fmt.Sprintf("%s %s%s,%02d", cur, sign, formatThousand(whole), cents)
}

func formatThousand(n int64) string {
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
