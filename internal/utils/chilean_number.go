package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseChileanNumber reads numbers written with "." for thousands and ","
// for decimals: "20.939,49" is 20939.49.
func ParseChileanNumber(s string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	normalized = strings.Replace(normalized, ",", ".", 1)
	n, err := strconv.ParseFloat(normalized, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("invalid chilean number %q", s)
	}
	return n, nil
}

// FormatCLP renders whole pesos: 1234567 is "$1.234.567".
func FormatCLP(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	return sign + "$" + groupThousands(strconv.FormatInt(n, 10))
}

// FormatUF renders two decimals: 20939.49 is "20.939,49".
func FormatUF(n float64) string {
	s := strconv.FormatFloat(math.Abs(n), 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")
	out := groupThousands(intPart) + "," + frac
	if n < 0 && out != "0,00" {
		out = "-" + out
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
