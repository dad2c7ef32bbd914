package main

import (
	"math"

	"github.com/dustin/go-humanize"

	"github.com/heartmarshall/langnav/internal/query"
)

// formatValue renders a field value for a table cell.
func formatValue(v query.Value) string {
	switch v.Kind() {
	case query.KindText:
		return v.AsText()
	case query.KindNumber:
		n := v.AsNumber()
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return humanize.Comma(int64(n))
		}
		return humanize.CommafWithDigits(n, 2)
	}
	return "-"
}

func formatCount(n int) string {
	return humanize.Comma(int64(n))
}
