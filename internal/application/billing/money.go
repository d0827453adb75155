package billing

import "math"

// ToCents converts a decimal money amount to integer cents, rounding to the
// nearest cent. Truncation would turn 620.55 (62054.999... as a float64) into
// 62054 and misread an exact tender as a shortfall.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
