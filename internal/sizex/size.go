// Package sizex formats byte counts for user-facing output.
package sizex

import "fmt"

var units = []string{"B", "KB", "MB", "GB"}

// FormatSize renders size in the largest unit among B, KB, MB and GB for
// which the value stays below 1024 (values of a terabyte and beyond stay in
// GB), with two-decimal precision.
func FormatSize(size int64) string {
	v := float64(size)
	for _, unit := range units[:len(units)-1] {
		if v < 1024 {
			return fmt.Sprintf("%.2f %s", v, unit)
		}
		v /= 1024
	}
	return fmt.Sprintf("%.2f GB", v)
}
