package utils

// Percentage returns received/total*100 clamped to [0,100]. Unknown totals
// report 0.
func Percentage(received, total int64) float64 {
	if total <= 0 || received <= 0 {
		return 0
	}
	pct := float64(received) / float64(total) * 100
	if pct > 100 {
		return 100
	}
	return pct
}
