package sender

import "strconv"

func summaryMsg(delivered bool) string {
	if delivered {
		return "sent"
	}
	return "dropped"
}

// pct formats a percentage with one decimal, e.g. "12.5%".
func pct(v float32) string {
	return strconv.FormatFloat(float64(v), 'f', 1, 32) + "%"
}
