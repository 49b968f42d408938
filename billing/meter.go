package billing

// UsageFromReadings derives billable usage from two meter readings.
// A meter swap or correction can make the current reading lower than the
// previous one; that delta is clamped to zero, never billed as negative.
func UsageFromReadings(previous, current float64) float64 {
	usage := sanitize(current) - sanitize(previous)
	if usage < 0 {
		return 0
	}
	return usage
}
