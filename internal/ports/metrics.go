package ports

// MetricsRecorder records application counters
type MetricsRecorder interface {
	CompatibilityChecked(outcome string)
	ThemeStep(operation, step, result string)
	WebhookReceived(topic, status string)
}

// NopMetrics discards everything
type NopMetrics struct{}

func (NopMetrics) CompatibilityChecked(string) {}
func (NopMetrics) ThemeStep(string, string, string) {}
func (NopMetrics) WebhookReceived(string, string) {}
