package shared

// Logger receives structured log entries from background simulation processes
// (travel legs, construction, mining, combat ticks).
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Log(level, message string, metadata map[string]interface{}) {}
