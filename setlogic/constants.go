package setlogic

const (
	DefaultLoadConcurrency = 4
	// insertBatchLog is how often Put reports progress on large sets
	insertBatchLog = 10000
)
