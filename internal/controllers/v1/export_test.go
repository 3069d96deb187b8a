package v1

// ResetSummaryCache clears all cached month summaries. Each test runs on
// a fresh database, a view cached by an earlier test must not survive
// into the next one.
func ResetSummaryCache() {
	summaryCache.InvalidateAll()
}
