package slack

// NewLimitWriter exposes the download size limiter to tests
func NewLimitWriter(limit int) *limitWriter {
	return &limitWriter{limit: limit}
}
