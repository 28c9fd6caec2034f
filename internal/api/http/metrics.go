package http

// Metrics receives counters from the HTTP layer.
type Metrics interface {
	IncNavigation(target string)
	IncRateLimited()
}

type nopMetrics struct{}

func (nopMetrics) IncNavigation(string) {}
func (nopMetrics) IncRateLimited()      {}
