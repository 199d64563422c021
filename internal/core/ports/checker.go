package ports

// Checker builds health checks for source endpoints.
//
//go:generate mockgen -source=checker.go -destination=mocks/mock_checker.go -package=mocks
type Checker interface {
	// Check returns a check that probes url.
	Check(url string) CheckFunc
}
