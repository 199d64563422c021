package ports

// Fingerprinter derives deterministic cache keys from a call's identity.
//
//go:generate mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type Fingerprinter interface {
	// Fingerprint returns a fixed-length hex key for operation and args.
	// Keyword-style arguments passed as domain.Named hash identically
	// regardless of insertion order.
	Fingerprint(operation string, args ...any) (string, error)
}
