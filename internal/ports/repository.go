package ports

import (
	"context"
	"time"

	"github.com/fixora/insights/internal/domain"
)

// RequestSource loads the full service request dataset
type RequestSource interface {
	// Load returns every record, already normalised
	Load(ctx context.Context) ([]domain.ServiceRequest, error)

	// Name identifies the source in logs and the dataset summary
	Name() string
}

// RequestStore persists service requests for later loading
type RequestStore interface {
	// SaveAll replaces the stored dataset with records
	SaveAll(ctx context.Context, records []domain.ServiceRequest) error

	// Count returns the number of stored records
	Count(ctx context.Context) (int, error)
}

// SnapshotCache keeps a serialised copy of a loaded dataset
type SnapshotCache interface {
	// Get returns the cached records and whether the key was present
	Get(ctx context.Context, key string) ([]domain.ServiceRequest, bool, error)

	// Set stores records under key for ttl
	Set(ctx context.Context, key string, records []domain.ServiceRequest, ttl time.Duration) error
}

// Fingerprinter is implemented by sources that can cheaply report when their
// contents change
type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// Refresher is implemented by sources that serve a stored copy; Refresh reads
// the underlying data and replaces that copy
type Refresher interface {
	Refresh(ctx context.Context) ([]domain.ServiceRequest, error)
}
