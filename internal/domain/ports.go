package domain

import "context"

// Gateway is the narrow persistence contract shared by bookings, event
// registrations and payments. Create stamps the creation timestamp and the
// default status and returns an opaque id. UpdateStatus must refuse to move
// a record out of a terminal cancelled state.
type Gateway[T any] interface {
	Create(ctx context.Context, rec T) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]T, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

type CatalogRepository interface {
	// Write paths (seeder)
	UpsertDestination(ctx context.Context, d Destination) error
	UpsertEvent(ctx context.Context, e Event) error

	// Read paths
	GetDestination(ctx context.Context, id int64) (Destination, error)
	GetEvent(ctx context.Context, id int64) (Event, error)
	ListDestinations(ctx context.Context) ([]Destination, error)
	ListEvents(ctx context.Context) ([]Event, error)
}

type CatalogFeed interface {
	FetchDestinations(ctx context.Context) ([]Destination, error)
	FetchEvents(ctx context.Context) ([]Event, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notifier surfaces submission outcomes to the user. Implementations must
// not block the caller.
type Notifier interface {
	Notify(kind NoticeKind, message string)
}
