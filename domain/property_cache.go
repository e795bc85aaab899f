package domain

import "context"

// PropertyCache is a read-through cache for property details. Misses and
// cache failures are never fatal to the caller.
type PropertyCache interface {
	Post(ctx context.Context, property *Property) error
	Get(ctx context.Context, id string) (*Property, error)
	Del(ctx context.Context, id string) error
}
