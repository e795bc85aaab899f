package domain

import "context"

// OtpCache holds short-lived verification tokens keyed by email.
type OtpCache interface {
	PostCacheData(ctx context.Context, key string, value string) error
	GetCachedValue(ctx context.Context, key string) (string, error)
	DelCachedValue(ctx context.Context, key string) error
}
