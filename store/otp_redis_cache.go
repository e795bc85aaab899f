package store

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
)

// OTP tokens expire after ten minutes.
const otpTTL = 10 * time.Minute

type OtpRedisCache struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewOtpRedisCache(client *redis.Client, tracer trace.Tracer) domain.OtpCache {
	return &OtpRedisCache{
		client: client,
		tracer: tracer,
	}
}

func (a *OtpRedisCache) PostCacheData(ctx context.Context, key string, value string) error {
	ctx, span := a.tracer.Start(ctx, "OtpRedisCache.PostCacheData")
	defer span.End()

	result := a.client.Set(key, value, otpTTL)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error posting cached value")
		log.Printf("redis set error: %s", result.Err())
		return result.Err()
	}

	return nil
}

func (a *OtpRedisCache) GetCachedValue(ctx context.Context, key string) (string, error) {
	ctx, span := a.tracer.Start(ctx, "OtpRedisCache.GetCachedValue")
	defer span.End()

	result := a.client.Get(key)
	token, err := result.Result()
	if err != nil {
		span.SetStatus(codes.Error, "Error getting cached value")
		log.Println(err)
		return "", err
	}
	return token, nil
}

func (a *OtpRedisCache) DelCachedValue(ctx context.Context, key string) error {
	ctx, span := a.tracer.Start(ctx, "OtpRedisCache.DelCachedValue")
	defer span.End()

	result := a.client.Del(key)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error deleting cached value")
		log.Println(result.Err())
		return result.Err()
	}

	return nil
}
