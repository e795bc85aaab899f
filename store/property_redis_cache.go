package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
)

type PropertyRedisCache struct {
	cli    *redis.Client
	logger *log.Logger
	tracer trace.Tracer
}

func NewPropertyRedisCache(client *redis.Client, logger *log.Logger, tracer trace.Tracer) domain.PropertyCache {
	return &PropertyRedisCache{
		cli:    client,
		logger: logger,
		tracer: tracer,
	}
}

// Check connection function
func (pc *PropertyRedisCache) Ping() {
	val, _ := pc.cli.Ping().Result()
	pc.logger.Println(val)
}

func (pc *PropertyRedisCache) Post(ctx context.Context, property *domain.Property) error {
	ctx, span := pc.tracer.Start(ctx, "PropertyCache.Post")
	defer span.End()

	value, err := json.Marshal(property)
	if err != nil {
		return err
	}

	err = pc.cli.Set(constructKey(property.ID.Hex()), value, 30*time.Minute).Err()
	if err == nil {
		pc.logger.Println("Cache hit - set property")
	}
	return err
}

func (pc *PropertyRedisCache) Get(ctx context.Context, id string) (*domain.Property, error) {
	ctx, span := pc.tracer.Start(ctx, "PropertyCache.Get")
	defer span.End()

	value, err := pc.cli.Get(constructKey(id)).Bytes()
	if err != nil {
		span.SetStatus(codes.Error, "cache miss")
		return nil, err
	}

	property := &domain.Property{}
	if err := json.Unmarshal(value, property); err != nil {
		return nil, err
	}

	pc.logger.Println("Cache hit - get property")
	return property, nil
}

func (pc *PropertyRedisCache) Del(ctx context.Context, id string) error {
	ctx, span := pc.tracer.Start(ctx, "PropertyCache.Del")
	defer span.End()

	return pc.cli.Del(constructKey(id)).Err()
}

func constructKey(id string) string {
	return fmt.Sprintf("property:%s", id)
}
