package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
)

const LIKE_COLLECTION = "property_likes"

type LikeMongoDBStore struct {
	likes  *mongo.Collection
	tracer trace.Tracer
}

func NewLikeMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.LikeStore {
	likes := client.Database(DATABASE).Collection(LIKE_COLLECTION)
	return &LikeMongoDBStore{
		likes:  likes,
		tracer: tracer,
	}
}

func (store *LikeMongoDBStore) Insert(ctx context.Context, like *domain.PropertyLike) (*domain.PropertyLike, error) {
	ctx, span := store.tracer.Start(ctx, "LikeStore.Insert")
	defer span.End()

	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	result, err := store.likes.InsertOne(ctx, like)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	like.ID = result.InsertedID.(primitive.ObjectID)
	return like, nil
}

func (store *LikeMongoDBStore) Exists(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	ctx, span := store.tracer.Start(ctx, "LikeStore.Exists")
	defer span.End()

	count, err := store.likes.CountDocuments(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (store *LikeMongoDBStore) Remove(ctx context.Context, userID, propertyID primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "LikeStore.Remove")
	defer span.End()

	_, err := store.likes.DeleteMany(ctx, bson.M{"userId": userID, "propertyId": propertyID})
	return err
}

func (store *LikeMongoDBStore) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.PropertyLike, error) {
	ctx, span := store.tracer.Start(ctx, "LikeStore.GetByUser")
	defer span.End()

	return store.filter(ctx, bson.M{"userId": userID})
}

func (store *LikeMongoDBStore) GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.PropertyLike, error) {
	ctx, span := store.tracer.Start(ctx, "LikeStore.GetBySeller")
	defer span.End()

	return store.filter(ctx, bson.M{"sellerId": sellerID})
}

func (store *LikeMongoDBStore) DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "LikeStore.DeleteByProperty")
	defer span.End()

	_, err := store.likes.DeleteMany(ctx, bson.M{"propertyId": propertyID})
	return err
}

func (store *LikeMongoDBStore) filter(ctx context.Context, filter interface{}) (likes []*domain.PropertyLike, err error) {
	cursor, err := store.likes.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var like domain.PropertyLike
		err = cursor.Decode(&like)
		if err != nil {
			return
		}
		likes = append(likes, &like)
	}
	err = cursor.Err()
	return
}
