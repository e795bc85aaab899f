package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
	"realestate_service/errors"
)

const CONTACT_COLLECTION = "contact_requests"

type ContactMongoDBStore struct {
	requests *mongo.Collection
	tracer   trace.Tracer
}

func NewContactMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.ContactRequestStore {
	requests := client.Database(DATABASE).Collection(CONTACT_COLLECTION)
	return &ContactMongoDBStore{
		requests: requests,
		tracer:   tracer,
	}
}

func (store *ContactMongoDBStore) Insert(ctx context.Context, request *domain.ContactRequest) (*domain.ContactRequest, error) {
	ctx, span := store.tracer.Start(ctx, "ContactStore.Insert")
	defer span.End()

	request.ID = primitive.NewObjectID()
	request.CreatedAt = time.Now()
	result, err := store.requests.InsertOne(ctx, request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	request.ID = result.InsertedID.(primitive.ObjectID)
	return request, nil
}

func (store *ContactMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.ContactRequest, error) {
	ctx, span := store.tracer.Start(ctx, "ContactStore.Get")
	defer span.End()

	result := store.requests.FindOne(ctx, bson.M{"_id": id})
	var request domain.ContactRequest
	if err := result.Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (store *ContactMongoDBStore) GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.ContactRequest, error) {
	ctx, span := store.tracer.Start(ctx, "ContactStore.GetBySeller")
	defer span.End()

	return store.filter(ctx, bson.M{"sellerId": sellerID})
}

func (store *ContactMongoDBStore) GetByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]*domain.ContactRequest, error) {
	ctx, span := store.tracer.Start(ctx, "ContactStore.GetByBuyer")
	defer span.End()

	return store.filter(ctx, bson.M{"buyerId": buyerID})
}

func (store *ContactMongoDBStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.RequestStatus) (*domain.ContactRequest, error) {
	ctx, span := store.tracer.Start(ctx, "ContactStore.UpdateStatus")
	defer span.End()

	change := bson.M{"$set": bson.M{"request_status": status}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := store.requests.FindOneAndUpdate(ctx, bson.M{"_id": id}, change, opts)

	var request domain.ContactRequest
	if err := result.Decode(&request); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.ErrRequestNotFound
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &request, nil
}

func (store *ContactMongoDBStore) DeleteByProperty(ctx context.Context, propertyID primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "ContactStore.DeleteByProperty")
	defer span.End()

	_, err := store.requests.DeleteMany(ctx, bson.M{"propertyId": propertyID})
	return err
}

func (store *ContactMongoDBStore) filter(ctx context.Context, filter interface{}) (requests []*domain.ContactRequest, err error) {
	cursor, err := store.requests.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var request domain.ContactRequest
		err = cursor.Decode(&request)
		if err != nil {
			return
		}
		requests = append(requests, &request)
	}
	err = cursor.Err()
	return
}
