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

const (
	DATABASE            = "realestate"
	PROPERTY_COLLECTION = "properties"
)

type PropertyMongoDBStore struct {
	properties *mongo.Collection
	tracer     trace.Tracer
}

func NewPropertyMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.PropertyStore {
	properties := client.Database(DATABASE).Collection(PROPERTY_COLLECTION)
	return &PropertyMongoDBStore{
		properties: properties,
		tracer:     tracer,
	}
}

func (store *PropertyMongoDBStore) Insert(ctx context.Context, property *domain.Property) (*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.Insert")
	defer span.End()

	property.ID = primitive.NewObjectID()
	property.Status = domain.StatusPending
	property.RejectionReason = ""
	property.CreatedAt = time.Now()

	result, err := store.properties.InsertOne(ctx, property)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	property.ID = result.InsertedID.(primitive.ObjectID)
	return property, nil
}

func (store *PropertyMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.Get")
	defer span.End()

	filter := bson.M{"_id": id}
	return store.filterOne(ctx, filter)
}

func (store *PropertyMongoDBStore) GetAll(ctx context.Context) ([]*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.GetAll")
	defer span.End()

	filter := bson.D{{}}
	return store.filter(ctx, filter)
}

func (store *PropertyMongoDBStore) GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.GetBySeller")
	defer span.End()

	filter := bson.M{"sellerId": sellerID}
	return store.filter(ctx, filter)
}

func (store *PropertyMongoDBStore) GetByStatus(ctx context.Context, status domain.PropertyStatus) ([]*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.GetByStatus")
	defer span.End()

	filter := bson.M{"property_status": status}
	return store.filter(ctx, filter)
}

func (store *PropertyMongoDBStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.ExistsByTitle")
	defer span.End()

	count, err := store.properties.CountDocuments(ctx, bson.M{"title": title})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (store *PropertyMongoDBStore) UpdateFields(ctx context.Context, id primitive.ObjectID, update *domain.PropertyUpdate) (*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.UpdateFields")
	defer span.End()

	// Any seller edit re-enters moderation, so the status goes back to
	// PENDING and a stale rejection reason is dropped. SOLD rows are
	// excluded by the filter itself.
	filter := bson.M{"_id": id, "property_status": bson.M{"$ne": domain.StatusSold}}
	set := bson.M{
		"title":           update.Title,
		"type":            update.Type,
		"price":           update.Price,
		"area":            update.Area,
		"beds":            update.Beds,
		"baths":           update.Baths,
		"bhk":             update.Bhk,
		"description":     update.Description,
		"address":         update.Address,
		"city":            update.City,
		"images":          update.Images,
		"property_status": domain.StatusPending,
	}
	change := bson.M{"$set": set, "$unset": bson.M{"rejectionReason": ""}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := store.properties.FindOneAndUpdate(ctx, filter, change, opts)

	var property domain.Property
	if err := result.Decode(&property); err != nil {
		if err == mongo.ErrNoDocuments {
			span.SetStatus(codes.Error, "property missing or sold")
			return nil, errors.ErrSoldImmutable
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &property, nil
}

func (store *PropertyMongoDBStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.PropertyStatus, reason string) (*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.UpdateStatus")
	defer span.End()

	change := bson.M{"$set": bson.M{"property_status": status}}
	if status == domain.StatusRejected {
		change = bson.M{"$set": bson.M{"property_status": status, "rejectionReason": reason}}
	} else {
		change = bson.M{
			"$set":   bson.M{"property_status": status},
			"$unset": bson.M{"rejectionReason": ""},
		}
	}

	// Same status guard as MarkSold: a sale committed after the service's
	// pre-check must not be overwritten by a late moderation write.
	filter := bson.M{"_id": id, "property_status": bson.M{"$ne": domain.StatusSold}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := store.properties.FindOneAndUpdate(ctx, filter, change, opts)

	var property domain.Property
	if err := result.Decode(&property); err != nil {
		if err == mongo.ErrNoDocuments {
			if _, getErr := store.filterOne(ctx, bson.M{"_id": id}); getErr == nil {
				span.SetStatus(codes.Error, "property already sold")
				return nil, errors.ErrAlreadySold
			}
			return nil, errors.ErrPropertyNotFound
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &property, nil
}

func (store *PropertyMongoDBStore) MarkSold(ctx context.Context, id primitive.ObjectID) (*domain.Property, error) {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.MarkSold")
	defer span.End()

	// The status guard in the filter is the serialization point for
	// concurrent bookings: the first matching write wins, later ones see no
	// matching document.
	filter := bson.M{"_id": id, "property_status": bson.M{"$ne": domain.StatusSold}}
	change := bson.M{"$set": bson.M{"property_status": domain.StatusSold}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	result := store.properties.FindOneAndUpdate(ctx, filter, change, opts)

	var property domain.Property
	if err := result.Decode(&property); err != nil {
		if err == mongo.ErrNoDocuments {
			span.SetStatus(codes.Error, "already sold")
			return nil, errors.ErrAlreadySold
		}
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &property, nil
}

func (store *PropertyMongoDBStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, span := store.tracer.Start(ctx, "PropertyStore.Delete")
	defer span.End()

	result, err := store.properties.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.DeletedCount == 0 {
		return errors.ErrPropertyNotFound
	}
	return nil
}

func (store *PropertyMongoDBStore) filter(ctx context.Context, filter interface{}) ([]*domain.Property, error) {
	cursor, err := store.properties.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	return decodeProperties(ctx, cursor)
}

func (store *PropertyMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.Property, error) {
	result := store.properties.FindOne(ctx, filter)
	var property domain.Property
	if err := result.Decode(&property); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

func decodeProperties(ctx context.Context, cursor *mongo.Cursor) (properties []*domain.Property, err error) {
	for cursor.Next(ctx) {
		var property domain.Property
		err = cursor.Decode(&property)
		if err != nil {
			return
		}
		properties = append(properties, &property)
	}
	err = cursor.Err()
	return
}
