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

const TRANSACTION_COLLECTION = "transactions"

type TransactionMongoDBStore struct {
	transactions *mongo.Collection
	tracer       trace.Tracer
}

func NewTransactionMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.TransactionStore {
	transactions := client.Database(DATABASE).Collection(TRANSACTION_COLLECTION)
	return &TransactionMongoDBStore{
		transactions: transactions,
		tracer:       tracer,
	}
}

func (store *TransactionMongoDBStore) Insert(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := store.tracer.Start(ctx, "TransactionStore.Insert")
	defer span.End()

	transaction.ID = primitive.NewObjectID()
	transaction.PaymentDate = time.Now()
	result, err := store.transactions.InsertOne(ctx, transaction)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	transaction.ID = result.InsertedID.(primitive.ObjectID)
	return transaction, nil
}

func (store *TransactionMongoDBStore) GetAll(ctx context.Context) ([]*domain.Transaction, error) {
	ctx, span := store.tracer.Start(ctx, "TransactionStore.GetAll")
	defer span.End()

	return store.filter(ctx, bson.D{{}})
}

func (store *TransactionMongoDBStore) GetByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]*domain.Transaction, error) {
	ctx, span := store.tracer.Start(ctx, "TransactionStore.GetByBuyer")
	defer span.End()

	return store.filter(ctx, bson.M{"buyerId": buyerID})
}

func (store *TransactionMongoDBStore) GetBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Transaction, error) {
	ctx, span := store.tracer.Start(ctx, "TransactionStore.GetBySeller")
	defer span.End()

	return store.filter(ctx, bson.M{"sellerId": sellerID})
}

func (store *TransactionMongoDBStore) ExistsByProperty(ctx context.Context, propertyID primitive.ObjectID) (bool, error) {
	ctx, span := store.tracer.Start(ctx, "TransactionStore.ExistsByProperty")
	defer span.End()

	count, err := store.transactions.CountDocuments(ctx, bson.M{"propertyId": propertyID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (store *TransactionMongoDBStore) filter(ctx context.Context, filter interface{}) (transactions []*domain.Transaction, err error) {
	cursor, err := store.transactions.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var transaction domain.Transaction
		err = cursor.Decode(&transaction)
		if err != nil {
			return
		}
		transactions = append(transactions, &transaction)
	}
	err = cursor.Err()
	return
}
