package application

import (
	"context"
	"log"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
)

// tokenRate is the earnest payment ratio applied at booking time. Business
// constant, not configurable.
const tokenRate = 0.05

type TransactionService struct {
	transactions domain.TransactionStore
	properties   domain.PropertyStore
	users        domain.UserStore
	cache        domain.PropertyCache
	tracer       trace.Tracer
}

func NewTransactionService(transactions domain.TransactionStore, properties domain.PropertyStore,
	users domain.UserStore, cache domain.PropertyCache, tracer trace.Tracer) *TransactionService {
	return &TransactionService{
		transactions: transactions,
		properties:   properties,
		users:        users,
		cache:        cache,
		tracer:       tracer,
	}
}

// BookProperty converts a listing into a sale. The conditional MarkSold write
// is the commit point: it can succeed for at most one caller per listing, so
// every later attempt fails with ErrAlreadySold no matter how the calls
// interleave. The transaction record is written only after the claim.
func (service *TransactionService) BookProperty(ctx context.Context, buyerID, propertyID primitive.ObjectID) (*domain.Transaction, error) {
	ctx, span := service.tracer.Start(ctx, "TransactionService.BookProperty")
	defer span.End()

	buyer, err := service.users.Get(ctx, buyerID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Distinguishes a missing listing from a sold one; the conflict itself is
	// detected by MarkSold, not here.
	if _, err := service.properties.Get(ctx, propertyID); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	claimed, err := service.properties.MarkSold(ctx, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	transaction := &domain.Transaction{
		BuyerID:       buyer.ID,
		SellerID:      claimed.SellerID,
		PropertyID:    claimed.ID,
		Amount:        claimed.Price * tokenRate,
		TransactionID: uuid.New().String(),
	}

	created, err := service.transactions.Insert(ctx, transaction)
	if err != nil {
		// The claim already committed: the listing is SOLD with no
		// transaction recorded, which needs operator attention.
		log.Printf("orphaned sale claim on property %s for buyer %s: %s",
			claimed.ID.Hex(), buyer.ID.Hex(), err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	if service.cache != nil {
		_ = service.cache.Del(ctx, propertyID.Hex())
	}

	return created, nil
}

func (service *TransactionService) GetBuyerTransactions(ctx context.Context, buyerID primitive.ObjectID) ([]*domain.Transaction, error) {
	ctx, span := service.tracer.Start(ctx, "TransactionService.GetBuyerTransactions")
	defer span.End()

	return service.transactions.GetByBuyer(ctx, buyerID)
}

func (service *TransactionService) GetSellerTransactions(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.Transaction, error) {
	ctx, span := service.tracer.Start(ctx, "TransactionService.GetSellerTransactions")
	defer span.End()

	return service.transactions.GetBySeller(ctx, sellerID)
}

func (service *TransactionService) GetAllTransactions(ctx context.Context) ([]*domain.Transaction, error) {
	ctx, span := service.tracer.Start(ctx, "TransactionService.GetAllTransactions")
	defer span.End()

	return service.transactions.GetAll(ctx)
}
