package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
	"realestate_service/errors"
)

type ContactService struct {
	store      domain.ContactRequestStore
	properties domain.PropertyStore
	users      domain.UserStore
	tracer     trace.Tracer
}

func NewContactService(store domain.ContactRequestStore, properties domain.PropertyStore,
	users domain.UserStore, tracer trace.Tracer) *ContactService {
	return &ContactService{
		store:      store,
		properties: properties,
		users:      users,
		tracer:     tracer,
	}
}

// CreateRequest records buyer interest against a listing in any status. The
// seller on the request is the listing's owner at creation time and is never
// re-derived afterwards.
func (service *ContactService) CreateRequest(ctx context.Context, buyerID, propertyID primitive.ObjectID) (*domain.ContactRequest, error) {
	ctx, span := service.tracer.Start(ctx, "ContactService.CreateRequest")
	defer span.End()

	buyer, err := service.users.Get(ctx, buyerID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	property, err := service.properties.Get(ctx, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	request := &domain.ContactRequest{
		BuyerID:    buyer.ID,
		SellerID:   property.SellerID,
		PropertyID: property.ID,
		Status:     domain.RequestPending,
	}
	return service.store.Insert(ctx, request)
}

func (service *ContactService) GetRequestsBySeller(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.ContactRequest, error) {
	ctx, span := service.tracer.Start(ctx, "ContactService.GetRequestsBySeller")
	defer span.End()

	return service.store.GetBySeller(ctx, sellerID)
}

func (service *ContactService) GetRequestsByBuyer(ctx context.Context, buyerID primitive.ObjectID) ([]*domain.ContactRequest, error) {
	ctx, span := service.tracer.Start(ctx, "ContactService.GetRequestsByBuyer")
	defer span.End()

	return service.store.GetByBuyer(ctx, buyerID)
}

// UpdateStatus lets the snapshotted seller move the request to any valid
// status value. No ordering between PENDING, CONTACTED and CLOSED is
// enforced.
func (service *ContactService) UpdateStatus(ctx context.Context, callerID, requestID primitive.ObjectID, status domain.RequestStatus) (*domain.ContactRequest, error) {
	ctx, span := service.tracer.Start(ctx, "ContactService.UpdateStatus")
	defer span.End()

	if !domain.ValidRequestStatus(status) {
		return nil, errors.ErrInvalidStatus
	}

	request, err := service.store.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.SellerID != callerID {
		span.SetStatus(codes.Error, "caller is not the seller on the request")
		return nil, errors.ErrNotSeller
	}

	return service.store.UpdateStatus(ctx, requestID, status)
}
