package application

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
)

type LikeService struct {
	store      domain.LikeStore
	properties domain.PropertyStore
	users      domain.UserStore
	tracer     trace.Tracer
}

func NewLikeService(store domain.LikeStore, properties domain.PropertyStore,
	users domain.UserStore, tracer trace.Tracer) *LikeService {
	return &LikeService{
		store:      store,
		properties: properties,
		users:      users,
		tracer:     tracer,
	}
}

// ToggleLike flips the (user, property) like. Returns true when the call
// liked the listing, false when it removed an existing like.
func (service *LikeService) ToggleLike(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	ctx, span := service.tracer.Start(ctx, "LikeService.ToggleLike")
	defer span.End()

	liked, err := service.store.Exists(ctx, userID, propertyID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := service.store.Remove(ctx, userID, propertyID); err != nil {
			return false, err
		}
		return false, nil
	}

	user, err := service.users.Get(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	property, err := service.properties.Get(ctx, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	like := &domain.PropertyLike{
		UserID:     user.ID,
		PropertyID: property.ID,
		SellerID:   property.SellerID,
	}
	if _, err := service.store.Insert(ctx, like); err != nil {
		return false, err
	}
	return true, nil
}

func (service *LikeService) IsLiked(ctx context.Context, userID, propertyID primitive.ObjectID) (bool, error) {
	ctx, span := service.tracer.Start(ctx, "LikeService.IsLiked")
	defer span.End()

	return service.store.Exists(ctx, userID, propertyID)
}

// GetWishlist resolves the user's likes to their listings. Likes pointing at
// listings deleted in the meantime are skipped.
func (service *LikeService) GetWishlist(ctx context.Context, userID primitive.ObjectID) ([]*domain.Property, error) {
	ctx, span := service.tracer.Start(ctx, "LikeService.GetWishlist")
	defer span.End()

	likes, err := service.store.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	wishlist := []*domain.Property{}
	for _, like := range likes {
		property, err := service.properties.Get(ctx, like.PropertyID)
		if err != nil {
			log.Printf("wishlist skipping property %s: %s", like.PropertyID.Hex(), err)
			continue
		}
		wishlist = append(wishlist, property)
	}
	return wishlist, nil
}

// GetSellerInterest is the seller's lead view: every like on any of their
// listings, not deduplicated by listing.
func (service *LikeService) GetSellerInterest(ctx context.Context, sellerID primitive.ObjectID) ([]*domain.PropertyLike, error) {
	ctx, span := service.tracer.Start(ctx, "LikeService.GetSellerInterest")
	defer span.End()

	return service.store.GetBySeller(ctx, sellerID)
}
