package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/errors"
	application "realestate_service/service"
)

type LikeHandler struct {
	service *application.LikeService
	tracer  trace.Tracer
}

func NewLikeHandler(service *application.LikeService, tracer trace.Tracer) *LikeHandler {
	return &LikeHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *LikeHandler) Init(router *mux.Router) {
	router.HandleFunc("/api/likes/wishlist", handler.Wishlist).Methods("GET")
	router.HandleFunc("/api/likes/seller-dashboard", handler.SellerInterest).Methods("GET")
	router.HandleFunc("/api/likes/{propertyId}", handler.Toggle).Methods("POST")
	router.HandleFunc("/api/likes/{propertyId}/check", handler.Check).Methods("GET")
}

func (handler *LikeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "LikeHandler.Toggle")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(mux.Vars(r)["propertyId"])
	if err != nil {
		http.Error(w, errors.ErrPropertyNotFound.Error(), http.StatusNotFound)
		return
	}

	liked, err := handler.service.ToggleLike(ctx, callerID, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	result := "unliked"
	if liked {
		result = "liked"
	}
	jsonResponse(map[string]interface{}{"liked": liked, "result": result}, w)
}

func (handler *LikeHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "LikeHandler.Check")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	propertyID, err := primitive.ObjectIDFromHex(mux.Vars(r)["propertyId"])
	if err != nil {
		http.Error(w, errors.ErrPropertyNotFound.Error(), http.StatusNotFound)
		return
	}

	liked, err := handler.service.IsLiked(ctx, callerID, propertyID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(map[string]bool{"liked": liked}, w)
}

func (handler *LikeHandler) Wishlist(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "LikeHandler.Wishlist")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	wishlist, err := handler.service.GetWishlist(ctx, callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(wishlist, w)
}

func (handler *LikeHandler) SellerInterest(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "LikeHandler.SellerInterest")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	likes, err := handler.service.GetSellerInterest(ctx, callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(likes, w)
}
