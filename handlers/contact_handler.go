package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
	"realestate_service/errors"
	application "realestate_service/service"
)

type ContactHandler struct {
	service *application.ContactService
	tracer  trace.Tracer
}

func NewContactHandler(service *application.ContactService, tracer trace.Tracer) *ContactHandler {
	return &ContactHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *ContactHandler) Init(router *mux.Router) {
	router.HandleFunc("/api/contacts/seller", handler.SellerRequests).Methods("GET")
	router.HandleFunc("/api/contacts/buyer", handler.BuyerRequests).Methods("GET")
	router.HandleFunc("/api/contacts/{propertyId}", handler.Create).Methods("POST")
	router.HandleFunc("/api/contacts/{id}/status", handler.UpdateStatus).Methods("PUT")
}

func (handler *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "ContactHandler.Create")
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

	request, err := handler.service.CreateRequest(ctx, callerID, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	jsonResponse(request, w)
}

func (handler *ContactHandler) SellerRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "ContactHandler.SellerRequests")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	requests, err := handler.service.GetRequestsBySeller(ctx, callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(requests, w)
}

func (handler *ContactHandler) BuyerRequests(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "ContactHandler.BuyerRequests")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	requests, err := handler.service.GetRequestsByBuyer(ctx, callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(requests, w)
}

func (handler *ContactHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "ContactHandler.UpdateStatus")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, errors.ErrRequestNotFound.Error(), http.StatusNotFound)
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	status := domain.RequestStatus(strings.ToUpper(body.Status))
	updated, err := handler.service.UpdateStatus(ctx, callerID, requestID, status)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}
	jsonResponse(updated, w)
}
