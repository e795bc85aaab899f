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

type TransactionHandler struct {
	service *application.TransactionService
	tracer  trace.Tracer
}

func NewTransactionHandler(service *application.TransactionService, tracer trace.Tracer) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *TransactionHandler) Init(router *mux.Router) {
	router.HandleFunc("/api/transactions/book/{propertyId}", handler.Book).Methods("POST")
	router.HandleFunc("/api/transactions/buyer", handler.BuyerHistory).Methods("GET")
	router.HandleFunc("/api/transactions/seller", handler.SellerHistory).Methods("GET")
	router.HandleFunc("/api/transactions/all", handler.All).Methods("GET")
}

func (handler *TransactionHandler) Book(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "TransactionHandler.Book")
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

	transaction, err := handler.service.BookProperty(ctx, callerID, propertyID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	jsonResponse(transaction, w)
}

func (handler *TransactionHandler) BuyerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "TransactionHandler.BuyerHistory")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	transactions, err := handler.service.GetBuyerTransactions(ctx, callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(transactions, w)
}

func (handler *TransactionHandler) SellerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "TransactionHandler.SellerHistory")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	transactions, err := handler.service.GetSellerTransactions(ctx, callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(transactions, w)
}

func (handler *TransactionHandler) All(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "TransactionHandler.All")
	defer span.End()

	transactions, err := handler.service.GetAllTransactions(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(transactions, w)
}
