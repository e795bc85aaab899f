package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
	"realestate_service/errors"
	application "realestate_service/service"
	"realestate_service/storage"
)

type PropertyHandler struct {
	service *application.PropertyService
	storage *storage.FileStorage
	tracer  trace.Tracer
}

func NewPropertyHandler(service *application.PropertyService, storage *storage.FileStorage, tracer trace.Tracer) *PropertyHandler {
	return &PropertyHandler{
		service: service,
		storage: storage,
		tracer:  tracer,
	}
}

func (handler *PropertyHandler) Init(router *mux.Router) {
	router.HandleFunc("/api/properties", handler.Search).Methods("GET")
	router.HandleFunc("/api/properties/my-listings", handler.MyListings).Methods("GET")
	router.HandleFunc("/api/properties/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/api/properties", handler.Create).Methods("POST")
	router.HandleFunc("/api/properties/{id}", handler.Update).Methods("PUT")
	router.HandleFunc("/api/properties/{id}", handler.Delete).Methods("DELETE")
	router.HandleFunc("/api/properties/{id}/images", handler.UploadImages).Methods("POST")
	router.HandleFunc("/api/admin/properties/pending", handler.Pending).Methods("GET")
	router.HandleFunc("/api/admin/properties/{id}/status", handler.UpdateStatus).Methods("PUT")
}

func (handler *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "PropertyHandler.Search")
	defer span.End()

	filter, err := parseSearchFilter(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	properties, err := handler.service.Search(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}
	jsonResponse(properties, w)
}

func parseSearchFilter(r *http.Request) (*domain.SearchFilter, error) {
	query := r.URL.Query()
	filter := &domain.SearchFilter{
		City: query.Get("city"),
		Type: domain.PropertyType(strings.ToUpper(query.Get("type"))),
	}

	if raw := query.Get("minPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &domain.ValidationError{Message: "minPrice must be a number"}
		}
		filter.MinPrice = &value
	}
	if raw := query.Get("maxPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &domain.ValidationError{Message: "maxPrice must be a number"}
		}
		filter.MaxPrice = &value
	}
	if raw := query.Get("beds"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &domain.ValidationError{Message: "beds must be an integer"}
		}
		filter.MinBeds = &value
	}
	if filter.Type != "" && !domain.ValidPropertyType(filter.Type) {
		return nil, &domain.ValidationError{Message: "Invalid property type"}
	}
	return filter, nil
}

func (handler *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "PropertyHandler.Get")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, errors.ErrPropertyNotFound.Error(), http.StatusNotFound)
		return
	}

	property, err := handler.service.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(property, w)
}

func (handler *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "PropertyHandler.Create")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	property := &domain.Property{}
	if err := property.FromJSON(r.Body); err != nil {
		http.Error(w, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	created, err := handler.service.Create(ctx, callerID, property)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	jsonResponse(created, w)
}

func (handler *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "PropertyHandler.Update")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, errors.ErrPropertyNotFound.Error(), http.StatusNotFound)
		return
	}

	update := &domain.PropertyUpdate{}
	if err := update.FromJSON(r.Body); err != nil {
		http.Error(w, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(ctx, callerID, id, update)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}
	jsonResponse(updated, w)
}

func (handler *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "PropertyHandler.Delete")
	defer span.End()

	callerID, callerRole, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, errors.ErrPropertyNotFound.Error(), http.StatusNotFound)
		return
	}

	if err := handler.service.Delete(ctx, callerID, callerRole, id); err != nil {
		writeError(w, err)
		return
	}
	jsonResponse("Property deleted successfully", w)
}

func (handler *PropertyHandler) MyListings(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "PropertyHandler.MyListings")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	properties, err := handler.service.GetBySeller(ctx, callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(properties, w)
}

func (handler *PropertyHandler) Pending(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "PropertyHandler.Pending")
	defer span.End()

	properties, err := handler.service.GetPending(ctx)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(properties, w)
}

func (handler *PropertyHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "PropertyHandler.UpdateStatus")
	defer span.End()

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, errors.ErrPropertyNotFound.Error(), http.StatusNotFound)
		return
	}

	status := domain.PropertyStatus(strings.ToUpper(r.URL.Query().Get("status")))
	reason := r.URL.Query().Get("reason")

	updated, err := handler.service.UpdateStatus(ctx, id, status, reason)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}
	jsonResponse(updated, w)
}

func (handler *PropertyHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "PropertyHandler.UploadImages")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, errors.ErrPropertyNotFound.Error(), http.StatusNotFound)
		return
	}

	property, err := handler.service.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}
	if property.SellerID != callerID {
		http.Error(w, errors.ErrNotOwner.Error(), http.StatusForbidden)
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	references := []string{}
	for _, header := range r.MultipartForm.File["images"] {
		file, err := header.Open()
		if err != nil {
			http.Error(w, errors.InvalidRequestFormatError, http.StatusBadRequest)
			return
		}

		reference, err := handler.storage.StoreImage(ctx, id.Hex(), header.Filename, file)
		file.Close()
		if err != nil {
			log.Printf("image upload failed: %s", err)
			http.Error(w, "Image upload failed", http.StatusInternalServerError)
			return
		}
		references = append(references, reference)
	}

	jsonResponse(references, w)
}
