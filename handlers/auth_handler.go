package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"realestate_service/domain"
	"realestate_service/errors"
	application "realestate_service/service"
)

type AuthHandler struct {
	service *application.UserService
	tracer  trace.Tracer
}

func NewAuthHandler(service *application.UserService, tracer trace.Tracer) *AuthHandler {
	return &AuthHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *AuthHandler) Init(router *mux.Router) {
	router.HandleFunc("/api/auth/signup", handler.Signup).Methods("POST")
	router.HandleFunc("/api/auth/login", handler.Login).Methods("POST")
	router.HandleFunc("/api/auth/verify-otp", handler.VerifyOtp).Methods("POST")
	router.HandleFunc("/api/users/profile", handler.Profile).Methods("GET")
	router.HandleFunc("/api/users/profile", handler.UpdateProfile).Methods("PUT")
}

func (handler *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "AuthHandler.Signup")
	defer span.End()

	var request domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	user, err := handler.service.Register(ctx, &request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	jsonResponse(user, w)
}

func (handler *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "AuthHandler.Login")
	defer span.End()

	var request domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	response, err := handler.service.Login(ctx, &request)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}
	jsonResponse(response, w)
}

func (handler *AuthHandler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "AuthHandler.VerifyOtp")
	defer span.End()

	var request domain.OtpVerification
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	if err := handler.service.VerifyOtp(ctx, &request); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(w, err)
		return
	}
	jsonResponse("Email verified successfully! You can now login.", w)
}

func (handler *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "AuthHandler.Profile")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := handler.service.GetProfile(ctx, callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(user, w)
}

func (handler *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := handler.tracer.Start(r.Context(), "AuthHandler.UpdateProfile")
	defer span.End()

	callerID, _, err := callerIdentity(r)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var update domain.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	user, err := handler.service.UpdateProfile(ctx, callerID, &update)
	if err != nil {
		writeError(w, err)
		return
	}
	jsonResponse(user, w)
}
