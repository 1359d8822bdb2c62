package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/strenvy/strenvy/internal/middleware"
	"github.com/strenvy/strenvy/internal/telemetry/tracing"
	"github.com/strenvy/strenvy/pkg"
)

// AuthTokenHeader carries the session token on authenticated requests.
const AuthTokenHeader = "X-STRENVY-TOKEN"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) SetupRoutes(
	router *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	loginRateLimitAllowedPerMin int,
) {
	loginRouter := router.PathPrefix("/a/login").Subrouter()
	loginRouter.HandleFunc("", handler.HandleLogin).Methods("POST", "OPTIONS").Name("login")
	loginRouter.HandleFunc("/admin", handler.HandleAdminLogin).Methods("POST", "OPTIONS").Name("admin-login")
	loginRouter.Use(middleware.RateLimit(rateLimiter, "login", loginRateLimitAllowedPerMin))

	router.HandleFunc("/a/logout", handler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	router.HandleFunc("/a/me", handler.HandleMe).Methods("GET", "OPTIONS").Name("current-user")
	router.HandleFunc("/a/profile", handler.HandleUpdateProfile).Methods("PUT", "OPTIONS").Name("update-profile")
	router.HandleFunc("/a/preferences", handler.HandleUpdatePreferences).Methods("PUT", "OPTIONS").Name("update-preferences")
	router.HandleFunc("/a/goals", handler.HandleSetGoals).Methods("PUT", "OPTIONS").Name("set-goals")
}

type LoginRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

func (handler *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.login")
	defer span.End()

	var loginReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		log.Tracef("login, unmarshal json params: %s", err)
		http.Error(w, "invalid login payload", http.StatusBadRequest)
		return
	}
	if loginReq.Name == "" {
		http.Error(w, "error, name empty", http.StatusBadRequest)
		return
	}

	token, user, err := handler.service.Login(ctx, loginReq.Name, loginReq.Email)
	if err != nil {
		log.Errorf("login failed for %s: %s", loginReq.Name, err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	handler.writeSession(w, token, user)
}

func (handler *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.adminLogin")
	defer span.End()

	var credentials Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Tracef("admin login, unmarshal json params: %s", err)
		http.Error(w, "invalid login payload", http.StatusBadRequest)
		return
	}

	token, user, err := handler.service.LoginAsAdmin(ctx, credentials)
	if errors.Is(err, ErrWrongUsername) || errors.Is(err, ErrWrongPassword) {
		log.Tracef("failed admin login attempt for user: %s", credentials.Username)
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}
	if err != nil {
		log.Errorf("admin login failed: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	handler.writeSession(w, token, user)
}

func (handler *Handler) writeSession(w http.ResponseWriter, token string, user *User) {
	resp, err := json.Marshal(LoginResponse{Token: token, User: user})
	if err != nil {
		log.Errorf("failed to marshal login response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resp, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.logout")
	defer span.End()

	authToken := r.Header.Get(AuthTokenHeader)
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.service.Logout(ctx, authToken)
	if err != nil {
		log.Errorf("logout failed: %s", err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteJSONResponseOK(w, fmt.Sprintf(`{"loggedOut":%t}`, loggedOut))
}

func (handler *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.me")
	defer span.End()

	user := handler.service.CurrentUser()
	if user == nil {
		http.Error(w, "not logged in", http.StatusUnauthorized)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal current user: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusOK)
}

func (handler *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.updateProfile")
	defer span.End()

	var profileReq LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&profileReq); err != nil {
		log.Tracef("update profile, unmarshal json params: %s", err)
		http.Error(w, "invalid profile payload", http.StatusBadRequest)
		return
	}

	user, err := handler.service.UpdateProfile(ctx, profileReq.Name, profileReq.Email)
	handler.writeUpdatedUser(w, user, err)
}

func (handler *Handler) HandleUpdatePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.updatePreferences")
	defer span.End()

	var patch PreferencesPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("update preferences, unmarshal json params: %s", err)
		http.Error(w, "invalid preferences payload", http.StatusBadRequest)
		return
	}

	user, err := handler.service.UpdatePreferences(ctx, patch)
	handler.writeUpdatedUser(w, user, err)
}

func (handler *Handler) HandleSetGoals(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.session.setGoals")
	defer span.End()

	var goals Goals
	if err := json.NewDecoder(r.Body).Decode(&goals); err != nil {
		log.Tracef("set goals, unmarshal json params: %s", err)
		http.Error(w, "invalid goals payload", http.StatusBadRequest)
		return
	}

	user, err := handler.service.SetGoals(ctx, goals)
	handler.writeUpdatedUser(w, user, err)
}

func (handler *Handler) writeUpdatedUser(w http.ResponseWriter, user *User, err error) {
	if errors.Is(err, ErrNotLoggedIn) {
		http.Error(w, "not logged in", http.StatusUnauthorized)
		return
	}
	if err != nil {
		log.Errorf("failed to update user: %s", err)
		http.Error(w, "failed to update user", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal updated user: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusOK)
}
