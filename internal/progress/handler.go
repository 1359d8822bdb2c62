package progress

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/strenvy/strenvy/internal/telemetry/metrics"
	"github.com/strenvy/strenvy/internal/telemetry/tracing"
	"github.com/strenvy/strenvy/pkg"
)

type Handler struct {
	service        *Service
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/progress", handler.HandleOverview).Methods("GET", "OPTIONS").Name("progress-overview")
	router.HandleFunc("/progress", handler.HandleLog).Methods("POST", "OPTIONS").Name("log-workout")
	router.HandleFunc("/progress/weekly", handler.HandleWeekly).Methods("GET", "OPTIONS").Name("progress-weekly")
	router.HandleFunc("/progress/muscles", handler.HandleMuscles).Methods("GET", "OPTIONS").Name("progress-muscles")
	router.HandleFunc("/progress/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-workout-log")
	router.HandleFunc("/progress/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout-log")
}

type OverviewResponse struct {
	History []WorkoutLogEntry `json:"history"`
	Stats   Stats             `json:"stats"`
}

type DeleteLogResponse struct {
	Deleted   bool   `json:"deleted"`
	DeletedID string `json:"deletedId"`
}

func (handler *Handler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.overview")
	defer span.End()

	resp := OverviewResponse{
		History: handler.service.History(),
		Stats:   handler.service.Stats(),
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal progress overview: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.log")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var entry WorkoutLogEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		log.Tracef("log workout, unmarshal json params: %s", err)
		http.Error(w, "invalid workout payload", http.StatusBadRequest)
		return
	}

	logged, err := handler.service.LogWorkout(ctx, entry)
	if err != nil {
		log.Errorf("failed to log workout: %s", err)
		http.Error(w, "failed to log workout", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterWorkoutsLogged.Inc()

	loggedJson, err := json.Marshal(logged)
	if err != nil {
		log.Errorf("failed to marshal logged workout: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, loggedJson, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var patch LogPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.Tracef("update workout log, unmarshal json params: %s", err)
		http.Error(w, "invalid patch payload", http.StatusBadRequest)
		return
	}

	updated, found, err := handler.service.UpdateLog(ctx, id, patch)
	if err != nil {
		log.Errorf("failed to update workout log %s: %s", id, err)
		http.Error(w, "failed to update workout log", http.StatusInternalServerError)
		return
	}
	if !found {
		http.Error(w, "workout log entry not found", http.StatusNotFound)
		return
	}

	updatedJson, err := json.Marshal(updated)
	if err != nil {
		log.Errorf("failed to marshal updated workout log: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, updatedJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	deleted, err := handler.service.DeleteLog(ctx, id)
	if err != nil {
		log.Errorf("failed to delete workout log %s: %s", id, err)
		http.Error(w, "failed to delete workout log", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DeleteLogResponse{Deleted: deleted, DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleWeekly(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.weekly")
	defer span.End()

	weekCount := DefaultWeekCount
	if weeksParam := r.URL.Query().Get("weeks"); weeksParam != "" {
		parsed, err := strconv.Atoi(weeksParam)
		if err != nil || parsed <= 0 {
			http.Error(w, "error, weeks must be a positive number", http.StatusBadRequest)
			return
		}
		weekCount = parsed
	}

	buckets := handler.service.Weekly(weekCount)
	bucketsJson, err := json.Marshal(buckets)
	if err != nil {
		log.Errorf("failed to marshal weekly buckets: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, bucketsJson, http.StatusOK)
}

func (handler *Handler) HandleMuscles(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.progress.muscles")
	defer span.End()

	distribution := handler.service.Muscles()
	distributionJson, err := json.Marshal(distribution)
	if err != nil {
		log.Errorf("failed to marshal muscle distribution: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, distributionJson, http.StatusOK)
}
