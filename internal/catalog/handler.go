package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/strenvy/strenvy/internal/telemetry/tracing"
	"github.com/strenvy/strenvy/pkg"
)

type Handler struct {
	index *Index
}

func NewHandler(index *Index) *Handler {
	return &Handler{index: index}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/exercises", handler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	router.HandleFunc("/exercises/facets", handler.HandleFacets).Methods("GET", "OPTIONS").Name("exercise-facets")
	router.HandleFunc("/exercises/{id}", handler.HandleGet).Methods("GET", "OPTIONS").Name("get-exercise")
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.list")
	defer span.End()

	query := r.URL.Query()
	exercises := handler.index.Filter(FilterParams{
		Search:    query.Get("search"),
		BodyPart:  query.Get("body_part"),
		Equipment: query.Get("equipment"),
		Target:    query.Get("target"),
	})

	exercisesJson, err := json.Marshal(exercises)
	if err != nil {
		log.Errorf("failed to marshal exercises: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exercisesJson, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.get")
	defer span.End()

	vars := mux.Vars(r)
	id := vars["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	exercise, ok := handler.index.Get(id)
	if !ok {
		http.Error(w, "exercise not found", http.StatusNotFound)
		return
	}

	exerciseJson, err := json.Marshal(exercise)
	if err != nil {
		log.Errorf("failed to marshal exercise %s: %s", id, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, exerciseJson, http.StatusOK)
}

func (handler *Handler) HandleFacets(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.facets")
	defer span.End()

	facetsJson, err := json.Marshal(handler.index.Facets())
	if err != nil {
		log.Errorf("failed to marshal catalog facets: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, facetsJson, http.StatusOK)
}
