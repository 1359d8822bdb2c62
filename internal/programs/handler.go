package programs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/strenvy/strenvy/internal/telemetry/metrics"
	"github.com/strenvy/strenvy/internal/telemetry/tracing"
	"github.com/strenvy/strenvy/pkg"
)

type sessionInfo interface {
	IsAdmin(ctx context.Context) bool
}

type Handler struct {
	service        *Service
	session        sessionInfo
	metricsManager *metrics.Manager
}

func NewHandler(service *Service, session sessionInfo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		service:        service,
		session:        session,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/programs", handler.HandleList).Methods("GET", "OPTIONS").Name("list-programs")
	router.HandleFunc("/programs", handler.HandleSave).Methods("POST", "OPTIONS").Name("new-program")
	router.HandleFunc("/programs/validate", handler.HandleValidate).Methods("POST", "OPTIONS").Name("validate-program")
	router.HandleFunc("/programs/active", handler.HandleActive).Methods("GET", "OPTIONS").Name("active-program")
	router.HandleFunc("/programs/admin/reset", handler.HandleAdminReset).Methods("POST", "OPTIONS").Name("reset-admin-programs")
	router.HandleFunc("/programs/calendar/{year}/{month}", handler.HandleCalendar).Methods("GET", "OPTIONS").Name("program-calendar")
	router.HandleFunc("/programs/{id}", handler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-program")
	router.HandleFunc("/programs/{id}", handler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-program")
	router.HandleFunc("/programs/{id}/activate", handler.HandleActivate).Methods("POST", "OPTIONS").Name("activate-program")
}

type ListProgramsResponse struct {
	AdminPrograms []Program      `json:"adminPrograms"`
	UserPrograms  []Program      `json:"userPrograms"`
	ActiveProgram *ActiveProgram `json:"activeProgram,omitempty"`
}

type ValidateResponse struct {
	Valid  bool             `json:"valid"`
	Errors ValidationErrors `json:"errors,omitempty"`
}

type DeleteProgramResponse struct {
	Deleted   bool   `json:"deleted"`
	DeletedID string `json:"deletedId"`
}

type ActivateProgramResponse struct {
	Activated     bool           `json:"activated"`
	ActiveProgram *ActiveProgram `json:"activeProgram,omitempty"`
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.list")
	defer span.End()

	adminPrograms, userPrograms := handler.service.Programs()
	resp := ListProgramsResponse{
		AdminPrograms: adminPrograms,
		UserPrograms:  userPrograms,
		ActiveProgram: handler.service.Active(),
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal programs list: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.validate")
	defer span.End()

	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	validationErrs := Validate(*draft)
	resp := ValidateResponse{
		Valid:  len(validationErrs) == 0,
		Errors: validationErrs,
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal validate response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if !resp.Valid {
		status = http.StatusBadRequest
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, status)
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.save")
	defer span.End()

	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	draft.ID = ""

	if draft.IsAdmin && !handler.session.IsAdmin(ctx) {
		http.Error(w, "admin programs can only be saved by admins", http.StatusForbidden)
		return
	}

	handler.saveDraft(ctx, w, *draft, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.update")
	defer span.End()

	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	draft.ID = mux.Vars(r)["id"]

	existing, found := handler.service.Find(draft.ID)
	if !found {
		http.Error(w, "program not found", http.StatusNotFound)
		return
	}
	// the owning collection is decided by the stored record, not the payload
	draft.IsAdmin = existing.IsAdmin
	if draft.IsAdmin && !handler.session.IsAdmin(ctx) {
		http.Error(w, "admin programs can only be edited by admins", http.StatusForbidden)
		return
	}

	handler.saveDraft(ctx, w, *draft, http.StatusOK)
}

func (handler *Handler) saveDraft(ctx context.Context, w http.ResponseWriter, draft Draft, successStatus int) {
	program, err := handler.service.Save(ctx, draft)

	var validationErrs ValidationErrors
	switch {
	case errors.As(err, &validationErrs):
		respJson, marshalErr := json.Marshal(ValidateResponse{Valid: false, Errors: validationErrs})
		if marshalErr != nil {
			log.Errorf("failed to marshal validation errors: %s", marshalErr)
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusBadRequest)
		return
	case errors.Is(err, ErrProgramNotFound):
		http.Error(w, "program not found", http.StatusNotFound)
		return
	case err != nil:
		log.Errorf("failed to save program: %s", err)
		http.Error(w, "failed to save program", http.StatusInternalServerError)
		return
	}

	handler.metricsManager.CounterProgramsSaved.Inc()

	programJson, err := json.Marshal(program)
	if err != nil {
		log.Errorf("failed to marshal saved program: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	log.Debugf("program saved: [%s] %s", program.ID, program.Name)
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, programJson, successStatus)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if program, found := handler.service.Find(id); found && program.IsAdmin && !handler.session.IsAdmin(ctx) {
		http.Error(w, "admin programs can only be deleted by admins", http.StatusForbidden)
		return
	}

	deleted, err := handler.service.Delete(ctx, id)
	if err != nil {
		log.Errorf("failed to delete program %s: %s", id, err)
		http.Error(w, "failed to delete program", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(DeleteProgramResponse{Deleted: deleted, DeletedID: id})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.activate")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	active, found, err := handler.service.Activate(ctx, id)
	if err != nil {
		log.Errorf("failed to activate program %s: %s", id, err)
		http.Error(w, "failed to activate program", http.StatusInternalServerError)
		return
	}

	respJson, err := json.Marshal(ActivateProgramResponse{Activated: found, ActiveProgram: active})
	if err != nil {
		log.Errorf("failed to marshal activate response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}

func (handler *Handler) HandleActive(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.active")
	defer span.End()

	active := handler.service.Active()
	if active == nil {
		pkg.WriteJSONResponseOK(w, "null")
		return
	}

	activeJson, err := json.Marshal(active)
	if err != nil {
		log.Errorf("failed to marshal active program: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, activeJson, http.StatusOK)
}

func (handler *Handler) HandleAdminReset(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.adminReset")
	defer span.End()

	if !handler.session.IsAdmin(ctx) {
		http.Error(w, "admin only", http.StatusForbidden)
		return
	}

	if err := handler.service.ResetAdminPrograms(ctx); err != nil {
		log.Errorf("failed to reset admin programs: %s", err)
		http.Error(w, "failed to reset admin programs", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, `{"reset":true}`)
}

func (handler *Handler) HandleCalendar(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.programs.calendar")
	defer span.End()

	vars := mux.Vars(r)
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		http.Error(w, "error, year NaN", http.StatusBadRequest)
		return
	}
	monthNum, err := strconv.Atoi(vars["month"])
	if err != nil {
		http.Error(w, "error, month NaN", http.StatusBadRequest)
		return
	}
	if monthNum < 1 || monthNum > 12 {
		http.Error(w, "error, month out of range", http.StatusBadRequest)
		return
	}

	grid := MonthGrid(year, time.Month(monthNum))
	gridJson, err := json.Marshal(grid)
	if err != nil {
		log.Errorf("failed to marshal calendar grid: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, gridJson, http.StatusOK)
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (*Draft, bool) {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return nil, false
	}

	var draft Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		log.Tracef("program draft, unmarshal json params: %s", err)
		http.Error(w, "invalid program payload", http.StatusBadRequest)
		return nil, false
	}

	return &draft, true
}
