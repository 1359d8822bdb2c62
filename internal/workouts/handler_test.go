package workouts_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strenvy/strenvy/internal/workouts"
)

func newTestRouter(t *testing.T) *mux.Router {
	t.Helper()

	service, _ := newTestService(t)
	handler := workouts.NewHandler(service)

	router := mux.NewRouter()
	handler.SetupRoutes(router)
	return router
}

func doRequest(t *testing.T, router *mux.Router, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Reader
	if body != nil {
		bodyJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(bodyJson)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_CRUD(t *testing.T) {
	router := newTestRouter(t)

	rr := doRequest(t, router, "GET", "/workouts", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())

	rr = doRequest(t, router, "POST", "/workouts", pushTemplate())
	require.Equal(t, http.StatusCreated, rr.Code)

	var created workouts.Workout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	update := pushTemplate()
	update.Name = "Quick Push v2"
	rr = doRequest(t, router, "PUT", "/workouts/"+created.ID, update)
	require.Equal(t, http.StatusOK, rr.Code)

	var updated workouts.Workout
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &updated))
	assert.Equal(t, "Quick Push v2", updated.Name)

	rr = doRequest(t, router, "PUT", "/workouts/no-such-workout", update)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doRequest(t, router, "DELETE", "/workouts/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var deleteResp workouts.DeleteWorkoutResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &deleteResp))
	assert.True(t, deleteResp.Deleted)

	rr = doRequest(t, router, "GET", "/workouts", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", rr.Body.String())
}

func TestHandler_Create_EmptyName(t *testing.T) {
	router := newTestRouter(t)

	rr := doRequest(t, router, "POST", "/workouts", workouts.Workout{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
