package get_worker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/service/workers"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) GetByID(_ context.Context, id int64) (*models.WorkerDetailsResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.WorkerDetailsResponse{
		WorkerResponse:   models.WorkerResponse{ID: id, Blacklisted: true},
		BlacklistHistory: []models.BlacklistEntryResponse{{ID: 1, WorkerID: id, Reason: "no-show"}},
	}, nil
}

func serve(svc WorkerService, id string) *httptest.ResponseRecorder {
	req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/workers/"+id, nil), map[string]string{"workerId": id})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler(t *testing.T) {
	rec := serve(&fakeService{}, "2")
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.WorkerDetailsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.ID)
	assert.True(t, body.Blacklisted)
	require.Len(t, body.BlacklistHistory, 1)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "-1").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: workers.ErrWorkerNotFound}, "2").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: workers.ErrInternal}, "2").Code)
}
