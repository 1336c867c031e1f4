package get_available_workers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/service/shifts"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
	workerModels "github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
)

type fakeService struct {
	got *models.AvailableWorkersRequest
	err error
}

func (f *fakeService) AvailableWorkers(_ context.Context, req *models.AvailableWorkersRequest) (*models.AvailableWorkersResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AvailableWorkersResponse{Workers: []workerModels.WorkerResponse{{ID: 1}, {ID: 2}}}, nil
}

func serve(svc ShiftService, query string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/shifts/available-workers?"+query, nil))
	return rec
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "start=2025-03-10T10:00:00Z&end=2025-03-10T12:00:00Z")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, svc.got.Start.Hour())
	assert.Equal(t, 12, svc.got.End.Hour())
	assert.False(t, svc.got.IncludeBlacklisted)

	serve(svc, "start=2025-03-10T10:00:00Z&end=2025-03-10T12:00:00Z&includeBlacklisted=true")
	assert.True(t, svc.got.IncludeBlacklisted)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "start=2025-03-10T10:00:00Z").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "start=10&end=12").Code)
	assert.Equal(t, http.StatusBadRequest,
		serve(&fakeService{err: shifts.ErrInvalidInterval}, "start=2025-03-10T12:00:00Z&end=2025-03-10T10:00:00Z").Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&fakeService{err: shifts.ErrInternal}, "start=2025-03-10T10:00:00Z&end=2025-03-10T12:00:00Z").Code)
}
