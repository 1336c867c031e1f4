package list_workers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/service/workers"
	"github.com/m04kA/SMC-StaffingService/internal/service/workers/models"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
)

type fakeService struct {
	got *models.ListWorkersRequest
	err error
}

func (f *fakeService) List(_ context.Context, req *models.ListWorkersRequest) (*models.WorkerListResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.WorkerListResponse{Workers: []models.WorkerResponse{}}, nil
}

func serve(svc WorkerService, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/api/v1/workers?standby=true&available=false")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *svc.got.Standby)
	assert.False(t, *svc.got.Available)
	assert.Nil(t, svc.got.Blacklisted)
	assert.JSONEq(t, `{"workers":[]}`, rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/workers?standby=maybe").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: workers.ErrInternal}, "/api/v1/workers").Code)
}
