package assign_shift

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/service/shifts"
	"github.com/m04kA/SMC-StaffingService/internal/service/shifts/models"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) Assign(_ context.Context, id int64, req *models.AssignShiftRequest) (*models.AssignShiftResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AssignShiftResponse{
		Shift: models.ShiftResponse{ID: id, Status: "active", WorkerID: &req.WorkerID},
		Event: &models.EventResponse{Type: "shift_reassigned", AggregateID: id},
	}, nil
}

func serve(svc ShiftService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/3/assign", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"shiftId": "3"})
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_Assigned(t *testing.T) {
	rec := serve(&fakeService{}, `{"workerId":9}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body models.AssignShiftResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(9), *body.Shift.WorkerID)
	require.NotNil(t, body.Event)
	assert.Equal(t, "shift_reassigned", body.Event.Type)
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `not json`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: shifts.ErrInvalidInput}, `{"workerId":0}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: shifts.ErrWorkerNotFound}, `{"workerId":9}`).Code)
	assert.Equal(t, http.StatusConflict, serve(&fakeService{err: shifts.ErrWorkerBusy}, `{"workerId":9}`).Code)
	assert.Equal(t, http.StatusConflict, serve(&fakeService{err: shifts.ErrShiftTerminal}, `{"workerId":9}`).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: shifts.ErrInternal}, `{"workerId":9}`).Code)
}
