package create_rebooking_suggestions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
)

type fakeUseCase struct {
	gotShift int64
	gotLimit int
	err      error
}

func (f *fakeUseCase) Suggest(_ context.Context, shiftID int64, limit int) ([]*domain.RebookingSuggestion, error) {
	f.gotShift, f.gotLimit = shiftID, limit
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.RebookingSuggestion{
		{ID: 1, ShiftID: shiftID, WorkerID: 7, Rank: 1},
		{ID: 2, ShiftID: shiftID, WorkerID: 3, Rank: 2},
	}, nil
}

func serve(uc RebookingUseCase, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/rebooking-suggestions", strings.NewReader(body)))
	return rec
}

func TestHandler(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"shiftId":12,"limit":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, int64(12), uc.gotShift)
	assert.Equal(t, 2, uc.gotLimit)

	var body SuggestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Suggestions, 2)
	assert.Equal(t, int64(7), body.Suggestions[0].WorkerID, "ranked order preserved")
	assert.Equal(t, 1, body.Suggestions[0].Rank)

	serve(uc, `{"shiftId":12}`)
	assert.Equal(t, 0, uc.gotLimit, "default limit is chosen by the engine")
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, `{"shiftId":12,"limit":0}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{err: rebooking.ErrInvalidInput}, `{"shiftId":0}`).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeUseCase{err: rebooking.ErrShiftNotFound}, `{"shiftId":12}`).Code)
	assert.Equal(t, http.StatusConflict, serve(&fakeUseCase{err: rebooking.ErrShiftNotCancelled}, `{"shiftId":12}`).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeUseCase{err: rebooking.ErrInternal}, `{"shiftId":12}`).Code)
}
