package list_rebooking_suggestions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-StaffingService/internal/domain"
	"github.com/m04kA/SMC-StaffingService/internal/usecase/rebooking"
	"github.com/m04kA/SMC-StaffingService/pkg/logger"
)

type fakeUseCase struct {
	got *rebooking.ListRequest
	err error
}

func (f *fakeUseCase) List(_ context.Context, req *rebooking.ListRequest) ([]*domain.RebookingSuggestion, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return []*domain.RebookingSuggestion{}, nil
}

func serve(uc RebookingUseCase, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, "/api/v1/rebooking-suggestions?shiftId=5&accepted=false")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(5), *uc.got.ShiftID)
	assert.False(t, *uc.got.Accepted)
	assert.JSONEq(t, `{"suggestions":[]}`, rec.Body.String())
}

func TestHandler_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/api/v1/rebooking-suggestions?shiftId=x").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "/api/v1/rebooking-suggestions?accepted=2").Code)
	assert.Equal(t, http.StatusInternalServerError,
		serve(&fakeUseCase{err: rebooking.ErrInternal}, "/api/v1/rebooking-suggestions").Code)
}
