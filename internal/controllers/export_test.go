package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"profico-inventory/internal/dto"
)

type fakeExportService struct {
	calls   int
	lastIDs []uint64
	rows    []dto.ExportRowDTO
}

func (f *fakeExportService) GetExportRows(ctx context.Context, ids []uint64) ([]dto.ExportRowDTO, error) {
	f.calls++
	f.lastIDs = ids
	return f.rows, nil
}

func exportRequest(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestExportEquipmentsRejectsMalformedIDs(t *testing.T) {
	// Опечатка в ids не должна превращаться в выгрузку всего парка.
	svc := &fakeExportService{}
	ctrl := NewExportController(svc, zap.NewNop())

	for _, target := range []string{
		"/equipment/export?ids=abc",
		"/equipment/export?ids=abc,def",
		"/equipment/export?ids=1,abc",
		"/equipment/export?ids=1&ids=oops",
	} {
		ctx, rec := exportRequest(target)
		require.NoError(t, ctrl.ExportEquipments(ctx), target)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, target)
		assert.Equal(t, 0, svc.calls, "сервис экспорта не должен вызываться: %s", target)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), target)
		details, ok := body["details"].(map[string]interface{})
		require.True(t, ok, target)
		assert.Contains(t, details, "ids", target)
	}
}

func TestExportEquipmentsPassesParsedIDs(t *testing.T) {
	svc := &fakeExportService{}
	ctrl := NewExportController(svc, zap.NewNop())

	ctx, rec := exportRequest("/equipment/export?ids=3,1,2")
	require.NoError(t, ctrl.ExportEquipments(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, []uint64{3, 1, 2}, svc.lastIDs)
	assert.Equal(t,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), ".xlsx")
}

func TestExportEquipmentsWithoutIDsExportsAll(t *testing.T) {
	svc := &fakeExportService{}
	ctrl := NewExportController(svc, zap.NewNop())

	ctx, rec := exportRequest("/equipment/export")
	require.NoError(t, ctrl.ExportEquipments(ctx))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, svc.calls)
	assert.Empty(t, svc.lastIDs)
}
