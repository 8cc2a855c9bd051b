package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"profico-inventory/internal/dto"
	"profico-inventory/internal/services"
	apperrors "profico-inventory/pkg/errors"
	"profico-inventory/pkg/utils"
)

type ExportController struct {
	exportService services.ExportServiceInterface
	logger        *zap.Logger
}

func NewExportController(exportService services.ExportServiceInterface, logger *zap.Logger) *ExportController {
	return &ExportController{exportService: exportService, logger: logger}
}

// ExportEquipments - GET /equipment/export?ids=1,2,3. Без ids выгружается
// весь парк. Ответ - xlsx-файл.
func (c *ExportController) ExportEquipments(ctx echo.Context) error {
	ids, err := utils.ParseUint64Slice(ctx.QueryParams()["ids"])
	if err != nil {
		appErr := apperrors.NewValidationError("Некорректный список идентификаторов", map[string]interface{}{
			"ids": err.Error(),
		})
		return utils.ErrorResponse(ctx, appErr, c.logger)
	}

	rows, err := c.exportService.GetExportRows(ctx.Request().Context(), ids)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return c.respondWithXLSX(ctx, rows)
}

func exportRowToSlice(row dto.ExportRowDTO) []interface{} {
	return []interface{}{
		row.SerialNumber, row.Name, row.Brand, row.Model, row.Category, row.Status,
		row.Condition, row.OwnerName, row.OwnerEmail, row.Location, row.PurchaseDate,
		row.PurchaseMethod, row.PurchasePrice, row.WarrantyExpiry, row.LastMaintenanceDate,
		row.LastMaintenanceCost, row.Tags, row.Notes, row.CreatedAt, row.UpdatedAt,
	}
}

func (c *ExportController) respondWithXLSX(ctx echo.Context, rows []dto.ExportRowDTO) error {
	f := excelize.NewFile()
	sheet := "Оборудование"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &services.ExportColumns)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "T1", style)

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		values := exportRowToSlice(row)
		f.SetSheetRow(sheet, cell, &values)
	}
	f.SetColWidth(sheet, "A", "B", 25)
	f.SetColWidth(sheet, "H", "I", 25)
	f.SetColWidth(sheet, "Q", "R", 35)

	fileName := fmt.Sprintf("equipment-export-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
