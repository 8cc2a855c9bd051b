package services

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/dto"
	"profico-inventory/internal/repositories"
	apperrors "profico-inventory/pkg/errors"
	"profico-inventory/pkg/metrics"
	"profico-inventory/pkg/utils"
)

// exportDateLayout - формат дат в выгрузке.
const exportDateLayout = "02.01.2006"

// ExportColumns - заголовки листа в порядке колонок выгрузки.
var ExportColumns = []string{
	"Серийный номер", "Название", "Бренд", "Модель", "Категория", "Статус",
	"Состояние", "Владелец", "Email владельца", "Локация", "Дата покупки",
	"Способ покупки", "Цена", "Гарантия до", "Последнее ТО", "Стоимость ТО",
	"Метки", "Примечания", "Создано", "Обновлено",
}

type ExportServiceInterface interface {
	GetExportRows(ctx context.Context, ids []uint64) ([]dto.ExportRowDTO, error)
}

type exportService struct {
	exportRepo repositories.ExportRepositoryInterface
	logger     *zap.Logger
}

func NewExportService(exportRepo repositories.ExportRepositoryInterface, logger *zap.Logger) ExportServiceInterface {
	return &exportService{exportRepo: exportRepo, logger: logger}
}

func nullStr(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func nullDate(v sql.NullTime) string {
	if v.Valid {
		return v.Time.Format(exportDateLayout)
	}
	return ""
}

func nullFloat(v sql.NullFloat64) float64 {
	if v.Valid {
		return v.Float64
	}
	return 0
}

// GetExportRows возвращает готовые к записи в xlsx строки. Пустой ids
// означает выгрузку всего парка.
func (s *exportService) GetExportRows(ctx context.Context, ids []uint64) ([]dto.ExportRowDTO, error) {
	role, err := utils.GetUserRoleFromCtx(ctx)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("Требуется аутентификация", err)
	}
	if !authz.Can(role, authz.ExportRun) {
		return nil, apperrors.NewForbiddenError("Недостаточно прав для выгрузки")
	}

	rows, err := s.exportRepo.GetExportRows(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ExportRowDTO, 0, len(rows))
	for _, row := range rows {
		result = append(result, dto.ExportRowDTO{
			SerialNumber:        row.SerialNumber,
			Name:                row.Name,
			Brand:               nullStr(row.Brand),
			Model:               nullStr(row.Model),
			Category:            row.Category,
			Status:              row.Status,
			Condition:           nullStr(row.Condition),
			OwnerName:           nullStr(row.OwnerName),
			OwnerEmail:          nullStr(row.OwnerEmail),
			Location:            nullStr(row.Location),
			PurchaseDate:        nullDate(row.PurchaseDate),
			PurchaseMethod:      nullStr(row.PurchaseMethod),
			PurchasePrice:       nullFloat(row.PurchasePrice),
			WarrantyExpiry:      nullDate(row.WarrantyExpiry),
			LastMaintenanceDate: nullDate(row.LastMaintenanceDate),
			LastMaintenanceCost: nullFloat(row.LastMaintenanceCost),
			Tags:                nullStr(row.Tags),
			Notes:               nullStr(row.Notes),
			CreatedAt:           row.CreatedAt.Format(exportDateLayout),
			UpdatedAt:           row.UpdatedAt.Format(exportDateLayout),
		})
	}

	metrics.ExportsTotal.Inc()
	s.logger.Info("подготовлена выгрузка оборудования", zap.Int("rows", len(result)))
	return result, nil
}
