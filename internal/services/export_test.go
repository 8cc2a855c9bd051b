package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/entities"
	"profico-inventory/pkg/utils"
)

type fakeExportRepo struct {
	rows   []entities.EquipmentExportRow
	gotIDs []uint64
}

func (r *fakeExportRepo) GetExportRows(ctx context.Context, ids []uint64) ([]entities.EquipmentExportRow, error) {
	r.gotIDs = ids
	return r.rows, nil
}

func TestExportRowFormatting(t *testing.T) {
	purchaseDate := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2024, 3, 16, 10, 30, 0, 0, time.UTC)

	repo := &fakeExportRepo{rows: []entities.EquipmentExportRow{
		{
			SerialNumber:  "MBP-001",
			Name:          "MacBook Pro",
			Brand:         sql.NullString{String: "Apple", Valid: true},
			Category:      "laptop",
			Status:        "assigned",
			Condition:     sql.NullString{String: "good", Valid: true},
			OwnerName:     sql.NullString{String: "Иван Сотрудников", Valid: true},
			PurchaseDate:  sql.NullTime{Time: purchaseDate, Valid: true},
			PurchasePrice: sql.NullFloat64{Float64: 2499.99, Valid: true},
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		},
		{
			// Запись с NULL-полями: всё уходит в пустые строки и нули.
			SerialNumber: "DELL-001",
			Name:         "Монитор",
			Category:     "monitor",
			Status:       "available",
			CreatedAt:    createdAt,
			UpdatedAt:    createdAt,
		},
	}}
	svc := NewExportService(repo, zap.NewNop())
	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)

	rows, err := svc.GetExportRows(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	full := rows[0]
	assert.Equal(t, "MBP-001", full.SerialNumber)
	assert.Equal(t, "Apple", full.Brand)
	assert.Equal(t, "Иван Сотрудников", full.OwnerName)
	assert.Equal(t, "15.03.2024", full.PurchaseDate)
	assert.Equal(t, 2499.99, full.PurchasePrice)
	assert.Equal(t, "16.03.2024", full.CreatedAt)

	empty := rows[1]
	assert.Equal(t, "", empty.Brand)
	assert.Equal(t, "", empty.OwnerName)
	assert.Equal(t, "", empty.PurchaseDate)
	assert.Equal(t, float64(0), empty.PurchasePrice)
	assert.Equal(t, "", empty.Tags)
}

func TestExportPassesIDFilter(t *testing.T) {
	repo := &fakeExportRepo{}
	svc := NewExportService(repo, zap.NewNop())
	ctx := utils.WithActor(context.Background(), 1, authz.RoleAdmin)

	_, err := svc.GetExportRows(ctx, []uint64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, repo.gotIDs)
}

func TestExportColumnsMatchRowWidth(t *testing.T) {
	assert.Len(t, ExportColumns, 20)
}
