package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"profico-inventory/internal/authz"
	"profico-inventory/internal/dto"
	"profico-inventory/internal/entities"
	"profico-inventory/internal/repositories"
	apperrors "profico-inventory/pkg/errors"
	"profico-inventory/pkg/utils"
)

// --- in-memory фейки ---

type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeEquipmentRepo struct {
	items map[uint64]*entities.Equipment
}

func newFakeEquipmentRepo(items ...*entities.Equipment) *fakeEquipmentRepo {
	r := &fakeEquipmentRepo{items: make(map[uint64]*entities.Equipment)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeEquipmentRepo) GetEquipments(ctx context.Context, params utils.QueryParams) ([]entities.Equipment, uint64, error) {
	var result []entities.Equipment
	for _, item := range r.items {
		result = append(result, *item)
	}
	return result, uint64(len(result)), nil
}

func (r *fakeEquipmentRepo) FindEquipment(ctx context.Context, id uint64) (*entities.Equipment, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *fakeEquipmentRepo) CreateEquipment(ctx context.Context, payload dto.CreateEquipmentDTO) (uint64, error) {
	id := uint64(len(r.items) + 1)
	status, _ := entities.ParseEquipmentStatus(payload.Status)
	r.items[id] = &entities.Equipment{ID: id, SerialNumber: payload.SerialNumber, Name: payload.Name, Category: payload.Category, Status: status}
	return id, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(ctx context.Context, id uint64, payload dto.UpdateEquipmentDTO) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *fakeEquipmentRepo) FindForUpdateTx(ctx context.Context, tx pgx.Tx, id uint64) (*entities.Equipment, error) {
	return r.FindEquipment(ctx, id)
}

func (r *fakeEquipmentRepo) SetOwnerAndStatusTx(ctx context.Context, tx pgx.Tx, id uint64, ownerID *uint64, status entities.EquipmentStatus, condition *entities.EquipmentCondition) error {
	item, ok := r.items[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	item.CurrentOwnerID = ownerID
	item.Status = status
	if condition != nil {
		item.Condition = condition
	}
	return nil
}

func (r *fakeEquipmentRepo) ReplaceTags(ctx context.Context, id uint64, tagIDs []uint64) error {
	return nil
}

func (r *fakeEquipmentRepo) GetTags(ctx context.Context) ([]entities.Tag, error) {
	return nil, nil
}

type fakeHistoryRepo struct {
	entries []entities.EquipmentHistory
}

func (r *fakeHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, history *entities.EquipmentHistory) error {
	r.entries = append(r.entries, *history)
	return nil
}

func (r *fakeHistoryRepo) FindByEquipmentID(ctx context.Context, equipmentID uint64) ([]repositories.EquipmentHistoryItem, error) {
	var items []repositories.EquipmentHistoryItem
	for _, e := range r.entries {
		if e.EquipmentID == equipmentID {
			items = append(items, repositories.EquipmentHistoryItem{EquipmentHistory: e})
		}
	}
	return items, nil
}

func (r *fakeHistoryRepo) CountByEquipmentID(ctx context.Context, equipmentID uint64) (int64, error) {
	var n int64
	for _, e := range r.entries {
		if e.EquipmentID == equipmentID {
			n++
		}
	}
	return n, nil
}

type fakeUserRepo struct {
	users map[uint64]*entities.User
}

func newFakeUserRepo(users ...*entities.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[uint64]*entities.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindUserByID(ctx context.Context, id uint64) (*entities.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) GetUsers(ctx context.Context) ([]entities.User, error) {
	var result []entities.User
	for _, u := range r.users {
		result = append(result, *u)
	}
	return result, nil
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, payload dto.CreateUserDTO, passwordHash string) (uint64, error) {
	id := uint64(len(r.users) + 1)
	role, _ := authz.ParseRole(payload.Role)
	r.users[id] = &entities.User{ID: id, Fio: payload.Fio, Email: payload.Email, Password: passwordHash, Role: role}
	return id, nil
}

func (r *fakeUserRepo) UpdateUserRole(ctx context.Context, id uint64, role authz.Role) error {
	u, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Role = role
	return nil
}

type fakeCacheRepo struct {
	store   map[string]string
	deleted []string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{store: make(map[string]string)}
}

func (r *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case string:
		r.store[key] = v
	case []byte:
		r.store[key] = string(v)
	}
	return nil
}

func (r *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	v, ok := r.store[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (r *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(r.store, k)
		r.deleted = append(r.deleted, k)
	}
	return nil
}

// --- хелперы ---

func newLifecycleFixture(t *testing.T, equipment ...*entities.Equipment) (LifecycleServiceInterface, *fakeEquipmentRepo, *fakeHistoryRepo, *fakeCacheRepo) {
	t.Helper()
	equipmentRepo := newFakeEquipmentRepo(equipment...)
	historyRepo := &fakeHistoryRepo{}
	userRepo := newFakeUserRepo(
		&entities.User{ID: 1, Fio: "Администратор", Email: "admin@profico.local", Role: authz.RoleAdmin},
		&entities.User{ID: 2, Fio: "Тимлид", Email: "lead@profico.local", Role: authz.RoleTeamLead},
		&entities.User{ID: 3, Fio: "Сотрудник", Email: "user@profico.local", Role: authz.RoleUser},
	)
	cacheRepo := newFakeCacheRepo()
	svc := NewLifecycleService(&fakeTxManager{}, equipmentRepo, historyRepo, userRepo, cacheRepo, zap.NewNop())
	return svc, equipmentRepo, historyRepo, cacheRepo
}

func adminCtx() context.Context {
	return utils.WithActor(context.Background(), 1, authz.RoleAdmin)
}

func assignedEquipment(id, ownerID uint64) *entities.Equipment {
	owner := ownerID
	return &entities.Equipment{
		ID:             id,
		SerialNumber:   "MBP-001",
		Name:           "MacBook Pro",
		Category:       "laptop",
		Status:         entities.StatusAssigned,
		CurrentOwnerID: &owner,
	}
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	require.Error(t, err)
	httpErr, ok := err.(*apperrors.HttpError)
	require.True(t, ok, "ожидалась HttpError, получено: %v", err)
	return httpErr.Code
}

// --- возврат (unassign) ---

func TestUnassignConditionMapping(t *testing.T) {
	cases := []struct {
		condition  string
		wantStatus entities.EquipmentStatus
	}{
		{"excellent", entities.StatusAvailable},
		{"good", entities.StatusAvailable},
		{"fair", entities.StatusAvailable},
		{"poor", entities.StatusMaintenance},
		{"broken", entities.StatusBroken},
	}

	for _, tc := range cases {
		t.Run(tc.condition, func(t *testing.T) {
			svc, equipmentRepo, historyRepo, _ := newLifecycleFixture(t, assignedEquipment(10, 3))

			res, err := svc.Unassign(adminCtx(), 10, dto.UnassignEquipmentDTO{Condition: tc.condition})
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, res.NewStatus)
			assert.Equal(t, tc.wantStatus, res.Equipment.Status)
			assert.Nil(t, res.Equipment.CurrentOwnerID, "владелец должен сняться")

			stored := equipmentRepo.items[10]
			require.NotNil(t, stored.Condition)
			assert.Equal(t, tc.condition, string(*stored.Condition))

			require.Len(t, historyRepo.entries, 1)
			entry := historyRepo.entries[0]
			assert.Equal(t, entities.HistoryActionReturned, entry.Action)
			require.NotNil(t, entry.FromUserID)
			assert.Equal(t, uint64(3), *entry.FromUserID)
		})
	}
}

func TestUnassignNotAssigned(t *testing.T) {
	svc, _, historyRepo, _ := newLifecycleFixture(t, &entities.Equipment{
		ID: 10, SerialNumber: "MBP-001", Name: "MacBook Pro", Category: "laptop",
		Status: entities.StatusAvailable,
	})

	_, err := svc.Unassign(adminCtx(), 10, dto.UnassignEquipmentDTO{Condition: "good"})
	assert.Equal(t, 409, httpCode(t, err))
	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotAssigned)
	assert.Empty(t, historyRepo.entries, "журнал не должен пополниться")
}

func TestUnassignTwice(t *testing.T) {
	svc, _, historyRepo, _ := newLifecycleFixture(t, assignedEquipment(10, 3))

	_, err := svc.Unassign(adminCtx(), 10, dto.UnassignEquipmentDTO{Condition: "good"})
	require.NoError(t, err)

	// Повторный возврат того же оборудования - предусловие уже нарушено.
	_, err = svc.Unassign(adminCtx(), 10, dto.UnassignEquipmentDTO{Condition: "good"})
	assert.Equal(t, 409, httpCode(t, err))
	assert.Len(t, historyRepo.entries, 1)
}

func TestUnassignForbiddenForPlainUser(t *testing.T) {
	svc, equipmentRepo, historyRepo, _ := newLifecycleFixture(t, assignedEquipment(10, 3))
	ctx := utils.WithActor(context.Background(), 3, authz.RoleUser)

	_, err := svc.Unassign(ctx, 10, dto.UnassignEquipmentDTO{Condition: "good"})
	assert.Equal(t, 403, httpCode(t, err))

	// Состояние и журнал не тронуты.
	stored := equipmentRepo.items[10]
	assert.Equal(t, entities.StatusAssigned, stored.Status)
	assert.NotNil(t, stored.CurrentOwnerID)
	assert.Empty(t, historyRepo.entries)
}

func TestUnassignUnknownEquipment(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t)

	_, err := svc.Unassign(adminCtx(), 999, dto.UnassignEquipmentDTO{Condition: "good"})
	assert.Equal(t, 404, httpCode(t, err))
}

func TestUnassignInvalidCondition(t *testing.T) {
	svc, _, historyRepo, _ := newLifecycleFixture(t, assignedEquipment(10, 3))

	_, err := svc.Unassign(adminCtx(), 10, dto.UnassignEquipmentDTO{Condition: "terrible"})
	assert.Equal(t, 422, httpCode(t, err))
	assert.Empty(t, historyRepo.entries)
}

func TestUnassignInvalidatesStatsCache(t *testing.T) {
	svc, _, _, cacheRepo := newLifecycleFixture(t, assignedEquipment(10, 3))
	cacheRepo.store[statsCacheKey] = `{"total_equipment":1}`

	_, err := svc.Unassign(adminCtx(), 10, dto.UnassignEquipmentDTO{Condition: "good"})
	require.NoError(t, err)
	assert.Contains(t, cacheRepo.deleted, statsCacheKey)
}

func TestUnassignCustomNotes(t *testing.T) {
	svc, _, historyRepo, _ := newLifecycleFixture(t, assignedEquipment(10, 3))

	notes := "царапина на крышке"
	_, err := svc.Unassign(adminCtx(), 10, dto.UnassignEquipmentDTO{
		Condition: "fair",
		Notes:     null.StringFrom(notes),
	})
	require.NoError(t, err)
	require.Len(t, historyRepo.entries, 1)
	require.NotNil(t, historyRepo.entries[0].Notes)
	assert.Equal(t, notes, *historyRepo.entries[0].Notes)
}

// --- выдача (assign) ---

func TestAssignFromAvailable(t *testing.T) {
	svc, equipmentRepo, historyRepo, _ := newLifecycleFixture(t, &entities.Equipment{
		ID: 10, SerialNumber: "MBP-001", Name: "MacBook Pro", Category: "laptop",
		Status: entities.StatusAvailable,
	})

	res, err := svc.Assign(adminCtx(), 10, dto.AssignEquipmentDTO{UserID: 3})
	require.NoError(t, err)

	assert.Equal(t, entities.StatusAssigned, res.NewStatus)
	stored := equipmentRepo.items[10]
	require.NotNil(t, stored.CurrentOwnerID)
	assert.Equal(t, uint64(3), *stored.CurrentOwnerID)

	require.Len(t, historyRepo.entries, 1)
	assert.Equal(t, entities.HistoryActionAssigned, historyRepo.entries[0].Action)
	assert.Nil(t, historyRepo.entries[0].FromUserID)
}

func TestAssignFromPending(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t, &entities.Equipment{
		ID: 10, SerialNumber: "MBP-001", Name: "MacBook Pro", Category: "laptop",
		Status: entities.StatusPending,
	})

	res, err := svc.Assign(adminCtx(), 10, dto.AssignEquipmentDTO{UserID: 2})
	require.NoError(t, err)
	assert.Equal(t, entities.StatusAssigned, res.NewStatus)
}

func TestAssignAlreadyAssigned(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t, assignedEquipment(10, 2))

	_, err := svc.Assign(adminCtx(), 10, dto.AssignEquipmentDTO{UserID: 3})
	assert.Equal(t, 409, httpCode(t, err))
	assert.ErrorIs(t, err, apperrors.ErrEquipmentAlreadyOwned)
}

func TestAssignFromBrokenRejected(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t, &entities.Equipment{
		ID: 10, SerialNumber: "MBP-001", Name: "MacBook Pro", Category: "laptop",
		Status: entities.StatusBroken,
	})

	_, err := svc.Assign(adminCtx(), 10, dto.AssignEquipmentDTO{UserID: 3})
	assert.Equal(t, 409, httpCode(t, err))
	assert.ErrorIs(t, err, apperrors.ErrEquipmentNotIssuable)
}

func TestAssignUnknownUser(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t, &entities.Equipment{
		ID: 10, SerialNumber: "MBP-001", Name: "MacBook Pro", Category: "laptop",
		Status: entities.StatusAvailable,
	})

	_, err := svc.Assign(adminCtx(), 10, dto.AssignEquipmentDTO{UserID: 777})
	assert.Equal(t, 404, httpCode(t, err))
}

// --- административные переводы ---

func TestOverrideStatusClearsOwner(t *testing.T) {
	svc, equipmentRepo, historyRepo, _ := newLifecycleFixture(t, assignedEquipment(10, 3))

	res, err := svc.OverrideStatus(adminCtx(), 10, dto.OverrideStatusDTO{Status: "lost"})
	require.NoError(t, err)

	assert.Equal(t, entities.StatusLost, res.NewStatus)
	stored := equipmentRepo.items[10]
	assert.Nil(t, stored.CurrentOwnerID, "нельзя оставить владельца у не-assigned записи")

	require.Len(t, historyRepo.entries, 1)
	entry := historyRepo.entries[0]
	assert.Equal(t, entities.HistoryActionStatusChange, entry.Action)
	require.NotNil(t, entry.FromUserID)
	assert.Equal(t, uint64(3), *entry.FromUserID)
}

func TestOverrideStatusForbiddenForTeamLead(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t, assignedEquipment(10, 3))
	ctx := utils.WithActor(context.Background(), 2, authz.RoleTeamLead)

	_, err := svc.OverrideStatus(ctx, 10, dto.OverrideStatusDTO{Status: "decommissioned"})
	assert.Equal(t, 403, httpCode(t, err))
}

func TestOverrideDecommissionedIsTerminal(t *testing.T) {
	svc, _, _, _ := newLifecycleFixture(t, &entities.Equipment{
		ID: 10, SerialNumber: "MBP-001", Name: "MacBook Pro", Category: "laptop",
		Status: entities.StatusDecommissioned,
	})

	_, err := svc.OverrideStatus(adminCtx(), 10, dto.OverrideStatusDTO{Status: "maintenance"})
	assert.Equal(t, 409, httpCode(t, err))
}

// Инвариант: assigned <=> владелец задан; проверяем после цепочки переходов.
func TestOwnerStatusInvariantAfterTransitions(t *testing.T) {
	svc, equipmentRepo, _, _ := newLifecycleFixture(t, &entities.Equipment{
		ID: 10, SerialNumber: "MBP-001", Name: "MacBook Pro", Category: "laptop",
		Status: entities.StatusAvailable,
	})

	_, err := svc.Assign(adminCtx(), 10, dto.AssignEquipmentDTO{UserID: 3})
	require.NoError(t, err)
	stored := equipmentRepo.items[10]
	assert.Equal(t, entities.StatusAssigned, stored.Status)
	assert.NotNil(t, stored.CurrentOwnerID)

	_, err = svc.Unassign(adminCtx(), 10, dto.UnassignEquipmentDTO{Condition: "poor"})
	require.NoError(t, err)
	stored = equipmentRepo.items[10]
	assert.Equal(t, entities.StatusMaintenance, stored.Status)
	assert.Nil(t, stored.CurrentOwnerID)
}
