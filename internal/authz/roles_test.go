package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "team_lead", "user"} {
		role, ok := ParseRole(valid)
		assert.True(t, ok)
		assert.Equal(t, valid, string(role))
	}

	_, ok := ParseRole("superuser")
	assert.False(t, ok)
	_, ok = ParseRole("")
	assert.False(t, ok)
}

func TestCapabilityMatrix(t *testing.T) {
	cases := []struct {
		role       Role
		capability Capability
		want       bool
	}{
		{RoleAdmin, EquipmentManage, true},
		{RoleAdmin, EquipmentDecomm, true},
		{RoleAdmin, UsersManage, true},
		{RoleAdmin, BillingManage, true},

		{RoleTeamLead, EquipmentManage, true},
		{RoleTeamLead, EquipmentDecomm, false},
		{RoleTeamLead, UsersManage, false},
		{RoleTeamLead, BillingView, true},
		{RoleTeamLead, BillingManage, false},

		{RoleUser, EquipmentView, true},
		{RoleUser, EquipmentManage, false},
		{RoleUser, StatsView, true},
		{RoleUser, ExportRun, true},
		{RoleUser, BillingView, false},
		{RoleUser, MaintenanceWrite, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Can(tc.role, tc.capability),
			"роль %s, право %s", tc.role, tc.capability)
	}
}

func TestCanAny(t *testing.T) {
	assert.True(t, CanAny(RoleUser, EquipmentManage, EquipmentView))
	assert.False(t, CanAny(RoleUser, EquipmentManage, EquipmentDecomm))
	assert.False(t, CanAny(RoleUser))
}

func TestUnknownRoleHasNoCapabilities(t *testing.T) {
	assert.False(t, Can(Role("ghost"), EquipmentView))
}
