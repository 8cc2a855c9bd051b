package authz

// Role - закрытое перечисление ролей. Никаких сравнений "сырых" строк
// в бизнес-логике: строка из БД парсится один раз через ParseRole.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleTeamLead Role = "team_lead"
	RoleUser     Role = "user"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleTeamLead, RoleUser:
		return Role(s), true
	}
	return "", false
}

func (r Role) String() string { return string(r) }

// Capability - именованное право на операцию. Права закреплены за ролями
// статически (см. rolePermissions), без таблицы permissions в БД.
type Capability string

const (
	EquipmentView    Capability = "equipment:view"
	EquipmentManage  Capability = "equipment:manage"  // создание, правка, assign/unassign
	EquipmentDecomm  Capability = "equipment:decomm"  // административные переводы: lost/stolen/decommissioned
	MaintenanceWrite Capability = "maintenance:write" // записи о ТО
	BillingView      Capability = "billing:view"
	BillingManage    Capability = "billing:manage"
	UsersManage      Capability = "users:manage"
	StatsView        Capability = "stats:view"
	ExportRun        Capability = "export:run"
)

var rolePermissions = map[Role]map[Capability]bool{
	RoleAdmin: {
		EquipmentView: true, EquipmentManage: true, EquipmentDecomm: true,
		MaintenanceWrite: true, BillingView: true, BillingManage: true,
		UsersManage: true, StatsView: true, ExportRun: true,
	},
	RoleTeamLead: {
		EquipmentView: true, EquipmentManage: true,
		MaintenanceWrite: true, BillingView: true,
		StatsView: true, ExportRun: true,
	},
	RoleUser: {
		EquipmentView: true, StatsView: true, ExportRun: true,
	},
}

// Can проверяет, есть ли у роли указанное право.
func Can(role Role, capability Capability) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		return false
	}
	return perms[capability]
}

// CanAny - право по принципу "хотя бы одно из".
func CanAny(role Role, capabilities ...Capability) bool {
	for _, c := range capabilities {
		if Can(role, c) {
			return true
		}
	}
	return false
}
