package dto

type CreateUserDTO struct {
	Fio      string `json:"fio" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=admin team_lead user"`
}

type UpdateUserRoleDTO struct {
	Role string `json:"role" validate:"required,oneof=admin team_lead user"`
}
