package dto

import (
	"github.com/google/uuid"

	"atrium/internal/domains/user/model"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin user"`
}

func (r *CreateUserRequest) ToModel(createdBy string, hashedPassword string) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleUser
	}

	return model.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Password: hashedPassword,
		Role:     role,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateUserRequest struct {
	Role *string `db:"role" json:"role,omitempty" validate:"omitempty,oneof=admin user"`
}

type UserResponse struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Role      string  `json:"role"`
	LastLogin *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Role = model.Role
	r.LastLogin = model.LastLogin
	r.Metadata.FromModel(model.Metadata)
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
