package dto

import (
	"kost/internal/domains/user/model"
	"kost/shared"
	"kost/shared/constant"
	gDto "kost/shared/dto"
)

type TenantResponse struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	Level      string  `json:"level"`
	FullName   *string `json:"full_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	IsVerified bool    `json:"is_verified"`
	LastLogin  string  `json:"last_login,omitempty"`
	Active     bool    `json:"active"`
	gDto.Metadata
}

func (r *TenantResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.Level = model.Level
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.IsVerified = model.IsVerified
	r.Active = model.Active

	if model.LastLogin != nil {
		r.LastLogin = model.LastLogin.Format(constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

// UpdateTenantRequest is an admin edit of a tenant account.
type UpdateTenantRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Phone    *string `db:"phone"     json:"phone,omitempty"     validate:"omitempty,e164"`
	Level    *string `db:"level"     json:"level,omitempty"     validate:"omitempty,oneof=admin user"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

type GetTenantsResponse struct {
	Tenants   []TenantResponse `json:"tenants"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetTenantsResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tenants = make([]TenantResponse, len(models))
	for i, mod := range models {
		r.Tenants[i].FromModel(mod)
	}
}
