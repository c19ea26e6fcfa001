package dto

import (
	"kost/internal/domains/room/model"
	"kost/shared"
	gDto "kost/shared/dto"
	gModel "kost/shared/model"
	"kost/shared/timezone"

	"github.com/google/uuid"
)

type CreateRoomRequest struct {
	Name         string `json:"name"          validate:"required,max=100"`
	Description  string `json:"description"   validate:"omitempty"`
	Size         string `json:"size"          validate:"omitempty,max=50"`
	Facilities   string `json:"facilities"    validate:"omitempty"`
	Image        string `json:"image"         validate:"omitempty,url"`
	PriceWeekly  int64  `json:"price_weekly"  validate:"omitempty,min=0"`
	PriceMonthly int64  `json:"price_monthly" validate:"required,gt=0"`
	IsAvailable  *bool  `json:"is_available"  validate:"omitempty"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.Room{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Description:  c.Description,
		Size:         c.Size,
		Facilities:   c.Facilities,
		Image:        c.Image,
		PriceWeekly:  c.PriceWeekly,
		PriceMonthly: c.PriceMonthly,
		IsAvailable:  available,
		Metadata:     gModel.NewMetadata(user, timezone.Now()),
	}
}

type UpdateRoomRequest struct {
	Name         string `db:"name"          json:"name"          validate:"omitempty,max=100"`
	Description  string `db:"description"   json:"description"   validate:"omitempty"`
	Size         string `db:"size"          json:"size"          validate:"omitempty,max=50"`
	Facilities   string `db:"facilities"    json:"facilities"    validate:"omitempty"`
	Image        string `db:"image"         json:"image"         validate:"omitempty,url"`
	PriceWeekly  *int64 `db:"price_weekly"  json:"price_weekly"  validate:"omitempty,min=0"`
	PriceMonthly *int64 `db:"price_monthly" json:"price_monthly" validate:"omitempty,gt=0"`
	IsAvailable  *bool  `db:"is_available"  json:"is_available"  validate:"omitempty"`
}

type RoomResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Size         string `json:"size"`
	Facilities   string `json:"facilities"`
	Image        string `json:"image"`
	PriceWeekly  int64  `json:"price_weekly"`
	PriceMonthly int64  `json:"price_monthly"`
	IsAvailable  bool   `json:"is_available"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.Size = model.Size
	r.Facilities = model.Facilities
	r.Image = model.Image
	r.PriceWeekly = model.PriceWeekly
	r.PriceMonthly = model.PriceMonthly
	r.IsAvailable = model.IsAvailable
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
