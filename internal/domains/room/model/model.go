package model

import "kost/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID           = "id"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldSize         = "size"
	FieldFacilities   = "facilities"
	FieldImage        = "image"
	FieldPriceWeekly  = "price_weekly"
	FieldPriceMonthly = "price_monthly"
	FieldIsAvailable  = "is_available"
)

// Room is a rentable unit. IsAvailable is derived from bookings: the system
// only ever sets it to false for an active confirmed booking, admins own true.
type Room struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Description  string `db:"description"`
	Size         string `db:"size"`
	Facilities   string `db:"facilities"`
	Image        string `db:"image"`
	PriceWeekly  int64  `db:"price_weekly"`
	PriceMonthly int64  `db:"price_monthly"`
	IsAvailable  bool   `db:"is_available"`
	model.Metadata
}
