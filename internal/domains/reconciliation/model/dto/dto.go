package dto

import (
	bookingModel "kost/internal/domains/booking/model"
)

// SyncResult reports one availability sync pass. Error is set instead of
// returning one so callers never fail because of a sync.
type SyncResult struct {
	ActiveRooms int      `json:"active_rooms"`
	Updated     int      `json:"updated"`
	RoomIDs     []string `json:"room_ids"`
	Error       string   `json:"error,omitempty"`
}

// GatewayResult describes what a gateway outcome did to its booking.
type GatewayResult struct {
	BookingID string              `json:"booking_id"`
	Status    bookingModel.Status `json:"status"`
	Changed   bool                `json:"changed"`
}
