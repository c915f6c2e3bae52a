package model

import (
	"time"

	"atrium/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID    = "id"
	FieldName  = "name"
	FieldFloor = "floor"
	FieldRank  = "rank"
)

// Rank is the zero-based display position of the room. Room listings are
// always ordered by rank ascending.
type Room struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Floor string `db:"floor"`
	Rank  int    `db:"rank"`
	model.Metadata
}

// RoomStatus pairs a room with the reservation occupying it at a point in
// time. The reservation columns are nil when the room is free.
type RoomStatus struct {
	Room
	ReservationID *string    `db:"reservation_id"`
	Subject       *string    `db:"subject"`
	RequesterName *string    `db:"requester_name"`
	OccupiedUntil *time.Time `db:"occupied_until"`
}

// Occupied reports whether a reservation covers the room right now.
func (s RoomStatus) Occupied() bool {
	return s.ReservationID != nil
}
