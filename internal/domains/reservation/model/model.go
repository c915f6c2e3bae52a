package model

import (
	"time"

	roomModel "atrium/internal/domains/room/model"
	"atrium/internal/interval"
	"atrium/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldUserID        = "user_id"
	FieldSubject       = "subject"
	FieldRequesterName = "requester_name"
	FieldDepartment    = "department"
	FieldPhone         = "phone"
	FieldStartAt       = "start_at"
	FieldEndAt         = "end_at"
	FieldSeriesID      = "series_id"
)

// Reservation occupies the half-open span [StartAt, EndAt) of a room.
// SeriesID is set on every occurrence of a recurring reservation and nil on
// one-off bookings. RoomName is read through the rooms join and never
// written.
type Reservation struct {
	ID            string    `db:"id"`
	RoomID        string    `db:"room_id"`
	UserID        string    `db:"user_id"`
	Subject       string    `db:"subject"`
	RequesterName string    `db:"requester_name"`
	Department    string    `db:"department"`
	Phone         string    `db:"phone"`
	StartAt       time.Time `db:"start_at"`
	EndAt         time.Time `db:"end_at"`
	SeriesID      *string   `db:"series_id"`
	RoomName      string    `db:"room_name" table:"rooms" column:"name"`
	model.Metadata
}

func (Reservation) GetJoinQuery() string {
	return "JOIN " + roomModel.TableName + " ON " + roomModel.TableName + ".id = " + TableName + ".room_id"
}

// Interval returns the time span the reservation occupies.
func (r Reservation) Interval() interval.Interval {
	return interval.Interval{Start: r.StartAt, End: r.EndAt}
}

// IsRecurring reports whether the reservation belongs to a series.
func (r Reservation) IsRecurring() bool {
	return r.SeriesID != nil
}
