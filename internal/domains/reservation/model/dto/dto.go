package dto

import (
	"time"

	"github.com/google/uuid"

	"atrium/internal/domains/reservation/model"
	"atrium/internal/interval"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type CreateReservationRequest struct {
	RoomID        string `json:"room_id"        validate:"required,uuid4"`
	Subject       string `json:"subject"        validate:"required,max=200"`
	RequesterName string `json:"requester_name" validate:"required,max=100"`
	Department    string `json:"department"     validate:"required,max=100"`
	Phone         string `json:"phone"          validate:"required,max=30"`
	Date          string `json:"date"           validate:"required,calendardate"`
	StartTime     string `json:"start_time"     validate:"required,timeofday"`
	EndTime       string `json:"end_time"       validate:"required,timeofday"`
	Recurrence    string `json:"recurrence"     validate:"omitempty,oneof=none weekly biweekly monthly"`
	Count         int    `json:"count"          validate:"omitempty,min=1"`
}

// ToModel builds the occurrence of the request that spans iv, stamped with
// the owning user and an optional series id.
func (c *CreateReservationRequest) ToModel(userID string, iv interval.Interval, seriesID *string) model.Reservation {
	return model.Reservation{
		ID:            uuid.NewString(),
		RoomID:        c.RoomID,
		UserID:        userID,
		Subject:       c.Subject,
		RequesterName: c.RequesterName,
		Department:    c.Department,
		Phone:         c.Phone,
		StartAt:       iv.Start,
		EndAt:         iv.End,
		SeriesID:      seriesID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type ReservationResponse struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"room_id"`
	RoomName      string  `json:"room_name"`
	UserID        string  `json:"user_id"`
	Subject       string  `json:"subject"`
	RequesterName string  `json:"requester_name"`
	Department    string  `json:"department,omitempty"`
	Phone         string  `json:"phone,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
	EndTime       string  `json:"end_time"`
	SeriesID      *string `json:"series_id,omitempty"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomName = model.RoomName
	r.UserID = model.UserID
	r.Subject = model.Subject
	r.RequesterName = model.RequesterName
	r.Department = model.Department
	r.Phone = model.Phone
	r.Date = timezone.Format(model.StartAt, constant.DateFormat)
	r.StartTime = timezone.Format(model.StartAt, constant.TimeOfDayFormat)
	r.EndTime = timezone.Format(model.EndAt, constant.TimeOfDayFormat)
	r.SeriesID = model.SeriesID
	r.Status = statusOf(model, timezone.Now())
	r.Metadata.FromModel(model.Metadata)
}

func statusOf(model model.Reservation, now time.Time) string {
	switch {
	case !model.EndAt.After(now):
		return constant.ReservationStatusDone
	case model.StartAt.After(now):
		return constant.ReservationStatusFuture
	default:
		return constant.ReservationStatusNow
	}
}

// CreateReservationResponse reports the outcome of a booking request.
// Accepted occurrences were persisted; RejectedDates lists the calendar
// dates whose slot was already taken.
type CreateReservationResponse struct {
	Accepted      []ReservationResponse `json:"accepted"`
	RejectedDates []string              `json:"rejected_dates"`
	SeriesID      *string               `json:"series_id,omitempty"`
}

func (r *CreateReservationResponse) FromModels(models []model.Reservation, rejectedDates []string, seriesID *string) {
	r.RejectedDates = rejectedDates
	if r.RejectedDates == nil {
		r.RejectedDates = []string{}
	}
	r.SeriesID = seriesID

	r.Accepted = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Accepted[i].FromModel(mod)
	}
}

type CancelReservationResponse struct {
	RemovedCount int `json:"removed_count"`
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
