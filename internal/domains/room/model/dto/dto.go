package dto

import (
	"github.com/google/uuid"

	"atrium/internal/domains/room/model"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

type CreateRoomRequest struct {
	Name  string  `json:"name"  validate:"required,max=100"`
	Floor *string `json:"floor" validate:"omitempty,max=50"`
}

func (c *CreateRoomRequest) ToModel(user, floor string, rank int) model.Room {
	return model.Room{
		ID:    uuid.NewString(),
		Name:  c.Name,
		Floor: floor,
		Rank:  rank,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name  string  `db:"name"  json:"name"  validate:"omitempty,max=100"`
	Floor *string `db:"floor" json:"floor" validate:"omitempty,max=50"`
}

type ReorderRoomsRequest struct {
	RoomIDs []string `json:"room_ids" validate:"required,min=1,dive,uuid4"`
}

type RoomResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Floor string `json:"floor"`
	Rank  int    `json:"rank"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Name = model.Name
	r.Floor = model.Floor
	r.Rank = model.Rank
	r.Metadata.FromModel(model.Metadata)
}

type RoomStatusResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Floor         string  `json:"floor"`
	Rank          int     `json:"rank"`
	Occupied      bool    `json:"occupied"`
	ReservationID *string `json:"reservation_id,omitempty"`
	Subject       *string `json:"subject,omitempty"`
	RequesterName *string `json:"requester_name,omitempty"`
	OccupiedUntil *string `json:"occupied_until,omitempty"`
}

func (r *RoomStatusResponse) FromModel(status model.RoomStatus) {
	r.ID = status.ID
	r.Name = status.Name
	r.Floor = status.Floor
	r.Rank = status.Rank
	r.Occupied = status.Occupied()
	r.ReservationID = status.ReservationID
	r.Subject = status.Subject
	r.RequesterName = status.RequesterName

	if status.OccupiedUntil != nil {
		until := timezone.Format(*status.OccupiedUntil, constant.TimestampFormat)
		r.OccupiedUntil = &until
	}
}

type GetRoomStatusesResponse struct {
	Rooms []RoomStatusResponse `json:"rooms"`
}

func (r *GetRoomStatusesResponse) FromModels(statuses []model.RoomStatus) {
	r.Rooms = make([]RoomStatusResponse, len(statuses))
	for i, status := range statuses {
		r.Rooms[i].FromModel(status)
	}
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
