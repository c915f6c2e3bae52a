package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atrium/config"
	"atrium/infras/otel/mocks"
	roomMocks "atrium/internal/domains/room/mocks"
	"atrium/internal/domains/room/model"
	"atrium/internal/domains/room/model/dto"
	"atrium/internal/domains/room/service"
	cacheMocks "atrium/shared/cache/mocks"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

func TestRoomService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.App.DefaultFloor = "4º Andar"

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	floor := "3º Andar"

	tests := []struct {
		name      string
		req       dto.CreateRoomRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation with explicit floor",
			req: dto.CreateRoomRequest{
				Name:  "Sala A",
				Floor: &floor,
			},
			setupMock: func() {
				mockRepo.EXPECT().
					NextRank(gomock.Any()).
					Return(4, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, "3º Andar", room.Floor)
						assert.Equal(t, 4, room.Rank)
						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "default floor applied",
			req: dto.CreateRoomRequest{
				Name: "Sala B",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					NextRank(gomock.Any()).
					Return(0, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, room model.Room) error {
						assert.Equal(t, "4º Andar", room.Floor)
						return nil
					})

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "duplicate name maps to conflict",
			req: dto.CreateRoomRequest{
				Name: "Sala A",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					NextRank(gomock.Any()).
					Return(5, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req: dto.CreateRoomRequest{
				Name: "Sala C",
			},
			setupMock: func() {
				mockRepo.EXPECT().
					NextRank(gomock.Any()).
					Return(5, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name       string
		params     gDto.QueryParams
		filter     gDto.FilterGroup
		setupMock  func()
		wantErr    bool
		wantResult dto.GetRoomsResponse
	}{
		{
			name: "successful get all",
			params: gDto.QueryParams{
				Limit: 10,
				Page:  1,
			},
			filter: gDto.FilterGroup{},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(2, nil)

				rooms := []model.Room{
					{
						ID:    "room-1",
						Name:  "Sala A",
						Floor: "4º Andar",
						Rank:  0,
						Metadata: gModel.Metadata{
							CreatedAt:  timezone.Now(),
							ModifiedAt: timezone.Now(),
							CreatedBy:  "test-user",
							ModifiedBy: "test-user",
						},
					},
					{
						ID:    "room-2",
						Name:  "Sala B",
						Floor: "5º Andar",
						Rank:  1,
					},
				}

				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(rooms, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
			wantResult: dto.GetRoomsResponse{
				TotalData: 2,
				TotalPage: 1,
			},
		},
		{
			name: "count error",
			params: gDto.QueryParams{
				Limit: 10,
				Page:  1,
			},
			filter: gDto.FilterGroup{},
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss")).
					Times(2)

				mockRepo.EXPECT().
					Count(gomock.Any(), gomock.Any()).
					Return(0, errors.New("count error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background(), tt.params, tt.filter)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantResult.TotalData, result.TotalData)
				assert.Equal(t, tt.wantResult.TotalPage, result.TotalPage)
			}
		})
	}
}

func TestRoomService_Reorder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		req       dto.ReorderRoomsRequest
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful reorder",
			req: dto.ReorderRoomsRequest{
				RoomIDs: []string{"room-2", "room-1", "room-3"},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Reorder(gomock.Any(), []string{"room-2", "room-1", "room-3"}, "test-user-id").
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.ReorderRoomsRequest{
				RoomIDs: []string{"room-1"},
			},
			setupMock: func() {
				mockRepo.EXPECT().
					Reorder(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Reorder(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
	}{
		{
			name: "successful deletion",
			id:   "room-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			wantErr: false,
		},
		{
			name: "room not found",
			id:   "missing",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: true,
		},
		{
			name: "delete error",
			id:   "room-1",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("delete error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRoomService_GetStatuses(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := roomMocks.NewMockRoom(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)

	reservationID := "res-1"
	subject := "Weekly sync"
	until := timezone.Now().Add(30 * time.Minute)

	t.Run("mixes occupied and free rooms in rank order", func(t *testing.T) {
		mockRepo.EXPECT().
			Statuses(gomock.Any(), gomock.Any()).
			Return([]model.RoomStatus{
				{
					Room:          model.Room{ID: "room-1", Name: "Aurora", Rank: 0},
					ReservationID: &reservationID,
					Subject:       &subject,
					OccupiedUntil: &until,
				},
				{
					Room: model.Room{ID: "room-2", Name: "Boreal", Rank: 1},
				},
			}, nil)

		res, err := svc.GetStatuses(context.Background())

		assert.NoError(t, err)
		assert.Len(t, res.Rooms, 2)
		assert.True(t, res.Rooms[0].Occupied)
		assert.Equal(t, &subject, res.Rooms[0].Subject)
		assert.NotNil(t, res.Rooms[0].OccupiedUntil)
		assert.False(t, res.Rooms[1].Occupied)
		assert.Nil(t, res.Rooms[1].ReservationID)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			Statuses(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("query error"))

		_, err := svc.GetStatuses(context.Background())

		assert.Error(t, err)
	})
}
