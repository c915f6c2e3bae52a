package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"atrium/config"
	"atrium/infras/kafka"
	"atrium/infras/otel"
	"atrium/internal/domains/reservation/model"
	"atrium/internal/domains/reservation/model/dto"
	"atrium/internal/domains/reservation/repository"
	roomModel "atrium/internal/domains/room/model"
	roomRepo "atrium/internal/domains/room/repository"
	"atrium/internal/interval"
	"atrium/internal/recurrence"
	"atrium/shared"
	"atrium/shared/cache"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	"atrium/shared/timezone"
)

const (
	cacheGetReservation    = "reservation:get"
	cacheGetAllReservation = "reservation:gets"
	cacheCountReservation  = "reservation:count"

	eventReservationCreated   = "reservation.created"
	eventReservationCancelled = "reservation.cancelled"
)

type Reservation interface {
	Create(ctx context.Context, req dto.CreateReservationRequest) (dto.CreateReservationResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReservationsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ReservationResponse, error)
	Cancel(ctx context.Context, id, scope string) (dto.CancelReservationResponse, error)
}

type serviceImpl struct {
	repo      repository.Reservation
	roomRepo  roomRepo.Room
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	publisher kafka.Publisher
}

func New(repo repository.Reservation, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, publisher kafka.Publisher) Reservation {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		publisher: publisher,
	}
}

// Create books a room for every occurrence the recurrence pattern expands
// to. Occurrences that clash with existing reservations, or with earlier
// occurrences of the same request, are reported back by date instead of
// failing the whole request. Accepted occurrences are stored in a single
// transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReservationRequest) (res dto.CreateReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	roomExists, err := s.roomRepo.Exist(ctx, shared.FilterByID(req.RoomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if room exists")

		return res, fmt.Errorf("failed to check if room exists: %w", err)
	}

	if !roomExists {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	pattern, err := recurrence.ParsePattern(req.Recurrence)
	if err != nil {
		return res, err
	}

	baseDate, err := timezone.Parse(constant.DateFormat, req.Date)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date %q", req.Date)) // nolint:wrapcheck
	}

	startTime, err := timezone.Parse(constant.TimeOfDayFormat, req.StartTime)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid start time %q", req.StartTime)) // nolint:wrapcheck
	}

	endTime, err := timezone.Parse(constant.TimeOfDayFormat, req.EndTime)
	if err != nil {
		return res, failure.BadRequestFromString(fmt.Sprintf("invalid end time %q", req.EndTime)) // nolint:wrapcheck
	}

	var seriesID *string
	if pattern.IsRecurring() {
		id := uuid.NewString()
		seriesID = &id
	}

	dates := recurrence.Expand(pattern, baseDate, req.Count)

	accepted := make([]model.Reservation, 0, len(dates))
	rejected := []string{}

	for _, date := range dates {
		iv := interval.New(date, startTime, endTime)

		conflict, err := s.repo.HasOverlap(ctx, req.RoomID, iv)
		if err != nil {
			log.Error().Err(err).Msg("failed to check reservation overlap")

			return res, fmt.Errorf("failed to check reservation overlap: %w", err)
		}

		// An occurrence can also clash with an earlier one from this
		// same request, e.g. a monthly series clamped onto the base date.
		for _, prior := range accepted {
			if prior.Interval().Overlaps(iv) {
				conflict = true
				break
			}
		}

		if conflict {
			rejected = append(rejected, date.Format(constant.DateFormat))
			continue
		}

		accepted = append(accepted, req.ToModel(userID, iv, seriesID))
	}

	if err = s.repo.CreateBatch(ctx, accepted); err != nil {
		log.Error().Err(err).Msg("failed to create reservations")

		return res, fmt.Errorf("failed to create reservations: %w", err)
	}

	res.FromModels(accepted, rejected, seriesID)

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, eventReservationCreated, accepted)

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReservationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.restrictToOwner(ctx, filter)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservations")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservations")

		return res, fmt.Errorf("failed to get reservations: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservations to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter = s.restrictToOwner(ctx, filter)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReservation, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reservation count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reservations")

		return res, fmt.Errorf("failed to count reservations: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reservation count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReservationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !s.isAdmin(ctx) {
		userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
		if reservation.UserID != userID {
			return res, failure.Forbidden("reservation belongs to another user") // nolint:wrapcheck
		}
	}

	res.FromModel(reservation)

	return res, nil
}

// Cancel removes one occurrence, or the whole series when scope is
// "series" and the reservation is recurring. Only the owner or an
// administrator may cancel.
func (s *serviceImpl) Cancel(ctx context.Context, id, scope string) (res dto.CancelReservationResponse, err error) {
	ctx, otelScope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer otelScope.End()
	defer otelScope.TraceIfError(err)

	reservation, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reservation")

		return res, fmt.Errorf("failed to get reservation: %w", err)
	}

	if reservation.ID == constant.Empty {
		return res, failure.NotFound("reservation not found") // nolint:wrapcheck
	}

	if !s.isAdmin(ctx) {
		userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
		if reservation.UserID != userID {
			return res, failure.Forbidden("reservation belongs to another user") // nolint:wrapcheck
		}
	}

	if scope == constant.CancelScopeSeries && reservation.IsRecurring() {
		removed, err := s.repo.DeleteSeries(ctx, *reservation.SeriesID)
		if err != nil {
			log.Error().Err(err).Msg("failed to delete reservation series")

			return res, fmt.Errorf("failed to delete reservation series: %w", err)
		}

		res.RemovedCount = removed
	} else {
		if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation")

			return res, fmt.Errorf("failed to delete reservation: %w", err)
		}

		res.RemovedCount = 1
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.publishEvent(c, eventReservationCancelled, []model.Reservation{reservation})

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetReservation, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete reservation from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllReservation)
		shared.InvalidateCaches(c, s.cache, cacheCountReservation)
	}()

	return res, nil
}

// restrictToOwner forces non-admin listings down to the caller's own
// reservations regardless of the filters the handler built.
func (s *serviceImpl) restrictToOwner(ctx context.Context, filter gDto.FilterGroup) gDto.FilterGroup {
	if s.isAdmin(ctx) {
		return filter
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ownFilter := gDto.Filter{
		Field:    model.FieldUserID,
		Operator: gDto.FilterOperatorEq,
		Value:    userID,
		Table:    model.TableName,
	}

	if len(filter.Filters) == 0 {
		return gDto.FilterGroup{
			Filters:  []any{ownFilter},
			Operator: gDto.FilterGroupOperatorAnd,
		}
	}

	return gDto.FilterGroup{
		Filters:  []any{filter, ownFilter},
		Operator: gDto.FilterGroupOperatorAnd,
	}
}

func (s *serviceImpl) isAdmin(ctx context.Context) bool {
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	return role == constant.RoleAdmin
}

type reservationEvent struct {
	Event     string  `json:"event"`
	ID        string  `json:"id"`
	RoomID    string  `json:"room_id"`
	UserID    string  `json:"user_id"`
	Subject   string  `json:"subject"`
	StartAt   string  `json:"start_at"`
	EndAt     string  `json:"end_at"`
	SeriesID  *string `json:"series_id,omitempty"`
	EmittedAt string  `json:"emitted_at"`
}

func (s *serviceImpl) publishEvent(ctx context.Context, event string, reservations []model.Reservation) {
	if len(reservations) == 0 {
		return
	}

	messages := make([]kafka.Message, len(reservations))
	for i, reservation := range reservations {
		messages[i] = kafka.Message{
			Key: reservation.ID,
			Value: reservationEvent{
				Event:     event,
				ID:        reservation.ID,
				RoomID:    reservation.RoomID,
				UserID:    reservation.UserID,
				Subject:   reservation.Subject,
				StartAt:   timezone.Format(reservation.StartAt, constant.TimestampFormat),
				EndAt:     timezone.Format(reservation.EndAt, constant.TimestampFormat),
				SeriesID:  reservation.SeriesID,
				EmittedAt: timezone.Format(timezone.Now(), constant.TimestampFormat),
			},
		}
	}

	if err := s.publisher.SendMessages(ctx, s.cfg.External.Kafka.Topic, messages...); err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to publish reservation event")
	}
}
