package reservation

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"atrium/infras/otel"
	"atrium/internal/domains/reservation/model"
	"atrium/internal/domains/reservation/model/dto"
	"atrium/internal/domains/reservation/service"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/timezone"
	"atrium/shared/validator"
	"atrium/transport/http/response"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reservations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Delete("/{id}", handler.CancelReservation)
	})
}

// CreateReservation books a room, expanding recurring requests into
// individual occurrences. Dates that could not be booked come back in
// the response instead of failing the request.
func (handler *Handler) CreateReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateReservationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create reservation")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetReservations lists reservations, filterable by room, date and
// status. Regular users only ever see their own reservations.
func (handler *Handler) GetReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	// Most recent start first.
	if queryParams.SortBy == "" {
		queryParams.SortBy = constant.DefaultValueSortBy
		queryParams.SortDir = constant.DefaultValueSortDir
	}

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if roomID := r.URL.Query().Get(constant.RequestParamRoomID); roomID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldRoomID,
			Operator: gDto.FilterOperatorEq,
			Value:    roomID,
			Table:    model.TableName,
		})
	}

	// Reservations starting on the given day.
	if date := r.URL.Query().Get(constant.RequestParamDate); date != "" {
		if day, err := timezone.Parse(constant.DateFormat, date); err == nil {
			filterGroup.Filters = append(filterGroup.Filters,
				gDto.Filter{
					Field:    model.FieldStartAt,
					Operator: gDto.FilterOperatorGreaterEq,
					Value:    day,
					Table:    model.TableName,
				},
				gDto.Filter{
					Field:    model.FieldStartAt,
					Operator: gDto.FilterOperatorLess,
					Value:    day.AddDate(0, 0, 1),
					Table:    model.TableName,
				},
			)
		}
	}

	if status := r.URL.Query().Get(constant.RequestParamStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, statusFilters(status)...)
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// statusFilters translates a lifecycle status into range filters
// against the current time.
func statusFilters(status string) []any {
	now := timezone.Now()

	switch status {
	case constant.ReservationStatusNow:
		return []any{
			gDto.Filter{
				Field:    model.FieldStartAt,
				Operator: gDto.FilterOperatorLessEq,
				Value:    now,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndAt,
				Operator: gDto.FilterOperatorGreater,
				Value:    now,
				Table:    model.TableName,
			},
		}
	case constant.ReservationStatusFuture:
		return []any{
			gDto.Filter{
				Field:    model.FieldStartAt,
				Operator: gDto.FilterOperatorGreater,
				Value:    now,
				Table:    model.TableName,
			},
		}
	case constant.ReservationStatusDone:
		return []any{
			gDto.Filter{
				Field:    model.FieldEndAt,
				Operator: gDto.FilterOperatorLessEq,
				Value:    now,
				Table:    model.TableName,
			},
		}
	}

	return nil
}

func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reservation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// CancelReservation removes a single occurrence, or the whole series
// when scope=series is passed and the reservation is recurring.
func (handler *Handler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	cancelScope := r.URL.Query().Get(constant.RequestParamScope)
	if cancelScope == "" {
		cancelScope = constant.CancelScopeSingle
	}

	if cancelScope != constant.CancelScopeSingle && cancelScope != constant.CancelScopeSeries {
		err := validator.ValidateVar(cancelScope, "oneof=single series")
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid cancel scope")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Cancel(ctx, id, cancelScope)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Reservation cancelled successfully by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}
