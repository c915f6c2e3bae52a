package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/reservation/model"
	"atrium/internal/interval"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/logger"
	gRepo "atrium/shared/repository"
)

type Reservation interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	HasOverlap(ctx context.Context, roomID string, iv interval.Interval) (bool, error)
	CreateBatch(ctx context.Context, models []model.Reservation) error
	DeleteSeries(ctx context.Context, seriesID string) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// HasOverlap reports whether any reservation in the room intersects the
// half-open interval. Touching intervals do not count.
func (repo *repositoryImpl) HasOverlap(ctx context.Context, roomID string, iv interval.Interval) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.HasOverlap")
	defer scope.End()

	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = :room_id AND %s < :end_at AND %s > :start_at)",
		model.TableName, model.FieldRoomID, model.FieldStartAt, model.FieldEndAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	args := map[string]any{
		"room_id":  roomID,
		"start_at": iv.Start,
		"end_at":   iv.End,
	}

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to prepare overlap check: %w", err)
	}
	defer prepare.Close()

	exists := false
	if err := prepare.GetContext(ctx, &exists, args); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to check reservation overlap: %w", err)
	}

	return exists, nil
}

// CreateBatch persists all occurrences of a booking inside one transaction,
// so a series is either stored whole or not at all.
func (repo *repositoryImpl) CreateBatch(ctx context.Context, models []model.Reservation) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateBatch")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(models) == 0 {
		return nil
	}

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin reservation transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = repo.InsertBulkTx(ctx, tx, models); err != nil {
		return fmt.Errorf("failed to insert reservations: %w", err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reservation transaction: %w", err)
	}

	return nil
}

// DeleteSeries removes every occurrence sharing the series id and returns
// how many rows went away.
func (repo *repositoryImpl) DeleteSeries(ctx context.Context, seriesID string) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.DeleteSeries")
	defer scope.End()

	query := fmt.Sprintf("DELETE FROM %s WHERE %s = :series_id", model.TableName, model.FieldSeriesID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := repo.db.Write.NamedExecContext(ctx, query, map[string]any{"series_id": seriesID})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to delete reservation series: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to read deleted row count: %w", err)
	}

	return int(affected), nil
}
