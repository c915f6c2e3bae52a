package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	reservationModel "atrium/internal/domains/reservation/model"
	"atrium/internal/domains/room/model"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/logger"
	gRepo "atrium/shared/repository"
	"atrium/shared/timezone"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	NextRank(ctx context.Context) (int, error)
	Statuses(ctx context.Context, at time.Time) ([]model.RoomStatus, error)
	Reorder(ctx context.Context, roomIDs []string, user string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// NextRank returns the rank a newly created room should take, one past the
// current highest.
func (repo *repositoryImpl) NextRank(ctx context.Context) (int, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.NextRank")
	defer scope.End()

	query := fmt.Sprintf("SELECT COALESCE(MAX(%s), -1) + 1 FROM %s", model.FieldRank, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var rank int
	if err := repo.db.Read.GetContext(ctx, &rank, query); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return 0, fmt.Errorf("failed to get next room rank: %w", err)
	}

	return rank, nil
}

// Statuses returns every room in display order together with the reservation
// occupying it at the given instant, if any. Conflict checks guarantee at most
// one reservation covers a room at a time, so the join yields one row per room.
func (repo *repositoryImpl) Statuses(ctx context.Context, at time.Time) (res []model.RoomStatus, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Statuses")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf(`SELECT %[1]s.*,
		%[2]s.id AS reservation_id,
		%[2]s.subject,
		%[2]s.requester_name,
		%[2]s.end_at AS occupied_until
	FROM %[1]s
	LEFT JOIN %[2]s ON %[2]s.%[3]s = %[1]s.%[4]s
		AND %[2]s.%[5]s <= $1 AND %[2]s.%[6]s > $1
	ORDER BY %[1]s.%[7]s ASC`,
		model.TableName,
		reservationModel.TableName,
		reservationModel.FieldRoomID,
		model.FieldID,
		reservationModel.FieldStartAt,
		reservationModel.FieldEndAt,
		model.FieldRank,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = repo.db.Read.SelectContext(ctx, &res, query, at); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get room statuses: %w", err)
	}

	return res, nil
}

// Reorder assigns each room the rank of its position in roomIDs, inside one
// transaction. IDs that match no room update zero rows and are ignored.
func (repo *repositoryImpl) Reorder(ctx context.Context, roomIDs []string, user string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Reorder")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin reorder transaction: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := timezone.Now()
	for rank, id := range roomIDs {
		fields := map[string]any{
			model.FieldRank:          rank,
			constant.FieldModifiedAt: now,
			constant.FieldModifiedBy: user,
		}

		if err = repo.UpdateTx(ctx, tx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to reorder room %s: %w", id, err)
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit reorder transaction: %w", err)
	}

	return nil
}
