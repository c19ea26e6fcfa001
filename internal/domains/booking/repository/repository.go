package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"kost/infras/otel"
	"kost/infras/postgres"
	"kost/internal/domains/booking/model"
	"kost/shared/constant"
	gDto "kost/shared/dto"
	"kost/shared/logger"
	gRepo "kost/shared/repository"
	"time"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdate(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ActiveConfirmedRoomIDs(ctx context.Context, now time.Time) ([]string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) ActiveConfirmedRoomIDs(ctx context.Context, now time.Time) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.ActiveConfirmedRoomIDs")
	defer scope.End()

	query := fmt.Sprintf("SELECT DISTINCT %s FROM %s WHERE %s = $1 AND %s >= $2",
		model.FieldRoomID, model.TableName, model.FieldStatus, model.FieldEndDate)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var roomIDs []string
	if err := r.db.Reader(ctx).SelectContext(ctx, &roomIDs, query, model.StatusConfirmed, now); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to list active confirmed rooms: %w", err)
	}

	return roomIDs, nil
}
