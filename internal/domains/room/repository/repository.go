package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"kost/infras/otel"
	"kost/infras/postgres"
	"kost/internal/domains/room/model"
	"kost/shared/constant"
	gDto "kost/shared/dto"
	"kost/shared/logger"
	gRepo "kost/shared/repository"
	"kost/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type Room interface {
	Insert(ctx context.Context, model model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Room, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	SetAvailability(ctx context.Context, id string, available bool, actor string) error
	MarkUnavailable(ctx context.Context, ids []string, actor string) ([]string, error)
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

func (r *repositoryImpl) SetAvailability(ctx context.Context, id string, available bool, actor string) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.SetAvailability")
	defer scope.End()

	query := fmt.Sprintf("UPDATE %s SET %s = $1, %s = $2, %s = $3 WHERE %s = $4",
		model.TableName, model.FieldIsAvailable, constant.FieldModifiedAt, constant.FieldModifiedBy, model.FieldID)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := r.db.Writer(ctx).ExecContext(ctx, query, available, timezone.Now(), actor, id); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to set room availability: %w", err)
	}

	return nil
}

// MarkUnavailable flips only rooms that are currently available and returns their ids.
func (r *repositoryImpl) MarkUnavailable(ctx context.Context, ids []string, actor string) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.MarkUnavailable")
	defer scope.End()

	if len(ids) == 0 {
		return nil, nil
	}

	exec := r.db.Writer(ctx)

	query, args, err := sqlx.In(fmt.Sprintf("UPDATE %s SET %s = false, %s = ?, %s = ? WHERE %s IN (?) AND %s = true RETURNING %s",
		model.TableName, model.FieldIsAvailable, constant.FieldModifiedAt, constant.FieldModifiedBy,
		model.FieldID, model.FieldIsAvailable, model.FieldID), timezone.Now(), actor, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build mark unavailable query: %w", err)
	}

	query = exec.Rebind(query)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var updated []string
	if err = exec.SelectContext(ctx, &updated, query, args...); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to mark rooms unavailable: %w", err)
	}

	return updated, nil
}
