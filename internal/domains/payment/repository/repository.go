package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"kost/infras/otel"
	"kost/infras/postgres"
	"kost/internal/domains/payment/model"
	"kost/shared/constant"
	gDto "kost/shared/dto"
	"kost/shared/logger"
	gRepo "kost/shared/repository"
	"strings"
)

type Payment interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Payment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	Upsert(ctx context.Context, payment model.Payment) (string, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Upsert inserts the payment or, when the booking already has an unsettled one,
// replaces its order, token and status. It returns the id of the stored row,
// or model.ErrPaymentSettled when the existing payment is already settled.
func (r *repositoryImpl) Upsert(ctx context.Context, payment model.Payment) (string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".payment.Upsert")
	defer scope.End()

	placeholders := make([]string, len(r.InsertColumns))
	for i, col := range r.InsertColumns {
		placeholders[i] = ":" + col
	}

	updated := []string{
		model.FieldOrderID,
		model.FieldGrossAmount,
		model.FieldStatus,
		model.FieldToken,
		model.FieldRedirectURL,
		constant.FieldModifiedAt,
		constant.FieldModifiedBy,
	}

	assignments := make([]string, len(updated))
	for i, col := range updated {
		assignments[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
	}

	// A settled row is never replaced; the conflict then returns no row.
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s WHERE %s.%s NOT IN ('%s', '%s') RETURNING %s",
		model.TableName,
		strings.Join(r.InsertColumns, ", "),
		strings.Join(placeholders, ", "),
		model.FieldBookingID,
		strings.Join(assignments, ", "),
		model.TableName,
		model.FieldStatus,
		model.TransactionSettlement,
		model.TransactionCapture,
		model.FieldID,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	stmt, err := r.db.Writer(ctx).PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return constant.Empty, fmt.Errorf("failed to prepare payment upsert: %w", err)
	}
	defer stmt.Close()

	var id string
	if err = stmt.GetContext(ctx, &id, payment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return constant.Empty, model.ErrPaymentSettled
		}

		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return constant.Empty, fmt.Errorf("failed to upsert payment: %w", err)
	}

	return id, nil
}
