package pets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/pkg/dbmetrics"
	"github.com/pawcare/PC-BookingWizard/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов к БД
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий питомцев.
// Справочные данные: читаются один раз при создании сессии мастера.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория питомцев
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByCustomer возвращает всех питомцев клиента
func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Pet, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"name",
		"species",
		"breed",
		"weight_kg",
	).
		From("pets").
		Where(squirrel.Eq{"customer_id": customerID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Pet, 0)
	for rows.Next() {
		var (
			pet    domain.Pet
			weight sql.NullFloat64
		)
		if err := rows.Scan(
			&pet.ID,
			&pet.CustomerID,
			&pet.Name,
			&pet.Species,
			&pet.Breed,
			&weight,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByCustomer - scan pet: %v", ErrScanRow, err)
		}
		if weight.Valid {
			pet.WeightKg = &weight.Float64
		}
		result = append(result, &pet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByCustomer - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}
