package catalog

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/pawcare/PC-BookingWizard/internal/domain"
	"github.com/pawcare/PC-BookingWizard/pkg/psqlbuilder"
)

// Repository репозиторий каталога услуг клиники.
// Каталог — справочные данные: читается один раз при создании сессии
// мастера и в рамках сессии считается неизменяемым.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByClinic возвращает все услуги клиники вместе с таблицами
// размерных цен, упорядоченные по имени
func (r *Repository) ListByClinic(ctx context.Context, clinicID int64) ([]*domain.Service, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"clinic_id",
		"name",
		"duration_minutes",
		"base_price",
	).
		From("services").
		Where(squirrel.Eq{"clinic_id": clinicID}).
		OrderBy("name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByClinic - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByClinic - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	byID := make(map[int64]*domain.Service)

	for rows.Next() {
		var svc domain.Service
		if err := rows.Scan(
			&svc.ID,
			&svc.ClinicID,
			&svc.Name,
			&svc.DurationMinutes,
			&svc.BasePrice,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByClinic - scan service: %v", ErrScanRow, err)
		}
		svc.SizePricing = make(map[domain.SizeCategory]float64)
		services = append(services, &svc)
		byID[svc.ID] = &svc
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByClinic - iterate rows: %v", ErrScanRow, err)
	}

	if len(services) == 0 {
		return services, nil
	}

	if err := r.loadSizePrices(ctx, clinicID, byID); err != nil {
		return nil, err
	}

	return services, nil
}

// loadSizePrices подгружает размерные цены для переданных услуг.
// Записи с категорией вне закрытого множества пропускаются.
func (r *Repository) loadSizePrices(ctx context.Context, clinicID int64, byID map[int64]*domain.Service) error {
	serviceIDs := make([]int64, 0, len(byID))
	for id := range byID {
		serviceIDs = append(serviceIDs, id)
	}

	query, args, err := psqlbuilder.Select(
		"sp.service_id",
		"sp.size_category",
		"sp.price",
	).
		From("service_size_prices sp").
		Join("services s ON s.id = sp.service_id").
		Where(squirrel.Eq{"s.clinic_id": clinicID, "sp.service_id": serviceIDs}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: loadSizePrices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadSizePrices - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			serviceID int64
			category  string
			price     float64
		)
		if err := rows.Scan(&serviceID, &category, &price); err != nil {
			return fmt.Errorf("%w: loadSizePrices - scan row: %v", ErrScanRow, err)
		}

		size := domain.SizeCategory(category)
		if !size.IsValid() {
			continue
		}
		if svc, ok := byID[serviceID]; ok {
			svc.SizePricing[size] = price
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadSizePrices - iterate rows: %v", ErrScanRow, err)
	}

	return nil
}
