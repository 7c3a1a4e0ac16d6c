package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/pkg/dbmetrics"
	"github.com/salonix/SLX-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий каталога: услуги, комбо, категории, скидки
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetServiceByID получает услугу по ID
func (r *Repository) GetServiceByID(ctx context.Context, salonID, serviceID int64) (*domain.SalonService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "salon_id", "category_id", "name", "description",
		"duration_minutes", "price", "is_active",
	).
		From("services").
		Where(squirrel.Eq{"id": serviceID, "salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - build select query: %v", ErrBuildQuery, err)
	}

	var service domain.SalonService
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&service.ID,
		&service.SalonID,
		&service.CategoryID,
		&service.Name,
		&service.Description,
		&service.DurationMinutes,
		&service.Price,
		&service.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceByID - scan service: %v", ErrScanRow, err)
	}

	return &service, nil
}

// ListActiveServices получает активные услуги салона
// Сортировка: по позиции категории, затем по имени
func (r *Repository) ListActiveServices(ctx context.Context, salonID int64) ([]*domain.SalonService, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id", "s.salon_id", "s.category_id", "s.name", "s.description",
		"s.duration_minutes", "s.price", "s.is_active",
	).
		From("services s").
		LeftJoin("categories c ON c.id = s.category_id").
		Where(squirrel.Eq{"s.salon_id": salonID, "s.is_active": true}).
		OrderBy("c.position ASC NULLS LAST, s.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	services := make([]*domain.SalonService, 0)
	for rows.Next() {
		var service domain.SalonService
		err := rows.Scan(
			&service.ID,
			&service.SalonID,
			&service.CategoryID,
			&service.Name,
			&service.Description,
			&service.DurationMinutes,
			&service.Price,
			&service.IsActive,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveServices - scan row: %v", ErrScanRow, err)
		}
		services = append(services, &service)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveServices - rows error: %v", ErrScanRow, err)
	}

	return services, nil
}

// GetComboByID получает комбо с компонентами
func (r *Repository) GetComboByID(ctx context.Context, salonID, comboID int64) (*domain.Combo, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "price", "is_active").
		From("combos").
		Where(squirrel.Eq{"id": comboID, "salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetComboByID - build select query: %v", ErrBuildQuery, err)
	}

	var combo domain.Combo
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&combo.ID,
		&combo.SalonID,
		&combo.Name,
		&combo.Price,
		&combo.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, ErrComboNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetComboByID - scan combo: %v", ErrScanRow, err)
	}

	components, err := r.getComboComponents(ctx, comboID)
	if err != nil {
		return nil, err
	}
	combo.Components = components

	return &combo, nil
}

// getComboComponents получает компоненты комбо в порядке выполнения
func (r *Repository) getComboComponents(ctx context.Context, comboID int64) ([]domain.ComboComponent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("service_id", "quantity", "position").
		From("combo_components").
		Where(squirrel.Eq{"combo_id": comboID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getComboComponents - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getComboComponents - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	components := make([]domain.ComboComponent, 0)
	for rows.Next() {
		var component domain.ComboComponent
		if err := rows.Scan(&component.ServiceID, &component.Quantity, &component.Position); err != nil {
			return nil, fmt.Errorf("%w: getComboComponents - scan row: %v", ErrScanRow, err)
		}
		components = append(components, component)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getComboComponents - rows error: %v", ErrScanRow, err)
	}

	return components, nil
}

// GetServiceDurations получает длительности услуг по списку ID
// Используется для расчёта суммарной длительности комбо
func (r *Repository) GetServiceDurations(ctx context.Context, serviceIDs []int64) (map[int64]int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "duration_minutes").
		From("services").
		Where(squirrel.Eq{"id": serviceIDs}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceDurations - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetServiceDurations - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	durations := make(map[int64]int, len(serviceIDs))
	for rows.Next() {
		var id int64
		var duration int
		if err := rows.Scan(&id, &duration); err != nil {
			return nil, fmt.Errorf("%w: GetServiceDurations - scan row: %v", ErrScanRow, err)
		}
		durations[id] = duration
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetServiceDurations - rows error: %v", ErrScanRow, err)
	}

	return durations, nil
}

// ListCategories получает категории салона в порядке отображения
func (r *Repository) ListCategories(ctx context.Context, salonID int64) ([]*domain.Category, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "name", "position").
		From("categories").
		Where(squirrel.Eq{"salon_id": salonID}).
		OrderBy("position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCategories - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.SalonID, &category.Name, &category.Position); err != nil {
			return nil, fmt.Errorf("%w: ListCategories - scan row: %v", ErrScanRow, err)
		}
		categories = append(categories, &category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCategories - rows error: %v", ErrScanRow, err)
	}

	return categories, nil
}

// GetActiveDiscountForItem получает активную скидку на позицию, если есть
func (r *Repository) GetActiveDiscountForItem(ctx context.Context, salonID, itemID int64, itemType domain.ItemType) (*domain.Discount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "salon_id", "item_id", "item_type", "percent", "is_active").
		From("discounts").
		Where(squirrel.Eq{
			"salon_id":  salonID,
			"item_id":   itemID,
			"item_type": itemType,
			"is_active": true,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveDiscountForItem - build select query: %v", ErrBuildQuery, err)
	}

	var discount domain.Discount
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&discount.ID,
		&discount.SalonID,
		&discount.ItemID,
		&discount.ItemType,
		&discount.Percent,
		&discount.IsActive,
	)

	if err == sql.ErrNoRows {
		return nil, nil // скидки нет - не ошибка
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveDiscountForItem - scan discount: %v", ErrScanRow, err)
	}

	return &discount, nil
}
