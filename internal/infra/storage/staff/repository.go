package staff

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/pkg/dbmetrics"
	"github.com/salonix/SLX-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий сотрудников и их квалификаций
// Квалификации хранятся в связующей таблице employee_services
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сотрудников
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает сотрудника по ID вместе с набором квалификаций
func (r *Repository) GetByID(ctx context.Context, salonID, employeeID int64) (*domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"e.id",
		"e.salon_id",
		"e.full_name",
		"e.is_active",
		"COALESCE(array_agg(es.service_id) FILTER (WHERE es.service_id IS NOT NULL), '{}')",
	).
		From("employees e").
		LeftJoin("employee_services es ON es.employee_id = e.id").
		Where(squirrel.Eq{"e.id": employeeID, "e.salon_id": salonID}).
		GroupBy("e.id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var employee domain.Employee
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&employee.ID,
		&employee.SalonID,
		&employee.FullName,
		&employee.IsActive,
		pq.Array(&employee.QualifiedServiceIDs),
	)

	if err == sql.ErrNoRows {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan employee: %v", ErrScanRow, err)
	}

	return &employee, nil
}

// ListActiveBySalon получает активных сотрудников салона с квалификациями
// Порядок стабильный (по ID) - он определяет tie-break при сортировке слотов
func (r *Repository) ListActiveBySalon(ctx context.Context, salonID int64) ([]domain.Employee, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"e.id",
		"e.salon_id",
		"e.full_name",
		"e.is_active",
		"COALESCE(array_agg(es.service_id) FILTER (WHERE es.service_id IS NOT NULL), '{}')",
	).
		From("employees e").
		LeftJoin("employee_services es ON es.employee_id = e.id").
		Where(squirrel.Eq{"e.salon_id": salonID, "e.is_active": true}).
		GroupBy("e.id").
		OrderBy("e.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySalon - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySalon - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	employees := make([]domain.Employee, 0)
	for rows.Next() {
		var employee domain.Employee
		err := rows.Scan(
			&employee.ID,
			&employee.SalonID,
			&employee.FullName,
			&employee.IsActive,
			pq.Array(&employee.QualifiedServiceIDs),
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveBySalon - scan row: %v", ErrScanRow, err)
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveBySalon - rows error: %v", ErrScanRow, err)
	}

	return employees, nil
}

// SetQualifications заменяет набор квалификаций сотрудника
func (r *Repository) SetQualifications(ctx context.Context, employeeID int64, serviceIDs []int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("employee_services").
		Where(squirrel.Eq{"employee_id": employeeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetQualifications - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: SetQualifications - execute delete: %v", ErrExecQuery, err)
	}

	if len(serviceIDs) == 0 {
		return nil
	}

	insertBuilder := psqlbuilder.Insert("employee_services").Columns("employee_id", "service_id")
	for _, serviceID := range serviceIDs {
		insertBuilder = insertBuilder.Values(employeeID, serviceID)
	}

	insertQuery, insertArgs, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetQualifications - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: SetQualifications - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}
