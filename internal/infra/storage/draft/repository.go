package draft

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/pkg/dbmetrics"
	"github.com/salonix/SLX-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий черновиков бронирования
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория черновиков
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет черновик
func (r *Repository) Create(ctx context.Context, draft *domain.DraftBooking) (*domain.DraftBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_drafts").
		Columns(
			"token",
			"customer_id",
			"salon_id",
			"item_id",
			"item_type",
			"reservation_date",
			"start_time",
			"employee_id",
			"notes",
			"expires_at",
		).
		Values(
			draft.Token,
			draft.CustomerID,
			draft.SalonID,
			draft.ItemID,
			draft.ItemType,
			draft.Date,
			draft.StartTime,
			draft.EmployeeID,
			draft.Notes,
			draft.ExpiresAt,
		).
		Suffix("RETURNING created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	draft.CreatedAt = createdAt.Time
	return draft, nil
}

// GetByToken получает черновик по токену
// Истёкшие черновики не возвращаются и попутно удаляются
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.DraftBooking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"token",
		"customer_id",
		"salon_id",
		"item_id",
		"item_type",
		"reservation_date",
		"start_time",
		"employee_id",
		"notes",
		"expires_at",
		"created_at",
	).
		From("booking_drafts").
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.Expr("expires_at > NOW()")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	var draft domain.DraftBooking
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&draft.Token,
		&draft.CustomerID,
		&draft.SalonID,
		&draft.ItemID,
		&draft.ItemType,
		&draft.Date,
		&draft.StartTime,
		&draft.EmployeeID,
		&draft.Notes,
		&draft.ExpiresAt,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		// Ленивая очистка: истёкший черновик мог остаться в таблице
		_ = r.deleteExpired(ctx)
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan draft: %v", ErrScanRow, err)
	}

	draft.CreatedAt = createdAt.Time
	return &draft, nil
}

// AttachCustomer привязывает авторизовавшегося клиента к черновику
func (r *Repository) AttachCustomer(ctx context.Context, token string, customerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_drafts").
		Set("customer_id", customerID).
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.Expr("expires_at > NOW()")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AttachCustomer - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AttachCustomer - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AttachCustomer - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrDraftNotFound
	}

	return nil
}

// Delete удаляет черновик (после успешного оформления записи)
func (r *Repository) Delete(ctx context.Context, token string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_drafts").
		Where(squirrel.Eq{"token": token}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// deleteExpired удаляет все истёкшие черновики
func (r *Repository) deleteExpired(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("booking_drafts").
		Where(squirrel.Expr("expires_at <= NOW()")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: deleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}
