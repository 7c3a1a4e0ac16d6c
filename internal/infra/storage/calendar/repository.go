package calendar

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/salonix/SLX-BookingService/internal/domain"
	"github.com/salonix/SLX-BookingService/pkg/dbmetrics"
	"github.com/salonix/SLX-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий рабочих календарей салонов
// Выходные дни хранятся массивом integer[] (0 = воскресенье)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория календарей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetBySalon получает рабочий календарь салона
func (r *Repository) GetBySalon(ctx context.Context, salonID int64) (*domain.BusinessCalendar, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"open_hour",
		"close_hour",
		"slot_granularity_minutes",
		"closed_weekdays",
		"allow_overrun_past_close",
	).
		From("business_calendars").
		Where(squirrel.Eq{"salon_id": salonID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - build select query: %v", ErrBuildQuery, err)
	}

	var calendar domain.BusinessCalendar
	var closedWeekdays []int64

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&calendar.OpenHour,
		&calendar.CloseHour,
		&calendar.SlotGranularityMinutes,
		pq.Array(&closedWeekdays),
		&calendar.AllowOverrunPastClose,
	)

	if err == sql.ErrNoRows {
		return nil, ErrCalendarNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySalon - scan calendar: %v", ErrScanRow, err)
	}

	calendar.ClosedWeekdays = make([]time.Weekday, len(closedWeekdays))
	for i, wd := range closedWeekdays {
		calendar.ClosedWeekdays[i] = time.Weekday(wd)
	}

	return &calendar, nil
}

// Upsert создает или обновляет рабочий календарь салона
func (r *Repository) Upsert(ctx context.Context, salonID int64, calendar *domain.BusinessCalendar) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	closedWeekdays := make([]int64, len(calendar.ClosedWeekdays))
	for i, wd := range calendar.ClosedWeekdays {
		closedWeekdays[i] = int64(wd)
	}

	query, args, err := psqlbuilder.Insert("business_calendars").
		Columns(
			"salon_id",
			"open_hour",
			"close_hour",
			"slot_granularity_minutes",
			"closed_weekdays",
			"allow_overrun_past_close",
		).
		Values(
			salonID,
			calendar.OpenHour,
			calendar.CloseHour,
			calendar.SlotGranularityMinutes,
			pq.Array(closedWeekdays),
			calendar.AllowOverrunPastClose,
		).
		Suffix(`ON CONFLICT (salon_id) DO UPDATE SET
			open_hour = EXCLUDED.open_hour,
			close_hour = EXCLUDED.close_hour,
			slot_granularity_minutes = EXCLUDED.slot_granularity_minutes,
			closed_weekdays = EXCLUDED.closed_weekdays,
			allow_overrun_past_close = EXCLUDED.allow_overrun_past_close,
			updated_at = NOW()`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}
