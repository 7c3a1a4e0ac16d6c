package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonix/SLX-BookingService/internal/availability"
	"github.com/salonix/SLX-BookingService/internal/domain"
	staffRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/staff"
	catalogService "github.com/salonix/SLX-BookingService/internal/service/catalog"
)

// UseCase use case для получения доступных слотов для записи
//
// Оркестрация: резолвит позицию каталога, собирает мастеров, календарь и
// записи на день, после чего отдаёт расчёт чистому движку доступности
type UseCase struct {
	catalogService  CatalogService
	staffRepo       StaffRepository
	reservationRepo ReservationRepository
	calendarService CalendarService
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogService CatalogService,
	staffRepo StaffRepository,
	reservationRepo ReservationRepository,
	calendarService CalendarService,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogService:  catalogService,
		staffRepo:       staffRepo,
		reservationRepo: reservationRepo,
		calendarService: calendarService,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, item=%d (%s), date=%s, employee=%v",
		req.SalonID, req.ItemID, req.ItemType, req.Date.Format(domain.DateFormat), req.EmployeeID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 4. Резолвим позицию каталога
	item, err := uc.catalogService.GetBookableItem(ctx, req.SalonID, req.ItemID, req.ItemType)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrItemNotFound):
			uc.logger.Warn("GetAvailableSlots: item id=%d not found in salon=%d", req.ItemID, req.SalonID)
			return nil, ErrItemNotFound
		case errors.Is(err, catalogService.ErrItemInactive):
			uc.logger.Warn("GetAvailableSlots: item id=%d is inactive", req.ItemID)
			return nil, ErrItemInactive
		case errors.Is(err, catalogService.ErrInvalidItemType):
			return nil, fmt.Errorf("%w: invalid item type", ErrInvalidInput)
		}
		uc.logger.Error("GetAvailableSlots: failed to resolve item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to resolve item: %v", ErrInternal, err)
	}

	// 5. Получаем рабочий календарь салона
	calendar, err := uc.calendarService.GetDomainBySalon(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get calendar for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	// 6. Собираем мастеров: либо конкретного, либо всех активных
	var employeeFilter *domain.Employee
	if req.EmployeeID != nil {
		employee, err := uc.staffRepo.GetByID(ctx, req.SalonID, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
				uc.logger.Warn("GetAvailableSlots: employee id=%d not found in salon=%d", *req.EmployeeID, req.SalonID)
				return nil, ErrEmployeeNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get employee id=%d: %v", *req.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
		employeeFilter = employee
	}

	employees, err := uc.staffRepo.ListActiveBySalon(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list employees for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
	}

	// 7. Записи салона на дату: все, кроме отменённых - они слоты не блокируют
	filter := domain.SalonReservationsFilter{
		SalonID:         req.SalonID,
		StartDate:       &req.Date,
		EndDate:         &req.Date,
		IncludeBlocking: true,
	}

	reservationPtrs, err := uc.reservationRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
	}

	reservations := make([]domain.Reservation, 0, len(reservationPtrs))
	for _, r := range reservationPtrs {
		reservations = append(reservations, *r)
	}

	// 8. Чистый расчёт доступности
	timeSlots, err := availability.ComputeSlots(item, req.Date, employeeFilter, employees, reservations, *calendar, now)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			uc.logger.Warn("GetAvailableSlots: engine rejected input: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("GetAvailableSlots: engine error: %v", err)
		return nil, fmt.Errorf("%w: availability engine: %v", ErrInternal, err)
	}

	slots := make([]Slot, 0, len(timeSlots))
	for _, ts := range timeSlots {
		slots = append(slots, Slot{
			StartTime:       ts.StartTime,
			DurationMinutes: item.DurationMinutes,
			EmployeeID:      ts.EmployeeID,
			EmployeeName:    ts.EmployeeName,
		})
	}

	uc.logger.Info("GetAvailableSlots: computed %d slots for salon=%d, item=%d, date=%s",
		len(slots), req.SalonID, req.ItemID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:     req.Date,
		SalonID:  req.SalonID,
		ItemID:   req.ItemID,
		ItemType: req.ItemType,
		Slots:    slots,
	}, nil
}
