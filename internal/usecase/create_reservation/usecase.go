package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/salonix/SLX-BookingService/internal/availability"
	"github.com/salonix/SLX-BookingService/internal/domain"
	reservationRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/reservation"
	staffRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/staff"
	userClient "github.com/salonix/SLX-BookingService/internal/integrations/userservice"
	catalogService "github.com/salonix/SLX-BookingService/internal/service/catalog"
	"github.com/salonix/SLX-BookingService/pkg/types"
)

// UseCase use case для создания записи клиента
//
// Гонка за слот между показом доступности и оформлением разрешается здесь:
// проверка слота повторяется в сериализуемой транзакции с блокировкой записей
// дня (FOR UPDATE), проигравший получает ErrSlotNotAvailable
type UseCase struct {
	catalogService  CatalogService
	staffRepo       StaffRepository
	reservationRepo ReservationRepository
	calendarService CalendarService
	userClient      UserServiceClient
	draftRepo       DraftRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogService CatalogService,
	staffRepo StaffRepository,
	reservationRepo ReservationRepository,
	calendarService CalendarService,
	userClient UserServiceClient,
	draftRepo DraftRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogService:  catalogService,
		staffRepo:       staffRepo,
		reservationRepo: reservationRepo,
		calendarService: calendarService,
		userClient:      userClient,
		draftRepo:       draftRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: customer=%d, salon=%d, item=%d (%s), date=%s, time=%s",
		req.CustomerID, req.SalonID, req.ItemID, req.ItemType, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateReservation: date validation failed: %v", err)
		return nil, err
	}

	// 4. Резолвим позицию каталога
	item, err := uc.catalogService.GetBookableItem(ctx, req.SalonID, req.ItemID, req.ItemType)
	if err != nil {
		switch {
		case errors.Is(err, catalogService.ErrItemNotFound):
			uc.logger.Warn("CreateReservation: item id=%d not found in salon=%d", req.ItemID, req.SalonID)
			return nil, ErrItemNotFound
		case errors.Is(err, catalogService.ErrItemInactive):
			uc.logger.Warn("CreateReservation: item id=%d is inactive", req.ItemID)
			return nil, ErrItemInactive
		}
		uc.logger.Error("CreateReservation: failed to resolve item id=%d: %v", req.ItemID, err)
		return nil, fmt.Errorf("%w: failed to resolve item: %v", ErrInternal, err)
	}

	// 5. Получаем рабочий календарь салона
	calendar, err := uc.calendarService.GetDomainBySalon(ctx, req.SalonID)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to get calendar for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get calendar: %v", ErrInternal, err)
	}

	if calendar.IsClosedOn(req.Date.Weekday()) {
		uc.logger.Warn("CreateReservation: salon=%d is closed on %s", req.SalonID, req.Date.Format(domain.DateFormat))
		return nil, ErrSalonClosed
	}

	// 6. Профиль клиента для денормализации
	// При недоступности UserService запись оформляется без данных профиля
	var customerName, customerPhone *string
	profile, err := uc.userClient.GetCustomerProfileWithGracefulDegradation(ctx, req.CustomerID)
	switch {
	case err == nil:
		customerName = &profile.FullName
		customerPhone = &profile.Phone
	case errors.Is(err, userClient.ErrProfileNotFound):
		uc.logger.Warn("CreateReservation: customer id=%d profile not found", req.CustomerID)
		return nil, ErrCustomerNotFound
	case errors.Is(err, userClient.ErrServiceDegraded):
		uc.logger.Warn("CreateReservation: proceeding without profile data for customer=%d", req.CustomerID)
	default:
		uc.logger.Error("CreateReservation: failed to get profile for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: failed to get customer profile: %v", ErrInternal, err)
	}

	// 7. Запрошенный мастер должен существовать до входа в транзакцию
	var employeeFilter *domain.Employee
	if req.EmployeeID != nil {
		employee, err := uc.staffRepo.GetByID(ctx, req.SalonID, *req.EmployeeID)
		if err != nil {
			if errors.Is(err, staffRepo.ErrEmployeeNotFound) {
				uc.logger.Warn("CreateReservation: employee id=%d not found in salon=%d", *req.EmployeeID, req.SalonID)
				return nil, ErrEmployeeNotFound
			}
			uc.logger.Error("CreateReservation: failed to get employee id=%d: %v", *req.EmployeeID, err)
			return nil, fmt.Errorf("%w: failed to get employee: %v", ErrInternal, err)
		}
		employeeFilter = employee
	}

	var result *domain.Reservation

	// 8. Проверка слота и вставка - в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		employees, err := uc.staffRepo.ListActiveBySalon(txCtx, req.SalonID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list employees: %v", err)
			return fmt.Errorf("%w: failed to list employees: %v", ErrInternal, err)
		}

		// Записи дня с блокировкой FOR UPDATE - конкурирующее оформление подождёт
		filter := domain.SalonReservationsFilter{
			SalonID:         req.SalonID,
			StartDate:       &req.Date,
			EndDate:         &req.Date,
			IncludeBlocking: true,
		}

		reservationPtrs, err := uc.reservationRepo.GetBySalonWithFilter(txCtx, filter)
		if err != nil {
			if isSlotRaceLost(err) {
				uc.logger.Warn("CreateReservation: lost slot race while reading day reservations: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateReservation: failed to get reservations: %v", err)
			return fmt.Errorf("%w: failed to get reservations: %v", ErrInternal, err)
		}

		reservations := make([]domain.Reservation, 0, len(reservationPtrs))
		for _, r := range reservationPtrs {
			reservations = append(reservations, *r)
		}

		// Повторный расчёт доступности по актуальному срезу записей
		slots, err := availability.ComputeSlots(item, req.Date, employeeFilter, employees, reservations, *calendar, now)
		if err != nil {
			if errors.Is(err, availability.ErrInvalidInput) {
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			}
			uc.logger.Error("CreateReservation: engine error: %v", err)
			return fmt.Errorf("%w: availability engine: %v", ErrInternal, err)
		}

		// Запрошенное время должно быть среди доступных слотов
		assigned := pickSlot(slots, req.StartTime)
		if assigned == nil {
			uc.logger.Warn("CreateReservation: slot %s not available for salon=%d, item=%d",
				req.StartTime, req.SalonID, req.ItemID)
			return ErrSlotNotAvailable
		}

		uc.logger.Info("CreateReservation: slot %s assigned to employee=%d", req.StartTime, assigned.EmployeeID)

		reservation := &domain.Reservation{
			CustomerID:      req.CustomerID,
			SalonID:         req.SalonID,
			EmployeeID:      assigned.EmployeeID,
			ItemID:          req.ItemID,
			ItemType:        req.ItemType,
			Date:            req.Date,
			StartTime:       req.StartTime,
			DurationMinutes: item.DurationMinutes,
			Status:          domain.StatusConfirmed,
			// Денормализация: история записи не зависит от будущих правок каталога
			ItemName:      item.Name,
			ItemPrice:     item.Price,
			EmployeeName:  assigned.EmployeeName,
			CustomerName:  customerName,
			CustomerPhone: customerPhone,
			Notes:         req.Notes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if isSlotRaceLost(err) {
				uc.logger.Warn("CreateReservation: lost slot race on insert: %v", err)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// SSI ловит конкурирующее оформление и на коммите: FOR UPDATE на пустом
		// срезе записей дня не блокирует чужой INSERT, конфликт всплывает как 40001
		if isSlotRaceLost(err) {
			uc.logger.Warn("CreateReservation: lost slot race at commit: salon=%d, date=%s, time=%s",
				req.SalonID, req.Date.Format(domain.DateFormat), req.StartTime)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 9. Черновик отработал - удаляем; ошибка удаления запись не откатывает
	if req.DraftToken != nil {
		if err := uc.draftRepo.Delete(ctx, *req.DraftToken); err != nil {
			uc.logger.Warn("CreateReservation: failed to delete draft token=%s: %v", *req.DraftToken, err)
		}
	}

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		SalonID:         result.SalonID,
		EmployeeID:      result.EmployeeID,
		ItemID:          result.ItemID,
		ItemType:        result.ItemType,
		Date:            result.Date,
		StartTime:       result.StartTime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		ItemName:        result.ItemName,
		ItemPrice:       result.ItemPrice,
		EmployeeName:    result.EmployeeName,
		CustomerName:    result.CustomerName,
		CustomerPhone:   result.CustomerPhone,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// isSlotRaceLost распознаёт проигранную гонку за слот: конкурирующее оформление
// того же дня откатывает сериализуемую транзакцию (SQLSTATE 40001) - либо внутри
// транзакции, либо на коммите
func isSlotRaceLost(err error) bool {
	if errors.Is(err, reservationRepo.ErrSerializationConflict) {
		return true
	}
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "40001"
}

// pickSlot находит первый доступный слот на запрошенное время
// Первый - значит первый мастер ростера среди свободных (стабильный порядок)
func pickSlot(slots []domain.TimeSlot, startTime types.TimeString) *domain.TimeSlot {
	for i := range slots {
		if slots[i].StartTime == startTime {
			return &slots[i]
		}
	}
	return nil
}
