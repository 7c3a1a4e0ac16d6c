package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonix/SLX-BookingService/internal/domain"
	catalogRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/catalog"
)

// Service сервис каталога: резолвит услуги и комбо в бронируемые позиции
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// GetBookableItem резолвит услугу или комбо в бронируемую позицию
// Для комбо длительность = сумма длительностей компонентов с учётом количества,
// компоненты перечисляются в порядке выполнения
// Активная скидка применяется к цене
func (s *Service) GetBookableItem(ctx context.Context, salonID, itemID int64, itemType domain.ItemType) (*domain.BookableItem, error) {
	s.logger.Info("GetBookableItem: resolving item id=%d type=%s for salon=%d", itemID, itemType, salonID)

	var item *domain.BookableItem
	var err error

	switch itemType {
	case domain.ItemTypeService:
		item, err = s.resolveService(ctx, salonID, itemID)
	case domain.ItemTypeCombo:
		item, err = s.resolveCombo(ctx, salonID, itemID)
	default:
		s.logger.Warn("GetBookableItem: invalid item type=%s", itemType)
		return nil, ErrInvalidItemType
	}

	if err != nil {
		return nil, err
	}

	if !item.IsActive {
		s.logger.Warn("GetBookableItem: item id=%d type=%s is inactive", itemID, itemType)
		return nil, ErrItemInactive
	}

	// Применяем активную скидку, если есть
	discount, err := s.catalogRepo.GetActiveDiscountForItem(ctx, salonID, itemID, itemType)
	if err != nil {
		s.logger.Error("GetBookableItem: failed to fetch discount for item id=%d: %v", itemID, err)
		return nil, fmt.Errorf("%w: GetBookableItem - discount lookup: %v", ErrInternal, err)
	}
	if discount != nil {
		item.Price = item.Price * (1 - discount.Percent/100)
		s.logger.Info("GetBookableItem: applied discount %.1f%% to item id=%d", discount.Percent, itemID)
	}

	s.logger.Info("GetBookableItem: resolved item id=%d type=%s, duration=%d min", itemID, itemType, item.DurationMinutes)
	return item, nil
}

// ListActiveServices получает активные услуги салона для витрины
func (s *Service) ListActiveServices(ctx context.Context, salonID int64) ([]*domain.SalonService, error) {
	s.logger.Info("ListActiveServices: fetching services for salon=%d", salonID)

	services, err := s.catalogRepo.ListActiveServices(ctx, salonID)
	if err != nil {
		s.logger.Error("ListActiveServices: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListActiveServices - repository error: %v", ErrInternal, err)
	}

	return services, nil
}

// ListCategories получает категории салона в порядке отображения
func (s *Service) ListCategories(ctx context.Context, salonID int64) ([]*domain.Category, error) {
	s.logger.Info("ListCategories: fetching categories for salon=%d", salonID)

	categories, err := s.catalogRepo.ListCategories(ctx, salonID)
	if err != nil {
		s.logger.Error("ListCategories: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %v", ErrInternal, err)
	}

	return categories, nil
}

// resolveService резолвит обычную услугу
// ComponentServiceIDs содержит единственный элемент - ID самой услуги
func (s *Service) resolveService(ctx context.Context, salonID, serviceID int64) (*domain.BookableItem, error) {
	service, err := s.catalogRepo.GetServiceByID(ctx, salonID, serviceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("resolveService: service id=%d not found in salon=%d", serviceID, salonID)
			return nil, ErrItemNotFound
		}
		s.logger.Error("resolveService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: resolveService - repository error: %v", ErrInternal, err)
	}

	return &domain.BookableItem{
		ID:                  service.ID,
		SalonID:             service.SalonID,
		Name:                service.Name,
		Type:                domain.ItemTypeService,
		DurationMinutes:     service.DurationMinutes,
		ComponentServiceIDs: []int64{service.ID},
		Price:               service.Price,
		IsActive:            service.IsActive,
	}, nil
}

// resolveCombo резолвит комбо: длительность складывается из компонентов
func (s *Service) resolveCombo(ctx context.Context, salonID, comboID int64) (*domain.BookableItem, error) {
	combo, err := s.catalogRepo.GetComboByID(ctx, salonID, comboID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrComboNotFound) {
			s.logger.Warn("resolveCombo: combo id=%d not found in salon=%d", comboID, salonID)
			return nil, ErrItemNotFound
		}
		s.logger.Error("resolveCombo: repository error for combo id=%d: %v", comboID, err)
		return nil, fmt.Errorf("%w: resolveCombo - repository error: %v", ErrInternal, err)
	}

	componentIDs := make([]int64, 0, len(combo.Components))
	for _, component := range combo.Components {
		componentIDs = append(componentIDs, component.ServiceID)
	}

	durations, err := s.catalogRepo.GetServiceDurations(ctx, componentIDs)
	if err != nil {
		s.logger.Error("resolveCombo: failed to fetch durations for combo id=%d: %v", comboID, err)
		return nil, fmt.Errorf("%w: resolveCombo - durations lookup: %v", ErrInternal, err)
	}

	totalDuration := 0
	for _, component := range combo.Components {
		duration, ok := durations[component.ServiceID]
		if !ok {
			s.logger.Error("resolveCombo: combo id=%d references missing service id=%d", comboID, component.ServiceID)
			return nil, fmt.Errorf("%w: resolveCombo - combo references missing service %d", ErrInternal, component.ServiceID)
		}
		totalDuration += duration * component.Quantity
	}

	return &domain.BookableItem{
		ID:                  combo.ID,
		SalonID:             combo.SalonID,
		Name:                combo.Name,
		Type:                domain.ItemTypeCombo,
		DurationMinutes:     totalDuration,
		ComponentServiceIDs: componentIDs,
		Price:               combo.Price,
		IsActive:            combo.IsActive,
	}, nil
}
