package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonix/SLX-BookingService/internal/domain"
	catalogRepo "github.com/salonix/SLX-BookingService/internal/infra/storage/catalog"
)

// Фейки

type fakeCatalogRepo struct {
	services   map[int64]*domain.SalonService
	combos     map[int64]*domain.Combo
	discounts  map[int64]*domain.Discount // ключ - ID позиции
	categories []*domain.Category
}

func (f *fakeCatalogRepo) GetServiceByID(_ context.Context, salonID, serviceID int64) (*domain.SalonService, error) {
	svc, ok := f.services[serviceID]
	if !ok || svc.SalonID != salonID {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeCatalogRepo) ListActiveServices(_ context.Context, salonID int64) ([]*domain.SalonService, error) {
	var result []*domain.SalonService
	for _, svc := range f.services {
		if svc.SalonID == salonID && svc.IsActive {
			result = append(result, svc)
		}
	}
	return result, nil
}

func (f *fakeCatalogRepo) GetComboByID(_ context.Context, salonID, comboID int64) (*domain.Combo, error) {
	combo, ok := f.combos[comboID]
	if !ok || combo.SalonID != salonID {
		return nil, catalogRepo.ErrComboNotFound
	}
	return combo, nil
}

func (f *fakeCatalogRepo) GetServiceDurations(_ context.Context, serviceIDs []int64) (map[int64]int, error) {
	durations := make(map[int64]int)
	for _, id := range serviceIDs {
		if svc, ok := f.services[id]; ok {
			durations[id] = svc.DurationMinutes
		}
	}
	return durations, nil
}

func (f *fakeCatalogRepo) ListCategories(_ context.Context, salonID int64) ([]*domain.Category, error) {
	var result []*domain.Category
	for _, category := range f.categories {
		if category.SalonID == salonID {
			result = append(result, category)
		}
	}
	return result, nil
}

func (f *fakeCatalogRepo) GetActiveDiscountForItem(_ context.Context, _, itemID int64, _ domain.ItemType) (*domain.Discount, error) {
	return f.discounts[itemID], nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Фикстура

func newFixture() (*Service, *fakeCatalogRepo) {
	repo := &fakeCatalogRepo{
		services: map[int64]*domain.SalonService{
			7: {ID: 7, SalonID: 1, Name: "Стрижка", DurationMinutes: 60, Price: 1500, IsActive: true},
			8: {ID: 8, SalonID: 1, Name: "Окрашивание", DurationMinutes: 90, Price: 4000, IsActive: true},
			9: {ID: 9, SalonID: 1, Name: "Архивная услуга", DurationMinutes: 30, Price: 500, IsActive: false},
		},
		combos: map[int64]*domain.Combo{
			20: {
				ID:      20,
				SalonID: 1,
				Name:    "Стрижка + окрашивание",
				Components: []domain.ComboComponent{
					{ServiceID: 7, Quantity: 1, Position: 1},
					{ServiceID: 8, Quantity: 1, Position: 2},
				},
				Price:    5000,
				IsActive: true,
			},
			21: {
				ID:      21,
				SalonID: 1,
				Name:    "Комбо с дублем",
				Components: []domain.ComboComponent{
					{ServiceID: 7, Quantity: 2, Position: 1},
				},
				Price:    2800,
				IsActive: true,
			},
		},
		discounts: map[int64]*domain.Discount{},
		categories: []*domain.Category{
			{ID: 1, SalonID: 1, Name: "Волосы", Position: 1},
			{ID: 2, SalonID: 1, Name: "Ногти", Position: 2},
			{ID: 3, SalonID: 2, Name: "Чужой салон", Position: 1},
		},
	}

	return NewService(repo, noopLogger{}), repo
}

// Тесты

func TestService_GetBookableItem_Service(t *testing.T) {
	svc, _ := newFixture()

	item, err := svc.GetBookableItem(context.Background(), 1, 7, domain.ItemTypeService)
	require.NoError(t, err)

	assert.Equal(t, int64(7), item.ID)
	assert.Equal(t, domain.ItemTypeService, item.Type)
	assert.Equal(t, 60, item.DurationMinutes)
	assert.Equal(t, 1500.0, item.Price)
	// Компонент услуги - она сама
	assert.Equal(t, []int64{7}, item.ComponentServiceIDs)
}

func TestService_GetBookableItem_Combo(t *testing.T) {
	svc, _ := newFixture()

	item, err := svc.GetBookableItem(context.Background(), 1, 20, domain.ItemTypeCombo)
	require.NoError(t, err)

	assert.Equal(t, int64(20), item.ID)
	assert.Equal(t, domain.ItemTypeCombo, item.Type)
	// 60 + 90
	assert.Equal(t, 150, item.DurationMinutes)
	assert.Equal(t, 5000.0, item.Price)
	// Компоненты в порядке выполнения
	assert.Equal(t, []int64{7, 8}, item.ComponentServiceIDs)
}

func TestService_GetBookableItem_ComboQuantity(t *testing.T) {
	svc, _ := newFixture()

	item, err := svc.GetBookableItem(context.Background(), 1, 21, domain.ItemTypeCombo)
	require.NoError(t, err)

	// Длительность учитывает количество: 60 * 2
	assert.Equal(t, 120, item.DurationMinutes)
}

func TestService_GetBookableItem_Discount(t *testing.T) {
	svc, repo := newFixture()
	repo.discounts[7] = &domain.Discount{ID: 1, SalonID: 1, ItemID: 7, ItemType: domain.ItemTypeService, Percent: 20, IsActive: true}

	item, err := svc.GetBookableItem(context.Background(), 1, 7, domain.ItemTypeService)
	require.NoError(t, err)

	// 1500 * 0.8
	assert.InDelta(t, 1200.0, item.Price, 0.001)
}

func TestService_GetBookableItem_Errors(t *testing.T) {
	svc, _ := newFixture()

	tests := []struct {
		name     string
		itemID   int64
		itemType domain.ItemType
		wantErr  error
	}{
		{name: "услуга не найдена", itemID: 777, itemType: domain.ItemTypeService, wantErr: ErrItemNotFound},
		{name: "комбо не найдено", itemID: 777, itemType: domain.ItemTypeCombo, wantErr: ErrItemNotFound},
		{name: "неактивная услуга", itemID: 9, itemType: domain.ItemTypeService, wantErr: ErrItemInactive},
		{name: "неизвестный тип", itemID: 7, itemType: domain.ItemType("subscription"), wantErr: ErrInvalidItemType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetBookableItem(context.Background(), 1, tt.itemID, tt.itemType)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_GetBookableItem_ComboWithMissingService(t *testing.T) {
	svc, repo := newFixture()
	repo.combos[22] = &domain.Combo{
		ID:      22,
		SalonID: 1,
		Name:    "Битое комбо",
		Components: []domain.ComboComponent{
			{ServiceID: 777, Quantity: 1, Position: 1},
		},
		Price:    1000,
		IsActive: true,
	}

	_, err := svc.GetBookableItem(context.Background(), 1, 22, domain.ItemTypeCombo)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_ListActiveServices(t *testing.T) {
	svc, _ := newFixture()

	services, err := svc.ListActiveServices(context.Background(), 1)
	require.NoError(t, err)
	// Неактивная услуга не попадает в витрину
	assert.Len(t, services, 2)
}

func TestService_ListCategories(t *testing.T) {
	svc, _ := newFixture()

	categories, err := svc.ListCategories(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, categories, 2)
	assert.Equal(t, "Волосы", categories[0].Name)
	assert.Equal(t, "Ногти", categories[1].Name)
}
