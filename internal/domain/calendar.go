package domain

import (
	"fmt"
	"time"
)

// BusinessCalendar рабочий календарь салона
// Источник - настройки салона в БД, при их отсутствии - дефолты из конфигурации
// Часы и шаг - именно настройки, а не константы: у разных салонов разный график
type BusinessCalendar struct {
	OpenHour               int
	CloseHour              int
	SlotGranularityMinutes int
	ClosedWeekdays         []time.Weekday
	// AllowOverrunPastClose разрешает слоту заканчиваться позже закрытия,
	// если услуга длиннее остатка рабочего дня
	AllowOverrunPastClose bool
}

// Validate проверяет корректность настроек календаря
func (c *BusinessCalendar) Validate() error {
	if c.OpenHour < 0 || c.OpenHour > 23 {
		return fmt.Errorf("open hour %d is out of range [0, 23]", c.OpenHour)
	}
	if c.CloseHour < 1 || c.CloseHour > 24 {
		return fmt.Errorf("close hour %d is out of range [1, 24]", c.CloseHour)
	}
	if c.OpenHour >= c.CloseHour {
		return fmt.Errorf("open hour %d must be before close hour %d", c.OpenHour, c.CloseHour)
	}
	if c.SlotGranularityMinutes < MinSlotGranularityMinutes || c.SlotGranularityMinutes > MaxSlotGranularityMinutes {
		return fmt.Errorf("slot granularity %d is out of range [%d, %d]",
			c.SlotGranularityMinutes, MinSlotGranularityMinutes, MaxSlotGranularityMinutes)
	}
	for _, wd := range c.ClosedWeekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("invalid closed weekday %d", wd)
		}
	}
	return nil
}

// IsClosedOn проверяет, закрыт ли салон в указанный день недели
func (c *BusinessCalendar) IsClosedOn(weekday time.Weekday) bool {
	for _, wd := range c.ClosedWeekdays {
		if wd == weekday {
			return true
		}
	}
	return false
}

// DefaultBusinessCalendar возвращает календарь с дефолтными настройками
func DefaultBusinessCalendar() BusinessCalendar {
	return BusinessCalendar{
		OpenHour:               DefaultOpenHour,
		CloseHour:              DefaultCloseHour,
		SlotGranularityMinutes: DefaultSlotGranularityMinutes,
		ClosedWeekdays:         []time.Weekday{time.Sunday},
		AllowOverrunPastClose:  true,
	}
}
