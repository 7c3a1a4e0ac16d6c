package domain

import "github.com/salonix/SLX-BookingService/pkg/types"

// TimeSlot доступный для записи слот: время начала и мастер
// Вычисляется заново на каждый запрос, нигде не хранится
// Два слота считаются одинаковыми при совпадении (StartTime, EmployeeID)
type TimeSlot struct {
	StartTime    types.TimeString
	EmployeeID   int64
	EmployeeName string
}

// Equal проверяет равенство слотов
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.StartTime == other.StartTime && s.EmployeeID == other.EmployeeID
}
