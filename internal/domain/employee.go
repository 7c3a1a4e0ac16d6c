package domain

// Employee сотрудник салона
// QualifiedServiceIDs - набор услуг, которые сотрудник умеет выполнять
type Employee struct {
	ID                  int64
	SalonID             int64
	FullName            string
	QualifiedServiceIDs []int64
	IsActive            bool
}

// IsQualifiedFor проверяет, что сотрудник может выполнить позицию:
// все компоненты позиции входят в набор его квалификаций
func (e *Employee) IsQualifiedFor(item *BookableItem) bool {
	if len(item.ComponentServiceIDs) == 0 {
		return false
	}

	qualified := make(map[int64]struct{}, len(e.QualifiedServiceIDs))
	for _, id := range e.QualifiedServiceIDs {
		qualified[id] = struct{}{}
	}

	for _, id := range item.ComponentServiceIDs {
		if _, ok := qualified[id]; !ok {
			return false
		}
	}

	return true
}
