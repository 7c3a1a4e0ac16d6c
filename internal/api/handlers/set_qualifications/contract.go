package set_qualifications

import (
	"context"
)

type StaffService interface {
	SetQualifications(ctx context.Context, salonID, employeeID, userID int64, serviceIDs []int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
