package testfixtures

import (
	"time"

	"github.com/example/hours-bot/internal/payroll"
)

// ReferenceTime is the canonical instant fixtures are anchored to: a Monday
// evening, so "today" is an unambiguous weekday.
func ReferenceTime() time.Time {
	return time.Date(2025, time.June, 2, 18, 30, 0, 0, time.UTC)
}

// ReferenceDate is ReferenceTime truncated to midnight.
func ReferenceDate() time.Time {
	ref := ReferenceTime()
	return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
}

// StandardShift is the fixed "normal day" record stamped with ReferenceDate.
func StandardShift() payroll.ShiftRecord {
	return payroll.ShiftRecord{
		Category:      payroll.WeekdayStandard,
		StartTime:     "07:30",
		EndTime:       "16:00",
		Date:          ReferenceDate(),
		TotalHours:    8.5,
		PaidHours:     7.5,
		OvertimeHours: 0,
		TotalPay:      payroll.DailyRate,
	}
}

// OvertimeShift is a weekday shift running one hour past the boundary.
func OvertimeShift() payroll.ShiftRecord {
	return payroll.ShiftRecord{
		Category:      payroll.Weekday,
		StartTime:     "07:30",
		EndTime:       "17:00",
		Date:          ReferenceDate(),
		TotalHours:    9.5,
		PaidHours:     8.5,
		OvertimeHours: 1.0,
		TotalPay:      payroll.DailyRate + payroll.OvertimeRate,
	}
}

// WeekendShift is the fixed flat-rate weekend record.
func WeekendShift() payroll.ShiftRecord {
	return payroll.ShiftRecord{
		Category:      payroll.Weekend,
		StartTime:     "08:00",
		EndTime:       "13:00",
		Date:          ReferenceDate(),
		TotalHours:    5.0,
		PaidHours:     5.0,
		OvertimeHours: 0,
		TotalPay:      payroll.DailyRate,
	}
}
