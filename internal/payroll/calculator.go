package payroll

import (
	"strconv"
	"strings"
)

// ValidTime reports whether value is a well-formed 24-hour "H:MM" or "HH:MM"
// time with the hour in [0,23] and the minute in [0,59].
func ValidTime(value string) bool {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	return hour >= 0 && hour <= 23 && minute >= 0 && minute <= 59
}

// HoursBetween returns the elapsed hours between two wall-clock times,
// wrapping past midnight when end precedes start. Both arguments must pass
// ValidTime.
func HoursBetween(start, end string) float64 {
	startMinutes := minutesOfDay(start)
	endMinutes := minutesOfDay(end)
	if endMinutes < startMinutes {
		endMinutes += 24 * 60
	}
	return float64(endMinutes-startMinutes) / 60.0
}

// PaidHours deducts the unpaid lunch break from shifts over the threshold.
func PaidHours(totalHours float64) float64 {
	if totalHours > breakThresholdHours {
		return totalHours - breakDeductionHours
	}
	return totalHours
}

// OvertimeHours returns the portion of the shift ending past the 16:00
// boundary, in hours. The start time does not participate: a late-starting
// shift still accrues overtime for every minute past the boundary.
func OvertimeHours(end string) float64 {
	endMinutes := minutesOfDay(end)
	if endMinutes <= overtimeBoundaryMinutes {
		return 0
	}
	return float64(endMinutes-overtimeBoundaryMinutes) / 60.0
}

// WeekdayPay combines the daily rate with overtime at the overtime rate.
func WeekdayPay(overtimeHours float64) float64 {
	return DailyRate + overtimeHours*OvertimeRate
}

func minutesOfDay(value string) int {
	parts := strings.Split(value, ":")
	hour, _ := strconv.Atoi(parts[0])
	minute, _ := strconv.Atoi(parts[1])
	return hour*60 + minute
}
