package payroll

import "time"

// Category tags the computation rule that produced a shift record.
type Category string

const (
	// Weekday shifts are paid the daily rate plus overtime past the boundary.
	Weekday Category = "weekday"
	// Weekend shifts are paid the flat daily rate regardless of duration.
	Weekend Category = "weekend"
	// WeekdayStandard is the fixed "normal day" shorthand (07:30 to 16:00).
	WeekdayStandard Category = "weekday_standard"
)

// Pay rates and workday constants. Weekend pay is deliberately the flat daily
// rate rather than an hourly derivation, and overtime is anchored to the
// 16:00 boundary independent of start time.
const (
	DailyRate    = 320.11
	OvertimeRate = 61.56

	// Shifts longer than breakThresholdHours lose breakDeductionHours of
	// paid time to the unpaid lunch break.
	breakThresholdHours = 6.0
	breakDeductionHours = 1.0

	// Minutes past midnight of the nominal end of a working day (16:00).
	overtimeBoundaryMinutes = 16 * 60
)

// ShiftRecord is the parsed and computed result of one reported shift.
// StartTime and EndTime are wall-clock "HH:MM" values with no timezone.
type ShiftRecord struct {
	Category      Category
	StartTime     string
	EndTime       string
	Date          time.Time
	TotalHours    float64
	PaidHours     float64
	OvertimeHours float64
	TotalPay      float64
}
