package payroll

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// ErrUnparsable is returned when no grammar branch accepts the utterance or
// an extracted time fails 24-hour validation.
var ErrUnparsable = errors.New("payroll: unparsable time expression")

// Keyword detection is substring based, not word-boundary based. That is the
// accepted behavior of the grammar, not an oversight.
var (
	standardTokens = []string{"normal", "standard"}
	weekendTokens  = []string{"saturday", "sunday", "weekend"}

	timeRangePattern = regexp.MustCompile(`(\d{1,2}:\d{2})\s*(?:till?|to|until|-)\s*(\d{1,2}:\d{2})`)
)

// Parser converts a free-text utterance into a computed ShiftRecord. The
// clock is injected so tests control the date stamped on records.
type Parser struct {
	now func() time.Time
}

// NewParser constructs a Parser using the supplied clock, defaulting to
// time.Now when nil.
func NewParser(now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	return &Parser{now: now}
}

// Parse applies the grammar branches in priority order: the fixed "normal
// day" record, the fixed weekend record, then an explicit time range.
func (p *Parser) Parse(utterance string) (ShiftRecord, error) {
	message := strings.ToLower(strings.TrimSpace(utterance))
	today := p.today()

	for _, token := range standardTokens {
		if strings.Contains(message, token) {
			return ShiftRecord{
				Category:      WeekdayStandard,
				StartTime:     "07:30",
				EndTime:       "16:00",
				Date:          today,
				TotalHours:    8.5,
				PaidHours:     7.5,
				OvertimeHours: 0,
				TotalPay:      DailyRate,
			}, nil
		}
	}

	for _, token := range weekendTokens {
		if strings.Contains(message, token) {
			return ShiftRecord{
				Category:      Weekend,
				StartTime:     "08:00",
				EndTime:       "13:00",
				Date:          today,
				TotalHours:    5.0,
				PaidHours:     5.0,
				OvertimeHours: 0,
				TotalPay:      DailyRate,
			}, nil
		}
	}

	match := timeRangePattern.FindStringSubmatch(message)
	if match == nil {
		return ShiftRecord{}, ErrUnparsable
	}
	start, end := match[1], match[2]
	if !ValidTime(start) || !ValidTime(end) {
		return ShiftRecord{}, ErrUnparsable
	}

	totalHours := HoursBetween(start, end)
	overtime := OvertimeHours(end)

	return ShiftRecord{
		Category:      Weekday,
		StartTime:     start,
		EndTime:       end,
		Date:          today,
		TotalHours:    totalHours,
		PaidHours:     PaidHours(totalHours),
		OvertimeHours: overtime,
		TotalPay:      WeekdayPay(overtime),
	}, nil
}

// today truncates the injected clock to a calendar date in local wall-clock
// terms; the grammar carries no date of its own.
func (p *Parser) today() time.Time {
	now := p.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
