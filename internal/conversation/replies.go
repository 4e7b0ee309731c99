package conversation

import (
	"fmt"
	"strings"

	"github.com/example/hours-bot/internal/payroll"
)

const (
	replyDenied = "Sorry, this bot is not available for your number."

	replyUsage = "⏰ Send your hours: 'worked 7:30 till 17:00'\n" +
		"📱 Or try: 'worked normal day'\n" +
		"❓ Send 'help' for more commands"

	replyFormatHelp = "⏰ Time format help:\n\n" +
		"✅ 'worked 7:30 till 16:00' (normal day)\n" +
		"✅ 'worked 7:30 till 17:00' (1hr overtime)\n" +
		"✅ 'worked 8:00 till 13:00 Saturday'\n" +
		"✅ 'worked normal day'\n\n" +
		"📝 Use 24-hour format (17:00 not 5pm)"

	replyNoPending = "🤷 Nothing is waiting for confirmation. Send your hours first."

	replyCancelled = "❌ Cancelled. Nothing was saved."

	replyPersistFailed = "⚠️ Your entry was confirmed but could not be saved to the sheet. " +
		"Please resend it later or update the sheet by hand."

	adminHelpReply = "🔧 Admin commands:\n" +
		"admin status - configuration and connectivity\n" +
		"admin stats - sheet row count and last entry\n" +
		"admin test - probe the sheet connection\n" +
		"admin clear - drop ALL pending confirmations\n" +
		"admin last - show the 5 most recent rows"
)

const promptDateLayout = "02 January 2006"

func helpReply(role Role) string {
	help := "⏰ Hours bot commands:\n\n" +
		"✅ 'worked 7:30 till 16:00'\n" +
		"✅ 'worked 7:30 till 17:00' (overtime)\n" +
		"✅ 'worked 8:00 till 13:00 Saturday'\n" +
		"✅ 'worked normal day'\n\n" +
		"Reply YES or NO when asked to confirm."
	if role == RoleAdmin {
		help += "\n🔧 Admins: send 'admin help'"
	}
	return help
}

// confirmationPrompt summarises the computed shift and asks for YES/NO. The
// breakdown differs by category: weekends show the flat figures, weekdays
// show the full hour and pay split.
func confirmationPrompt(shift payroll.ShiftRecord) string {
	var b strings.Builder
	b.WriteString("📋 Please confirm:\n\n")
	fmt.Fprintf(&b, "📅 Date: %s\n", shift.Date.Format(promptDateLayout))

	if shift.Category == payroll.Weekend {
		fmt.Fprintf(&b, "🏖️ Weekend shift: %s - %s\n", shift.StartTime, shift.EndTime)
		fmt.Fprintf(&b, "⏱️ Hours: %.1f\n", shift.PaidHours)
		fmt.Fprintf(&b, "💷 Pay: £%.2f (flat rate)\n", shift.TotalPay)
	} else {
		fmt.Fprintf(&b, "⏰ Shift: %s - %s\n", shift.StartTime, shift.EndTime)
		fmt.Fprintf(&b, "⏱️ Total hours: %.1f\n", shift.TotalHours)
		if shift.PaidHours < shift.TotalHours {
			fmt.Fprintf(&b, "🍽️ Paid hours: %.1f (1h lunch deducted)\n", shift.PaidHours)
		} else {
			fmt.Fprintf(&b, "⏱️ Paid hours: %.1f\n", shift.PaidHours)
		}
		fmt.Fprintf(&b, "💷 Regular pay: £%.2f\n", payroll.DailyRate)
		if shift.OvertimeHours > 0 {
			fmt.Fprintf(&b, "🔥 Overtime: %.1fh = £%.2f\n", shift.OvertimeHours, shift.OvertimeHours*payroll.OvertimeRate)
		}
		fmt.Fprintf(&b, "💰 Total pay: £%.2f\n", shift.TotalPay)
	}

	b.WriteString("\nReply YES to save or NO to cancel.")
	return b.String()
}

func successReply(shift payroll.ShiftRecord) string {
	date := shift.Date.Format(promptDateLayout)
	switch shift.Category {
	case payroll.Weekend:
		return fmt.Sprintf("✅ Saved! Weekend shift on %s: %.1f hours, £%.2f flat.", date, shift.PaidHours, shift.TotalPay)
	case payroll.WeekdayStandard:
		return fmt.Sprintf("✅ Saved! Normal day on %s: £%.2f.", date, shift.TotalPay)
	default:
		if shift.OvertimeHours > 0 {
			return fmt.Sprintf("✅ Saved! %s - %s on %s with %.1fh overtime: £%.2f.",
				shift.StartTime, shift.EndTime, date, shift.OvertimeHours, shift.TotalPay)
		}
		return fmt.Sprintf("✅ Saved! %s - %s on %s: £%.2f.", shift.StartTime, shift.EndTime, date, shift.TotalPay)
	}
}
