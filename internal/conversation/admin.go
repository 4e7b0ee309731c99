package conversation

import (
	"context"
	"fmt"
	"strings"
)

const adminPrefix = "admin"

func isAdminCommand(message string) bool {
	return message == adminPrefix || strings.HasPrefix(message, adminPrefix+" ")
}

// handleAdmin dispatches privileged maintenance commands. Everything here is
// read-only against persisted data except clear, which wipes only the
// in-memory pending set.
func (c *Controller) handleAdmin(ctx context.Context, sub string) string {
	logger := c.loggerWith(ctx, "handleAdmin", "command", sub)

	switch sub {
	case "", "help":
		return adminHelpReply

	case "status":
		return c.adminStatus()

	case "stats":
		stats, err := c.gateway.Stats(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "failed to read sheet stats", "error", err, "error_kind", "persistence")
			return "⚠️ Could not read sheet stats. Try 'admin test'."
		}
		last := stats.LastDate
		if last == "" {
			last = "-"
		}
		return fmt.Sprintf("📊 Sheet stats:\n• Entries: %d\n• Last entry: %s", stats.RowCount, last)

	case "test":
		// The reply reports that the probe ran; the outcome lands in the logs.
		if err := c.gateway.Ping(ctx); err != nil {
			logger.ErrorContext(ctx, "connectivity probe failed", "error", err, "error_kind", "persistence")
		} else {
			logger.InfoContext(ctx, "connectivity probe succeeded")
		}
		return "🔌 Connectivity probe attempted. Check the logs for the outcome."

	case "clear":
		cleared := c.pending.Len()
		c.pending.Clear()
		logger.InfoContext(ctx, "pending confirmations wiped", "count", cleared)
		return fmt.Sprintf("🧹 Cleared %d pending confirmation(s).", cleared)

	case "last":
		rows, err := c.gateway.Recent(ctx, 5)
		if err != nil {
			logger.ErrorContext(ctx, "failed to read recent entries", "error", err, "error_kind", "persistence")
			return "⚠️ Could not read recent entries."
		}
		if len(rows) == 0 {
			return "📭 No entries recorded yet."
		}
		var b strings.Builder
		b.WriteString("🗒️ Last entries:\n")
		for _, row := range rows {
			fmt.Fprintf(&b, "• %s  %s - %s\n", row.Date, row.Start, row.End)
		}
		return strings.TrimRight(b.String(), "\n")

	default:
		return "❓ Unknown admin command. Send 'admin help'."
	}
}

func (c *Controller) adminStatus() string {
	var standard, admins int
	for _, role := range c.allowlist {
		if role == RoleAdmin {
			admins++
		} else {
			standard++
		}
	}
	sheet := "❌ disconnected"
	if c.gateway.Connected() {
		sheet = "✅ connected"
	}
	return fmt.Sprintf("📟 Bot status:\n• Users: %d standard, %d admin\n• Pending confirmations: %d\n• Sheet: %s",
		standard, admins, c.pending.Len(), sheet)
}
