package conversation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/example/hours-bot/internal/logging"
	"github.com/example/hours-bot/internal/payroll"
)

// Role of an allow-listed identity. Unknown identities have no role and are
// rejected outright.
type Role int

const (
	RoleStandard Role = iota
	RoleAdmin
)

// Controller is the conversation state machine. It authorizes the sender,
// routes the utterance, stages parsed entries for confirmation and commits
// them on an affirmative reply. Every failure is converted to a reply
// string at this boundary; the messaging channel has no error status, only
// message content.
type Controller struct {
	allowlist  map[string]Role
	classifier *Classifier
	parser     *payroll.Parser
	pending    PendingStore
	gateway    Gateway
	logger     *slog.Logger
}

// NewController constructs a Controller with the provided dependencies.
func NewController(allowlist map[string]Role, parser *payroll.Parser, pending PendingStore, gateway Gateway, logger *slog.Logger) *Controller {
	if parser == nil {
		parser = payroll.NewParser(nil)
	}
	if pending == nil {
		pending = NewPendingStore()
	}
	return &Controller{
		allowlist:  allowlist,
		classifier: NewClassifier(),
		parser:     parser,
		pending:    pending,
		gateway:    gateway,
		logger:     logger,
	}
}

// HandleMessage processes one inbound message and returns the reply text.
func (c *Controller) HandleMessage(ctx context.Context, sender, body string) string {
	logger := c.loggerWith(ctx, "HandleMessage", "sender", sender)

	role, ok := c.allowlist[sender]
	if !ok {
		logger.WarnContext(ctx, "sender rejected", "error_kind", "unauthorized")
		return replyDenied
	}

	message := strings.ToLower(strings.TrimSpace(body))

	if role == RoleAdmin && isAdminCommand(message) {
		return c.handleAdmin(ctx, strings.TrimSpace(strings.TrimPrefix(message, adminPrefix)))
	}

	switch c.classifier.Classify(message) {
	case IntentAffirm:
		return c.resolvePending(ctx, sender, true)
	case IntentCancel:
		return c.resolvePending(ctx, sender, false)
	case IntentTimeEntry:
		return c.handleTimeRequest(ctx, sender, message)
	case IntentHelp:
		return helpReply(role)
	default:
		return replyUsage
	}
}

// handleTimeRequest parses a time utterance and stages it for confirmation,
// silently replacing any earlier pending action from the same sender.
func (c *Controller) handleTimeRequest(ctx context.Context, sender, message string) string {
	logger := c.loggerWith(ctx, "handleTimeRequest", "sender", sender)

	record, err := c.parser.Parse(message)
	if err != nil {
		logger.InfoContext(ctx, "unparsable time utterance", "error", err, "error_kind", "parse")
		return replyFormatHelp
	}

	c.pending.Put(sender, PendingAction{
		Sender:   sender,
		Kind:     ActionTimeEntry,
		Shift:    record,
		Original: message,
	})
	logger.InfoContext(ctx, "entry staged for confirmation", "category", string(record.Category))
	return confirmationPrompt(record)
}

// resolvePending consumes the sender's pending action. The action is removed
// before the persistence attempt: a confirmed-but-unpersisted entry is
// resent by the user, never retried in the background.
func (c *Controller) resolvePending(ctx context.Context, sender string, confirmed bool) string {
	logger := c.loggerWith(ctx, "resolvePending", "sender", sender, "confirmed", confirmed)

	action, ok := c.pending.Take(sender)
	if !ok {
		logger.InfoContext(ctx, "reply with nothing pending", "error_kind", "no_pending")
		return replyNoPending
	}

	if !confirmed {
		logger.InfoContext(ctx, "pending entry cancelled")
		return replyCancelled
	}

	row := TimesheetRow{
		Date:  action.Shift.Date.Format("2006-01-02"),
		Start: action.Shift.StartTime,
		End:   action.Shift.EndTime,
	}
	if err := c.gateway.AppendOrUpdate(ctx, row); err != nil {
		logger.ErrorContext(ctx, "failed to persist confirmed entry", "error", err, "error_kind", "persistence")
		return replyPersistFailed
	}

	logger.InfoContext(ctx, "entry persisted", "date", row.Date, "category", string(action.Shift.Category))
	return successReply(action.Shift)
}

func (c *Controller) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	logger := logging.FromContext(ctx, c.logger)
	pairs := []any{"service", "Controller", "operation", operation}
	if len(attrs) > 0 {
		pairs = append(pairs, attrs...)
	}
	return logger.With(pairs...)
}
