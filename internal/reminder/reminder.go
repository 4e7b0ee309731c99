// Package reminder nudges the user over WhatsApp to log their hours at a
// fixed local time on working days.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

const reminderBody = "⏰ Don't forget to log your hours for today! Send e.g. 'worked 7:30 till 16:00' or 'worked normal day'."

// Messenger is the outbound channel the reminder fires through.
type Messenger interface {
	Send(ctx context.Context, to, body string) error
}

// Reminder wakes up once per weekday at the configured wall-clock time.
type Reminder struct {
	messenger Messenger
	to        string
	hour      int
	minute    int
	now       func() time.Time
	logger    *slog.Logger
}

// New parses at as "15:04" local time. The clock is injectable; a nil now
// uses time.Now.
func New(messenger Messenger, to, at string, now func() time.Time, logger *slog.Logger) (*Reminder, error) {
	parsed, err := time.Parse("15:04", at)
	if err != nil {
		return nil, fmt.Errorf("reminder: parse firing time %q: %w", at, err)
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reminder{
		messenger: messenger,
		to:        to,
		hour:      parsed.Hour(),
		minute:    parsed.Minute(),
		now:       now,
		logger:    logger,
	}, nil
}

// Run fires reminders until the context is cancelled. Delivery failures are
// logged and the loop keeps going; a missed nudge is not worth crashing over.
func (r *Reminder) Run(ctx context.Context) {
	for {
		next := r.nextFiring(r.now())
		timer := time.NewTimer(next.Sub(r.now()))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := r.messenger.Send(ctx, r.to, reminderBody); err != nil {
			r.logger.ErrorContext(ctx, "reminder delivery failed", "error", err)
			continue
		}
		r.logger.InfoContext(ctx, "reminder sent", "at", next)
	}
}

// nextFiring returns the next weekday occurrence of the firing time strictly
// after now.
func (r *Reminder) nextFiring(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), r.hour, r.minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
