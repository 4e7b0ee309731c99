package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/hours-bot/internal/payroll"
	"github.com/example/hours-bot/internal/testfixtures"
)

const (
	testUser  = "+447700900000"
	testAdmin = "+447700900001"
)

type gatewayStub struct {
	appended  []TimesheetRow
	appendErr error
	stats     TimesheetStats
	statsErr  error
	recent    []TimesheetRow
	recentErr error
	pingErr   error
	pings     int
	connected bool
}

func (g *gatewayStub) AppendOrUpdate(_ context.Context, row TimesheetRow) error {
	if g.appendErr != nil {
		return g.appendErr
	}
	g.appended = append(g.appended, row)
	return nil
}

func (g *gatewayStub) Stats(context.Context) (TimesheetStats, error) {
	return g.stats, g.statsErr
}

func (g *gatewayStub) Recent(context.Context, int) ([]TimesheetRow, error) {
	return g.recent, g.recentErr
}

func (g *gatewayStub) Ping(context.Context) error {
	g.pings++
	return g.pingErr
}

func (g *gatewayStub) Connected() bool { return g.connected }

func newTestController(gateway *gatewayStub) *Controller {
	clock := testfixtures.NewClock(time.Time{})
	parser := payroll.NewParser(clock.NowFunc())
	allowlist := map[string]Role{
		testUser:  RoleStandard,
		testAdmin: RoleAdmin,
	}
	return NewController(allowlist, parser, NewPendingStore(), gateway, nil)
}

func TestController_Authorization(t *testing.T) {
	t.Run("rejects unknown senders without touching state", func(t *testing.T) {
		gateway := &gatewayStub{}
		controller := newTestController(gateway)

		reply := controller.HandleMessage(context.Background(), "+440000000000", "worked 7:30 till 16:00")

		assert.Equal(t, replyDenied, reply)
		assert.Empty(t, gateway.appended)
		assert.Zero(t, controller.pending.Len())
	})
}

func TestController_TimeEntryFlow(t *testing.T) {
	t.Run("stages a parsed entry and asks for confirmation", func(t *testing.T) {
		gateway := &gatewayStub{}
		controller := newTestController(gateway)

		reply := controller.HandleMessage(context.Background(), testUser, "worked 7:30 till 17:00")

		assert.Contains(t, reply, "Please confirm")
		assert.Contains(t, reply, "02 June 2025")
		assert.Contains(t, reply, "Overtime: 1.0h")
		assert.Contains(t, reply, "£381.67")
		assert.Contains(t, reply, "Reply YES to save or NO to cancel.")
		assert.Equal(t, 1, controller.pending.Len())
		assert.Empty(t, gateway.appended, "nothing persists before confirmation")
	})

	t.Run("confirming commits the raw row and clears the pending action", func(t *testing.T) {
		gateway := &gatewayStub{}
		controller := newTestController(gateway)

		controller.HandleMessage(context.Background(), testUser, "worked 7:30 till 16:00")
		reply := controller.HandleMessage(context.Background(), testUser, "yes")

		require.Len(t, gateway.appended, 1)
		assert.Equal(t, TimesheetRow{Date: "2025-06-02", Start: "07:30", End: "16:00"}, gateway.appended[0])
		assert.Contains(t, reply, "✅ Saved!")
		assert.Zero(t, controller.pending.Len())
	})

	t.Run("a newer request silently overwrites the pending one", func(t *testing.T) {
		gateway := &gatewayStub{}
		controller := newTestController(gateway)

		controller.HandleMessage(context.Background(), testUser, "worked 7:30 till 16:00")
		controller.HandleMessage(context.Background(), testUser, "worked 8:00 till 14:00")
		controller.HandleMessage(context.Background(), testUser, "confirm")

		require.Len(t, gateway.appended, 1)
		assert.Equal(t, "08:00", gateway.appended[0].Start)
		assert.Equal(t, "14:00", gateway.appended[0].End)
	})

	t.Run("cancel drops the pending entry", func(t *testing.T) {
		gateway := &gatewayStub{}
		controller := newTestController(gateway)

		controller.HandleMessage(context.Background(), testUser, "worked normal day")
		reply := controller.HandleMessage(context.Background(), testUser, "no")

		assert.Equal(t, replyCancelled, reply)
		assert.Empty(t, gateway.appended)
		assert.Zero(t, controller.pending.Len())
	})

	t.Run("confirming with nothing pending is a no-op", func(t *testing.T) {
		gateway := &gatewayStub{}
		controller := newTestController(gateway)

		reply := controller.HandleMessage(context.Background(), testUser, "yes")

		assert.Equal(t, replyNoPending, reply)
		assert.Empty(t, gateway.appended)
	})

	t.Run("persistence failure still clears the pending action", func(t *testing.T) {
		gateway := &gatewayStub{appendErr: errors.New("sheet unavailable")}
		controller := newTestController(gateway)

		controller.HandleMessage(context.Background(), testUser, "worked 7:30 till 16:00")
		reply := controller.HandleMessage(context.Background(), testUser, "yes")
		assert.Equal(t, replyPersistFailed, reply)

		// A second yes finds nothing: the entry must be resent, not retried.
		reply = controller.HandleMessage(context.Background(), testUser, "yes")
		assert.Equal(t, replyNoPending, reply)
	})

	t.Run("unparsable utterances reply with format help and stage nothing", func(t *testing.T) {
		gateway := &gatewayStub{}
		controller := newTestController(gateway)

		reply := controller.HandleMessage(context.Background(), testUser, "worked 25:00 till 16:00")

		assert.Equal(t, replyFormatHelp, reply)
		assert.Zero(t, controller.pending.Len())
	})

	t.Run("weekend confirmation shows the flat breakdown", func(t *testing.T) {
		gateway := &gatewayStub{}
		controller := newTestController(gateway)

		reply := controller.HandleMessage(context.Background(), testUser, "worked 8:00 till 13:00 saturday")

		assert.Contains(t, reply, "Weekend shift: 08:00 - 13:00")
		assert.Contains(t, reply, "Hours: 5.0")
		assert.Contains(t, reply, "£320.11 (flat rate)")
	})
}

func TestController_HelpAndFallback(t *testing.T) {
	t.Run("help for a standard user has no admin hint", func(t *testing.T) {
		controller := newTestController(&gatewayStub{})

		reply := controller.HandleMessage(context.Background(), testUser, "help")

		assert.Contains(t, reply, "Hours bot commands")
		assert.NotContains(t, reply, "admin help")
	})

	t.Run("help for an admin includes the admin hint", func(t *testing.T) {
		controller := newTestController(&gatewayStub{})

		reply := controller.HandleMessage(context.Background(), testAdmin, "help")

		assert.Contains(t, reply, "admin help")
	})

	t.Run("unclassified messages get the usage hint", func(t *testing.T) {
		controller := newTestController(&gatewayStub{})

		reply := controller.HandleMessage(context.Background(), testUser, "hi")

		assert.Equal(t, replyUsage, reply)
	})

	t.Run("admin commands from a standard user fall through", func(t *testing.T) {
		controller := newTestController(&gatewayStub{})

		reply := controller.HandleMessage(context.Background(), testUser, "admin clear")

		assert.NotContains(t, reply, "Cleared")
	})
}

func TestController_TrimsAndLowercases(t *testing.T) {
	gateway := &gatewayStub{}
	controller := newTestController(gateway)

	controller.HandleMessage(context.Background(), testUser, "  Worked 7:30 TILL 16:00  ")
	reply := controller.HandleMessage(context.Background(), testUser, " YES ")

	require.Len(t, gateway.appended, 1)
	assert.Contains(t, reply, "✅ Saved!")
}

func TestController_PromptStrings(t *testing.T) {
	t.Run("lunch deduction note only appears on long shifts", func(t *testing.T) {
		long := confirmationPrompt(testfixtures.StandardShift())
		assert.Contains(t, long, "(1h lunch deducted)")

		short := testfixtures.StandardShift()
		short.Category = payroll.Weekday
		short.StartTime, short.EndTime = "09:00", "14:00"
		short.TotalHours, short.PaidHours = 5.0, 5.0
		assert.NotContains(t, confirmationPrompt(short), "lunch deducted")
	})

	t.Run("success summaries are category specific", func(t *testing.T) {
		assert.Contains(t, successReply(testfixtures.WeekendShift()), "Weekend shift")
		assert.Contains(t, successReply(testfixtures.StandardShift()), "Normal day")
		overtime := successReply(testfixtures.OvertimeShift())
		assert.Contains(t, overtime, "overtime")
		assert.Contains(t, overtime, "£381.67")
	})
}

func TestController_AdminCommands(t *testing.T) {
	t.Run("help", func(t *testing.T) {
		controller := newTestController(&gatewayStub{})
		for _, body := range []string{"admin", "admin help"} {
			reply := controller.HandleMessage(context.Background(), testAdmin, body)
			assert.Contains(t, reply, "Admin commands", "body %q", body)
		}
	})

	t.Run("status reports identities, pending count and connectivity", func(t *testing.T) {
		controller := newTestController(&gatewayStub{connected: true})
		controller.HandleMessage(context.Background(), testUser, "worked normal day")

		reply := controller.HandleMessage(context.Background(), testAdmin, "admin status")

		assert.Contains(t, reply, "1 standard, 1 admin")
		assert.Contains(t, reply, "Pending confirmations: 1")
		assert.Contains(t, reply, "✅ connected")
	})

	t.Run("stats renders row count and last date", func(t *testing.T) {
		controller := newTestController(&gatewayStub{stats: TimesheetStats{RowCount: 42, LastDate: "2025-05-30"}})

		reply := controller.HandleMessage(context.Background(), testAdmin, "admin stats")

		assert.Contains(t, reply, "Entries: 42")
		assert.Contains(t, reply, "2025-05-30")
	})

	t.Run("stats failure is reported, not propagated", func(t *testing.T) {
		controller := newTestController(&gatewayStub{statsErr: errors.New("offline")})

		reply := controller.HandleMessage(context.Background(), testAdmin, "admin stats")

		assert.Contains(t, reply, "Could not read sheet stats")
	})

	t.Run("test probes connectivity and reports the attempt", func(t *testing.T) {
		gateway := &gatewayStub{pingErr: errors.New("offline")}
		controller := newTestController(gateway)

		reply := controller.HandleMessage(context.Background(), testAdmin, "admin test")

		assert.Equal(t, 1, gateway.pings)
		assert.Contains(t, reply, "probe attempted")
	})

	t.Run("clear wipes every pending action, not just the admin's", func(t *testing.T) {
		controller := newTestController(&gatewayStub{})
		controller.HandleMessage(context.Background(), testUser, "worked normal day")
		controller.HandleMessage(context.Background(), testAdmin, "worked 9:00 till 12:00")

		reply := controller.HandleMessage(context.Background(), testAdmin, "admin clear")

		assert.Contains(t, reply, "Cleared 2")
		assert.Zero(t, controller.pending.Len())
	})

	t.Run("last renders recent rows", func(t *testing.T) {
		controller := newTestController(&gatewayStub{recent: []TimesheetRow{
			{Date: "2025-05-29", Start: "07:30", End: "16:00"},
			{Date: "2025-05-30", Start: "07:30", End: "17:00"},
		}})

		reply := controller.HandleMessage(context.Background(), testAdmin, "admin last")

		assert.True(t, strings.Contains(reply, "2025-05-29") && strings.Contains(reply, "2025-05-30"))
	})

	t.Run("last with an empty sheet", func(t *testing.T) {
		controller := newTestController(&gatewayStub{})

		reply := controller.HandleMessage(context.Background(), testAdmin, "admin last")

		assert.Contains(t, reply, "No entries recorded yet")
	})

	t.Run("unknown sub-command", func(t *testing.T) {
		controller := newTestController(&gatewayStub{})

		reply := controller.HandleMessage(context.Background(), testAdmin, "admin reboot")

		assert.Contains(t, reply, "Unknown admin command")
	})
}
