package conversation

import "context"

// TimesheetRow is the raw triple written to (or read back from) the tabular
// store. Derived hour and pay columns belong to the sheet's own formulas and
// are never written by this system.
type TimesheetRow struct {
	Date  string
	Start string
	End   string
}

// TimesheetStats summarises the persisted sheet for admin reporting.
type TimesheetStats struct {
	RowCount int
	LastDate string
}

// Gateway is the persistence boundary confirmed entries are committed to.
// AppendOrUpdate carries the gateway's own retry contract: one reconnect and
// one retry before reporting permanent failure.
type Gateway interface {
	AppendOrUpdate(ctx context.Context, row TimesheetRow) error
	Stats(ctx context.Context) (TimesheetStats, error)
	Recent(ctx context.Context, limit int) ([]TimesheetRow, error)
	Ping(ctx context.Context) error
	Connected() bool
}
