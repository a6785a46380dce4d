// Package ports defines the store interfaces the rest of the
// application depends on. The SQLite repository is the production
// implementation; the memory store backs tests.
package ports

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"financeiro/internal/core"
)

var (
	// ErrNotFound reports an id that does not exist where the
	// operation needs one (deposit, toggle). Deletes never return it.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable reports that the persistent store could not be
	// read or written. Callers must surface it, never swallow it.
	ErrUnavailable = errors.New("storage unavailable")
)

// Ledger owns the transaction table.
type Ledger interface {
	// AddTransaction assigns the next id and appends. The stored
	// amount's sign is normalized from the kind inside the store; the
	// date text is accepted as-is.
	AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error)

	// ListTransactions returns entries newest-inserted first. A nil
	// month returns the full ledger; otherwise only entries whose date
	// parses and falls in that bucket.
	ListTransactions(ctx context.Context, month *core.MonthKey) ([]core.Transaction, error)

	// DeleteTransaction removes by id; absent ids are a no-op.
	DeleteTransaction(ctx context.Context, id int64) error

	// DistinctMonths lists every bucket with at least one parseable
	// entry plus the current month, ascending.
	DistinctMonths(ctx context.Context, now time.Time) ([]core.MonthKey, error)
}

// Goals owns savings-goal records.
type Goals interface {
	CreateGoal(ctx context.Context, name string, target decimal.Decimal) (core.Goal, error)
	DepositToGoal(ctx context.Context, id int64, amount decimal.Decimal) (core.Goal, error)
	ListGoals(ctx context.Context) ([]core.Goal, error)
	DeleteGoal(ctx context.Context, id int64) error
}

// Subscriptions owns recurring-charge records.
type Subscriptions interface {
	AddSubscription(ctx context.Context, name string, amount decimal.Decimal) (core.Subscription, error)
	ToggleSubscription(ctx context.Context, id int64) (core.Subscription, error)
	ListSubscriptions(ctx context.Context) ([]core.Subscription, error)
	// MonthlyCost sums the amounts of active subscriptions.
	MonthlyCost(ctx context.Context) (decimal.Decimal, error)
	DeleteSubscription(ctx context.Context, id int64) error
}

// Profiles owns the singleton settings record.
type Profiles interface {
	Profile(ctx context.Context) (core.Profile, error)
	SetMonthlyIncome(ctx context.Context, income decimal.Decimal) error
	SetOnboardingComplete(ctx context.Context, done bool) error
}

// Store is the full persistence surface handed to the HTTP layer.
type Store interface {
	Ledger
	Goals
	Subscriptions
	Profiles
	Close() error
}
