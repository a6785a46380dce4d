// Package storage implements the persistence layer on SQLite via the
// pure-Go modernc driver. The connection pool is capped at a single
// connection so every store operation is serialized; each exported
// method is one statement (or one transaction) against the database.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"financeiro/internal/core"
	"financeiro/internal/ports"
)

const (
	profileKeyMonthlyIncome      = "monthly_income"
	profileKeyOnboardingComplete = "onboarding_complete"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	// Single connection: store operations are serialized by design.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// unavailable tags a driver failure with the storage-unavailable
// sentinel so callers can branch on errors.Is.
func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ports.ErrUnavailable, err)
}

// AddTransaction implements ports.Ledger. The sign invariant (expense
// negative, income non-negative) is enforced here, not trusted from
// callers. Dates are stored as entered.
func (r *SQLiteRepository) AddTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.Category == "" {
		tx.Category = core.DefaultCategory
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx.Amount = tx.Kind.Signed(tx.Amount)

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, description, category, kind, amount) VALUES (?, ?, ?, ?, ?)`,
		tx.Date, tx.Description, tx.Category, string(tx.Kind), tx.Amount.String())
	if err != nil {
		return core.Transaction{}, unavailable("insert transaction", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, unavailable("transaction id", err)
	}
	tx.ID = id

	slog.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"kind", tx.Kind,
		"amount", tx.Amount.String(),
		"date", tx.Date)

	return tx, nil
}

// ListTransactions implements ports.Ledger. Ordering is reverse
// insertion (descending id); dates are free text and not assumed
// sortable. Month filtering happens over parsed dates, so a malformed
// date never false-matches a filter substring.
func (r *SQLiteRepository) ListTransactions(ctx context.Context, month *core.MonthKey) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, description, category, kind, amount FROM transactions ORDER BY id DESC`)
	if err != nil {
		return nil, unavailable("list transactions", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		var (
			tx        core.Transaction
			kind      string
			amountStr string
		)
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Description, &tx.Category, &kind, &amountStr); err != nil {
			return nil, unavailable("scan transaction", err)
		}
		tx.Kind = core.Kind(kind)
		tx.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, unavailable("decode amount", err)
		}
		if month != nil {
			d, ok := core.ParseDate(tx.Date)
			if !ok || d.MonthKey() != *month {
				continue
			}
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate transactions", err)
	}
	return txs, nil
}

// DeleteTransaction implements ports.Ledger; deleting an absent id is
// a no-op.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id); err != nil {
		return unavailable("delete transaction", err)
	}
	return nil
}

// DistinctMonths implements ports.Ledger. Only parseable dates
// contribute a bucket; the current calendar month is always present.
func (r *SQLiteRepository) DistinctMonths(ctx context.Context, now time.Time) ([]core.MonthKey, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT date FROM transactions`)
	if err != nil {
		return nil, unavailable("list months", err)
	}
	defer rows.Close()

	seen := map[core.MonthKey]struct{}{core.CurrentMonth(now): {}}
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			return nil, unavailable("scan date", err)
		}
		if d, ok := core.ParseDate(date); ok {
			seen[d.MonthKey()] = struct{}{}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate dates", err)
	}

	months := make([]core.MonthKey, 0, len(seen))
	for k := range seen {
		months = append(months, k)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months, nil
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, name string, target decimal.Decimal) (core.Goal, error) {
	g := core.Goal{Name: name, Target: target, Accumulated: decimal.Zero}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO goals (name, target_amount, accumulated_amount) VALUES (?, ?, '0')`,
		g.Name, g.Target.String())
	if err != nil {
		return core.Goal{}, unavailable("insert goal", err)
	}
	g.ID, err = res.LastInsertId()
	if err != nil {
		return core.Goal{}, unavailable("goal id", err)
	}

	slog.InfoContext(ctx, "Goal created", "id", g.ID, "name", g.Name, "target", g.Target.String())
	return g, nil
}

// DepositToGoal adds a positive amount to the goal's accumulated
// value. The read and write run in one database transaction so the
// update is a single atomic unit.
func (r *SQLiteRepository) DepositToGoal(ctx context.Context, id int64, amount decimal.Decimal) (core.Goal, error) {
	if !amount.IsPositive() {
		return core.Goal{}, core.ErrInvalidAmount
	}

	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Goal{}, unavailable("begin deposit", err)
	}
	defer dbTx.Rollback()

	g, err := scanGoal(dbTx.QueryRowContext(ctx,
		`SELECT id, name, target_amount, accumulated_amount FROM goals WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Goal{}, fmt.Errorf("goal %d: %w", id, ports.ErrNotFound)
		}
		return core.Goal{}, unavailable("load goal", err)
	}

	g.Accumulated = g.Accumulated.Add(amount)
	if _, err := dbTx.ExecContext(ctx,
		`UPDATE goals SET accumulated_amount = ? WHERE id = ?`, g.Accumulated.String(), id); err != nil {
		return core.Goal{}, unavailable("update goal", err)
	}
	if err := dbTx.Commit(); err != nil {
		return core.Goal{}, unavailable("commit deposit", err)
	}

	slog.InfoContext(ctx, "Goal deposit",
		"id", g.ID, "amount", amount.String(), "accumulated", g.Accumulated.String())
	return g, nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, target_amount, accumulated_amount FROM goals ORDER BY id`)
	if err != nil {
		return nil, unavailable("list goals", err)
	}
	defer rows.Close()

	var goals []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, unavailable("scan goal", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate goals", err)
	}
	return goals, nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id); err != nil {
		return unavailable("delete goal", err)
	}
	return nil
}

func (r *SQLiteRepository) AddSubscription(ctx context.Context, name string, amount decimal.Decimal) (core.Subscription, error) {
	s := core.Subscription{Name: name, Amount: amount, Active: true}
	if err := s.Validate(); err != nil {
		return core.Subscription{}, err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (name, amount, active) VALUES (?, ?, 1)`,
		s.Name, s.Amount.String())
	if err != nil {
		return core.Subscription{}, unavailable("insert subscription", err)
	}
	s.ID, err = res.LastInsertId()
	if err != nil {
		return core.Subscription{}, unavailable("subscription id", err)
	}

	slog.InfoContext(ctx, "Subscription added", "id", s.ID, "name", s.Name, "amount", s.Amount.String())
	return s, nil
}

func (r *SQLiteRepository) ToggleSubscription(ctx context.Context, id int64) (core.Subscription, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE subscriptions SET active = 1 - active WHERE id = ?`, id)
	if err != nil {
		return core.Subscription{}, unavailable("toggle subscription", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Subscription{}, unavailable("toggle subscription", err)
	}
	if n == 0 {
		return core.Subscription{}, fmt.Errorf("subscription %d: %w", id, ports.ErrNotFound)
	}

	s, err := r.subscriptionByID(ctx, id)
	if err != nil {
		return core.Subscription{}, err
	}
	slog.InfoContext(ctx, "Subscription toggled", "id", s.ID, "active", s.Active)
	return s, nil
}

func (r *SQLiteRepository) ListSubscriptions(ctx context.Context) ([]core.Subscription, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, amount, active FROM subscriptions ORDER BY id`)
	if err != nil {
		return nil, unavailable("list subscriptions", err)
	}
	defer rows.Close()

	var subs []core.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, unavailable("scan subscription", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("iterate subscriptions", err)
	}
	return subs, nil
}

// MonthlyCost sums the amounts of active subscriptions. The sum runs
// over exact decimals in Go; amounts are stored as decimal text, so a
// floating SQL SUM could drift.
func (r *SQLiteRepository) MonthlyCost(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT amount FROM subscriptions WHERE active = 1`)
	if err != nil {
		return decimal.Zero, unavailable("sum subscriptions", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var amountStr string
		if err := rows.Scan(&amountStr); err != nil {
			return decimal.Zero, unavailable("scan subscription amount", err)
		}
		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return decimal.Zero, unavailable("decode subscription amount", err)
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, unavailable("iterate subscription amounts", err)
	}
	return total, nil
}

func (r *SQLiteRepository) DeleteSubscription(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id); err != nil {
		return unavailable("delete subscription", err)
	}
	return nil
}

// Profile assembles the singleton settings record, applying defaults
// for keys that were never written.
func (r *SQLiteRepository) Profile(ctx context.Context) (core.Profile, error) {
	p := core.Profile{MonthlyIncome: decimal.Zero}

	income, ok, err := r.profileValue(ctx, profileKeyMonthlyIncome)
	if err != nil {
		return core.Profile{}, err
	}
	if ok {
		d, err := decimal.NewFromString(income)
		if err != nil {
			return core.Profile{}, unavailable("decode monthly income", err)
		}
		p.MonthlyIncome = d
	}

	onboarding, ok, err := r.profileValue(ctx, profileKeyOnboardingComplete)
	if err != nil {
		return core.Profile{}, err
	}
	if ok {
		p.OnboardingComplete, _ = strconv.ParseBool(onboarding)
	}

	return p, nil
}

func (r *SQLiteRepository) SetMonthlyIncome(ctx context.Context, income decimal.Decimal) error {
	return r.setProfileValue(ctx, profileKeyMonthlyIncome, income.String())
}

func (r *SQLiteRepository) SetOnboardingComplete(ctx context.Context, done bool) error {
	return r.setProfileValue(ctx, profileKeyOnboardingComplete, strconv.FormatBool(done))
}

func (r *SQLiteRepository) profileValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM profile WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, unavailable("read profile", err)
	}
	return value, true, nil
}

// setProfileValue upserts one key; last write wins, no history.
func (r *SQLiteRepository) setProfileValue(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO profile (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return unavailable("write profile", err)
	}
	return nil
}

func (r *SQLiteRepository) subscriptionByID(ctx context.Context, id int64) (core.Subscription, error) {
	s, err := scanSubscription(r.db.QueryRowContext(ctx,
		`SELECT id, name, amount, active FROM subscriptions WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Subscription{}, fmt.Errorf("subscription %d: %w", id, ports.ErrNotFound)
		}
		return core.Subscription{}, unavailable("load subscription", err)
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGoal(row rowScanner) (core.Goal, error) {
	var (
		g           core.Goal
		target      string
		accumulated string
	)
	if err := row.Scan(&g.ID, &g.Name, &target, &accumulated); err != nil {
		return core.Goal{}, err
	}
	var err error
	if g.Target, err = decimal.NewFromString(target); err != nil {
		return core.Goal{}, err
	}
	if g.Accumulated, err = decimal.NewFromString(accumulated); err != nil {
		return core.Goal{}, err
	}
	return g, nil
}

func scanSubscription(row rowScanner) (core.Subscription, error) {
	var (
		s         core.Subscription
		amountStr string
		active    int64
	)
	if err := row.Scan(&s.ID, &s.Name, &amountStr, &active); err != nil {
		return core.Subscription{}, err
	}
	var err error
	if s.Amount, err = decimal.NewFromString(amountStr); err != nil {
		return core.Subscription{}, err
	}
	s.Active = active != 0
	return s, nil
}
