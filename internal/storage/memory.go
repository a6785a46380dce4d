package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"financeiro/internal/core"
	"financeiro/internal/ports"
)

// MemoryStore is an in-memory ports.Store. It backs tests and the
// ephemeral backend; semantics mirror the SQLite repository.
type MemoryStore struct {
	mu      sync.Mutex
	nextTx  int64
	nextG   int64
	nextSub int64
	txs     []core.Transaction
	goals   []core.Goal
	subs    []core.Subscription
	profile map[string]string
}

var _ ports.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profile: make(map[string]string)}
}

func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) AddTransaction(_ context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.Category == "" {
		tx.Category = core.DefaultCategory
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	tx.Amount = tx.Kind.Signed(tx.Amount)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextTx++
	tx.ID = s.nextTx
	s.txs = append(s.txs, tx)
	return tx, nil
}

func (s *MemoryStore) ListTransactions(_ context.Context, month *core.MonthKey) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Transaction, 0, len(s.txs))
	for i := len(s.txs) - 1; i >= 0; i-- {
		tx := s.txs[i]
		if month != nil {
			d, ok := core.ParseDate(tx.Date)
			if !ok || d.MonthKey() != *month {
				continue
			}
		}
		out = append(out, tx)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

func (s *MemoryStore) DeleteTransaction(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) DistinctMonths(_ context.Context, now time.Time) ([]core.MonthKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[core.MonthKey]struct{}{core.CurrentMonth(now): {}}
	for _, tx := range s.txs {
		if d, ok := core.ParseDate(tx.Date); ok {
			seen[d.MonthKey()] = struct{}{}
		}
	}
	months := make([]core.MonthKey, 0, len(seen))
	for k := range seen {
		months = append(months, k)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })
	return months, nil
}

func (s *MemoryStore) CreateGoal(_ context.Context, name string, target decimal.Decimal) (core.Goal, error) {
	g := core.Goal{Name: name, Target: target, Accumulated: decimal.Zero}
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextG++
	g.ID = s.nextG
	s.goals = append(s.goals, g)
	return g, nil
}

func (s *MemoryStore) DepositToGoal(_ context.Context, id int64, amount decimal.Decimal) (core.Goal, error) {
	if !amount.IsPositive() {
		return core.Goal{}, core.ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.goals {
		if s.goals[i].ID == id {
			s.goals[i].Accumulated = s.goals[i].Accumulated.Add(amount)
			return s.goals[i], nil
		}
	}
	return core.Goal{}, fmt.Errorf("goal %d: %w", id, ports.ErrNotFound)
}

func (s *MemoryStore) ListGoals(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Goal(nil), s.goals...), nil
}

func (s *MemoryStore) DeleteGoal(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, g := range s.goals {
		if g.ID == id {
			s.goals = append(s.goals[:i], s.goals[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) AddSubscription(_ context.Context, name string, amount decimal.Decimal) (core.Subscription, error) {
	sub := core.Subscription{Name: name, Amount: amount, Active: true}
	if err := sub.Validate(); err != nil {
		return core.Subscription{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSub++
	sub.ID = s.nextSub
	s.subs = append(s.subs, sub)
	return sub, nil
}

func (s *MemoryStore) ToggleSubscription(_ context.Context, id int64) (core.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.subs {
		if s.subs[i].ID == id {
			s.subs[i].Active = !s.subs[i].Active
			return s.subs[i], nil
		}
	}
	return core.Subscription{}, fmt.Errorf("subscription %d: %w", id, ports.ErrNotFound)
}

func (s *MemoryStore) ListSubscriptions(_ context.Context) ([]core.Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Subscription(nil), s.subs...), nil
}

func (s *MemoryStore) MonthlyCost(_ context.Context) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, sub := range s.subs {
		if sub.Active {
			total = total.Add(sub.Amount)
		}
	}
	return total, nil
}

func (s *MemoryStore) DeleteSubscription(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.subs {
		if sub.ID == id {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *MemoryStore) Profile(_ context.Context) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := core.Profile{MonthlyIncome: decimal.Zero}
	if v, ok := s.profile[profileKeyMonthlyIncome]; ok {
		if d, err := decimal.NewFromString(v); err == nil {
			p.MonthlyIncome = d
		}
	}
	if v, ok := s.profile[profileKeyOnboardingComplete]; ok {
		p.OnboardingComplete = v == "true"
	}
	return p, nil
}

func (s *MemoryStore) SetMonthlyIncome(_ context.Context, income decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile[profileKeyMonthlyIncome] = income.String()
	return nil
}

func (s *MemoryStore) SetOnboardingComplete(_ context.Context, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if done {
		s.profile[profileKeyOnboardingComplete] = "true"
	} else {
		s.profile[profileKeyOnboardingComplete] = "false"
	}
	return nil
}
