package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/domain"
	"github.com/rewardly/cbs/internal/repositories/budgetrepo"
)

// fakeBudgetRepo mirrors the store's locking discipline with a single mutex:
// each mutation reads, validates and writes under the lock, and appends a
// movement row atomically with the balance update.
type fakeBudgetRepo struct {
	mu        sync.Mutex
	budgets   map[string]*domain.MerchantBudget
	movements []*domain.BudgetMovement
	nextID    int
}

func newFakeBudgetRepo() *fakeBudgetRepo {
	return &fakeBudgetRepo{budgets: make(map[string]*domain.MerchantBudget)}
}

func (f *fakeBudgetRepo) seed(merchantID string, balance string) *domain.MerchantBudget {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	bal := decimal.RequireFromString(balance)
	b := &domain.MerchantBudget{
		ID:             fmt.Sprintf("budget-%d", f.nextID),
		MerchantID:     merchantID,
		CurrentBalance: bal,
		TotalLoaded:    bal,
		Currency:       "AED",
		Status:         domain.BudgetActive,
	}
	f.budgets[b.ID] = b
	return b
}

func (f *fakeBudgetRepo) Create(ctx context.Context, merchantID, currency string) (*domain.MerchantBudget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.budgets {
		if b.MerchantID == merchantID {
			return nil, domain.ErrDuplicateTransaction
		}
	}
	f.nextID++
	b := &domain.MerchantBudget{
		ID:         fmt.Sprintf("budget-%d", f.nextID),
		MerchantID: merchantID,
		Currency:   currency,
		Status:     domain.BudgetActive,
	}
	f.budgets[b.ID] = b
	return copyBudget(b), nil
}

func (f *fakeBudgetRepo) GetByID(ctx context.Context, id string) (*domain.MerchantBudget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.budgets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyBudget(b), nil
}

func (f *fakeBudgetRepo) GetByMerchant(ctx context.Context, merchantID string) (*domain.MerchantBudget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.budgets {
		if b.MerchantID == merchantID {
			return copyBudget(b), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBudgetRepo) Load(ctx context.Context, p budgetrepo.MutationParams) (*domain.BudgetMovement, error) {
	return f.mutate(ctx, p, domain.MovementLoad)
}

func (f *fakeBudgetRepo) Deduct(ctx context.Context, p budgetrepo.MutationParams) (*domain.BudgetMovement, error) {
	return f.mutate(ctx, p, domain.MovementPayout)
}

func (f *fakeBudgetRepo) mutate(ctx context.Context, p budgetrepo.MutationParams, kind domain.MovementKind) (*domain.BudgetMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.budgets[p.BudgetID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	before := b.CurrentBalance
	var after decimal.Decimal
	switch kind {
	case domain.MovementLoad:
		after = before.Add(p.Amount)
	case domain.MovementPayout:
		after = before.Sub(p.Amount)
		if after.IsNegative() {
			return nil, domain.ErrInsufficientBalance
		}
	}

	// A hook error stands in for a rolled-back transaction: no state
	// change survives it.
	if p.BeforeCommit != nil {
		if err := p.BeforeCommit(ctx, nil); err != nil {
			return nil, err
		}
	}

	switch kind {
	case domain.MovementLoad:
		b.TotalLoaded = b.TotalLoaded.Add(p.Amount)
	case domain.MovementPayout:
		b.TotalSpent = b.TotalSpent.Add(p.Amount)
	}
	b.CurrentBalance = after

	mv := &domain.BudgetMovement{
		ID:            fmt.Sprintf("mv-%d", len(f.movements)+1),
		BudgetID:      b.ID,
		MerchantID:    b.MerchantID,
		Kind:          kind,
		Amount:        p.Amount,
		BalanceBefore: before,
		BalanceAfter:  after,
		Description:   p.Description,
		ActorID:       p.ActorID,
	}
	f.movements = append(f.movements, mv)
	return mv, nil
}

func (f *fakeBudgetRepo) UpdateStatus(ctx context.Context, id string, status domain.BudgetStatus) (*domain.MerchantBudget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.budgets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.Status = status
	return copyBudget(b), nil
}

func (f *fakeBudgetRepo) GetAtOrAboveUtilization(ctx context.Context, threshold decimal.Decimal) ([]*domain.MerchantBudget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.MerchantBudget
	for _, b := range f.budgets {
		if b.Utilization().GreaterThanOrEqual(threshold) {
			out = append(out, copyBudget(b))
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) ListActive(ctx context.Context) ([]*domain.MerchantBudget, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.MerchantBudget
	for _, b := range f.budgets {
		if b.Status == domain.BudgetActive {
			out = append(out, copyBudget(b))
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) MovementsByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.BudgetMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.BudgetMovement
	for _, mv := range f.movements {
		if mv.BudgetID == budgetID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) MovementsByMerchant(ctx context.Context, merchantID string, limit, offset int) ([]*domain.BudgetMovement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.BudgetMovement
	for _, mv := range f.movements {
		if mv.MerchantID == merchantID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) MovementStats(ctx context.Context, merchantID string) (*domain.BudgetStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stats := &domain.BudgetStats{MerchantID: merchantID}
	payouts := decimal.Zero
	payoutCount := int64(0)
	for _, mv := range f.movements {
		if mv.MerchantID != merchantID {
			continue
		}
		stats.MovementCount++
		switch mv.Kind {
		case domain.MovementLoad:
			stats.TotalLoaded = stats.TotalLoaded.Add(mv.Amount)
		case domain.MovementPayout:
			stats.TotalSpent = stats.TotalSpent.Add(mv.Amount)
			payouts = payouts.Add(mv.Amount)
			payoutCount++
		}
	}
	if payoutCount > 0 {
		stats.AvgPayoutAmount = payouts.Div(decimal.NewFromInt(payoutCount))
	}
	return stats, nil
}

func copyBudget(b *domain.MerchantBudget) *domain.MerchantBudget {
	c := *b
	return &c
}

func newTestLedger(repo budgetrepo.IBudgetRepository) ILedgerService {
	return NewLedgerService(repo, zerolog.Nop())
}

func TestLoadThenDeductKeepsBalanceIdentity(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := newTestLedger(repo)
	ctx := context.Background()

	budget, err := svc.GetOrCreateByMerchant(ctx, "merchant-1", "AED")
	if err != nil {
		t.Fatalf("GetOrCreateByMerchant: %v", err)
	}

	if _, err := svc.Load(ctx, MutationRequest{BudgetID: budget.ID, Amount: decimal.RequireFromString("1000.00"), ActorID: "actor-1"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := svc.Deduct(ctx, MutationRequest{BudgetID: budget.ID, Amount: decimal.RequireFromString("250.50"), ActorID: "actor-1"}); err != nil {
		t.Fatalf("Deduct: %v", err)
	}

	got, err := svc.GetBudget(ctx, budget.ID)
	if err != nil {
		t.Fatalf("GetBudget: %v", err)
	}
	if want := decimal.RequireFromString("749.50"); !got.CurrentBalance.Equal(want) {
		t.Errorf("balance = %s, want %s", got.CurrentBalance, want)
	}
	if !got.CurrentBalance.Equal(got.TotalLoaded.Sub(got.TotalSpent)) {
		t.Errorf("balance identity violated: %s != %s - %s", got.CurrentBalance, got.TotalLoaded, got.TotalSpent)
	}
}

func TestDeductRejectsInvalidAmounts(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := newTestLedger(repo)
	budget := repo.seed("merchant-1", "100.00")

	tests := []struct {
		name   string
		amount string
	}{
		{"zero", "0"},
		{"negative", "-5.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Deduct(context.Background(), MutationRequest{
				BudgetID: budget.ID,
				Amount:   decimal.RequireFromString(tt.amount),
				ActorID:  "actor-1",
			})
			if !errors.Is(err, domain.ErrInvalidAmount) {
				t.Errorf("err = %v, want ErrInvalidAmount", err)
			}
		})
	}
}

func TestDeductInsufficientBalanceLeavesStateUntouched(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := newTestLedger(repo)
	budget := repo.seed("merchant-1", "100.00")
	ctx := context.Background()

	_, err := svc.Deduct(ctx, MutationRequest{BudgetID: budget.ID, Amount: decimal.RequireFromString("100.01"), ActorID: "actor-1"})
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}

	got, _ := svc.GetBudget(ctx, budget.ID)
	if !got.CurrentBalance.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("balance = %s, want unchanged 100.00", got.CurrentBalance)
	}
	movements, _ := svc.Movements(ctx, budget.ID, 10, 0)
	if len(movements) != 0 {
		t.Errorf("movements = %d, want 0 after rejected deduction", len(movements))
	}
}

func TestDeductHookFailureRollsBackMutation(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := newTestLedger(repo)
	budget := repo.seed("merchant-1", "100.00")
	ctx := context.Background()

	boom := errors.New("claim conflict")
	_, err := svc.Deduct(ctx, MutationRequest{
		BudgetID: budget.ID,
		Amount:   decimal.RequireFromString("40.00"),
		ActorID:  "actor-1",
		BeforeCommit: func(ctx context.Context, tx *sql.Tx) error {
			return boom
		},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the hook error", err)
	}

	got, _ := svc.GetBudget(ctx, budget.ID)
	if !got.CurrentBalance.Equal(decimal.RequireFromString("100.00")) {
		t.Errorf("balance = %s, want unchanged 100.00", got.CurrentBalance)
	}
	movements, _ := svc.Movements(ctx, budget.ID, 10, 0)
	if len(movements) != 0 {
		t.Errorf("movements = %d, want 0 after rolled-back deduction", len(movements))
	}
}

func TestConcurrentDeductionsNeverOverspend(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := newTestLedger(repo)
	budget := repo.seed("merchant-1", "90.00")
	ctx := context.Background()

	const n = 10
	amount := decimal.RequireFromString("10.00")

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Deduct(ctx, MutationRequest{BudgetID: budget.ID, Amount: amount, ActorID: "actor-1"})
		}(i)
	}
	wg.Wait()

	succeeded, insufficient := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientBalance):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if succeeded != 9 || insufficient != 1 {
		t.Errorf("succeeded=%d insufficient=%d, want 9 and 1", succeeded, insufficient)
	}

	got, _ := svc.GetBudget(ctx, budget.ID)
	if !got.CurrentBalance.IsZero() {
		t.Errorf("balance = %s, want 0", got.CurrentBalance)
	}
}

func TestMovementChainReconstructsBalance(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := newTestLedger(repo)
	budget := repo.seed("merchant-1", "0.00")
	ctx := context.Background()

	ops := []struct {
		load   bool
		amount string
	}{
		{true, "500.00"},
		{false, "120.00"},
		{false, "80.00"},
		{true, "200.00"},
		{false, "45.50"},
	}
	for _, op := range ops {
		req := MutationRequest{BudgetID: budget.ID, Amount: decimal.RequireFromString(op.amount), ActorID: "actor-1"}
		var err error
		if op.load {
			_, err = svc.Load(ctx, req)
		} else {
			_, err = svc.Deduct(ctx, req)
		}
		if err != nil {
			t.Fatalf("mutation %+v: %v", op, err)
		}
	}

	movements, err := svc.Movements(ctx, budget.ID, 100, 0)
	if err != nil {
		t.Fatalf("Movements: %v", err)
	}

	replayed := decimal.Zero
	for _, mv := range movements {
		if !mv.BalanceBefore.Equal(replayed) {
			t.Fatalf("movement %s: balance_before = %s, want %s", mv.ID, mv.BalanceBefore, replayed)
		}
		switch mv.Kind {
		case domain.MovementLoad:
			replayed = replayed.Add(mv.Amount)
		case domain.MovementPayout:
			replayed = replayed.Sub(mv.Amount)
		}
		if !mv.BalanceAfter.Equal(replayed) {
			t.Fatalf("movement %s: balance_after = %s, want %s", mv.ID, mv.BalanceAfter, replayed)
		}
	}

	got, _ := svc.GetBudget(ctx, budget.ID)
	if !got.CurrentBalance.Equal(replayed) {
		t.Errorf("replayed balance %s != stored balance %s", replayed, got.CurrentBalance)
	}
}

func TestGetBudgetsAtOrAboveFiltersByUtilization(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := newTestLedger(repo)
	ctx := context.Background()

	hot := repo.seed("merchant-1", "100.00")
	cold := repo.seed("merchant-2", "100.00")
	if _, err := svc.Deduct(ctx, MutationRequest{BudgetID: hot.ID, Amount: decimal.RequireFromString("70.00"), ActorID: "a"}); err != nil {
		t.Fatalf("Deduct: %v", err)
	}
	if _, err := svc.Deduct(ctx, MutationRequest{BudgetID: cold.ID, Amount: decimal.RequireFromString("20.00"), ActorID: "a"}); err != nil {
		t.Fatalf("Deduct: %v", err)
	}

	got, err := svc.GetBudgetsAtOrAbove(ctx, decimal.NewFromInt(60))
	if err != nil {
		t.Fatalf("GetBudgetsAtOrAbove: %v", err)
	}
	if len(got) != 1 || got[0].ID != hot.ID {
		t.Errorf("got %d budgets, want only %s", len(got), hot.ID)
	}
}

func TestGetOrCreateIsIdempotentPerMerchant(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := newTestLedger(repo)
	ctx := context.Background()

	first, err := svc.GetOrCreateByMerchant(ctx, "merchant-1", "AED")
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := svc.GetOrCreateByMerchant(ctx, "merchant-1", "AED")
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("second call created a new budget: %s != %s", first.ID, second.ID)
	}
}

func TestStatsCombineBudgetAndMovementHistory(t *testing.T) {
	repo := newFakeBudgetRepo()
	svc := newTestLedger(repo)
	budget := repo.seed("merchant-1", "0.00")
	ctx := context.Background()

	if _, err := svc.Load(ctx, MutationRequest{BudgetID: budget.ID, Amount: decimal.RequireFromString("1000.00"), ActorID: "a"}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	for _, amt := range []string{"100.00", "300.00"} {
		if _, err := svc.Deduct(ctx, MutationRequest{BudgetID: budget.ID, Amount: decimal.RequireFromString(amt), ActorID: "a"}); err != nil {
			t.Fatalf("Deduct %s: %v", amt, err)
		}
	}

	stats, err := svc.Stats(ctx, "merchant-1")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.MovementCount != 3 {
		t.Errorf("MovementCount = %d, want 3", stats.MovementCount)
	}
	if want := decimal.RequireFromString("200.00"); !stats.AvgPayoutAmount.Equal(want) {
		t.Errorf("AvgPayoutAmount = %s, want %s", stats.AvgPayoutAmount, want)
	}
	if want := decimal.RequireFromString("600.00"); !stats.CurrentBalance.Equal(want) {
		t.Errorf("CurrentBalance = %s, want %s", stats.CurrentBalance, want)
	}
}
