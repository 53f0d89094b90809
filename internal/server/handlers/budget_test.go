package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rewardly/cbs/internal/application/ledger"
	"github.com/rewardly/cbs/internal/application/monitor"
	"github.com/rewardly/cbs/internal/domain"
)

// stubLedger overrides only the calls a test exercises; anything else hits
// the embedded nil interface and fails loudly.
type stubLedger struct {
	ledger.ILedgerService
	loadFn      func(ctx context.Context, req ledger.MutationRequest) (*domain.BudgetMovement, error)
	getBudgetFn func(ctx context.Context, budgetID string) (*domain.MerchantBudget, error)
	atOrAboveFn func(ctx context.Context, threshold decimal.Decimal) ([]*domain.MerchantBudget, error)
}

func (s *stubLedger) Load(ctx context.Context, req ledger.MutationRequest) (*domain.BudgetMovement, error) {
	return s.loadFn(ctx, req)
}

func (s *stubLedger) GetBudget(ctx context.Context, budgetID string) (*domain.MerchantBudget, error) {
	return s.getBudgetFn(ctx, budgetID)
}

func (s *stubLedger) GetBudgetsAtOrAbove(ctx context.Context, threshold decimal.Decimal) ([]*domain.MerchantBudget, error) {
	return s.atOrAboveFn(ctx, threshold)
}

type stubMonitor struct {
	monitor.IMonitorService
	rechecks int
}

func (s *stubMonitor) Recheck(ctx context.Context, merchantID string) (*monitor.CheckResult, error) {
	s.rechecks++
	return &monitor.CheckResult{MerchantID: merchantID, Utilization: "0.00"}, nil
}

func newBudgetRouter(lg ledger.ILedgerService, mon monitor.IMonitorService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBudgetHandler(lg, mon, zerolog.Nop())
	router := gin.New()
	router.POST("/v1/budgets/:budget_id/load", h.Load)
	router.GET("/v1/internal/budgets/at-risk", h.AtRisk)
	return router
}

type loadResponse struct {
	Movement *domain.BudgetMovement `json:"movement"`
	Check    *monitor.CheckResult   `json:"check"`
}

func postLoad(t *testing.T, router *gin.Engine, budgetID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/budgets/"+budgetID+"/load", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoadRunsRecheckAfterSuccess(t *testing.T) {
	lg := &stubLedger{
		loadFn: func(ctx context.Context, req ledger.MutationRequest) (*domain.BudgetMovement, error) {
			return &domain.BudgetMovement{ID: "mv-1", BudgetID: req.BudgetID, Amount: req.Amount}, nil
		},
		getBudgetFn: func(ctx context.Context, budgetID string) (*domain.MerchantBudget, error) {
			return &domain.MerchantBudget{ID: budgetID, MerchantID: "merchant-1"}, nil
		},
	}
	mon := &stubMonitor{}
	router := newBudgetRouter(lg, mon)

	w := postLoad(t, router, "b-1", `{"amount":"50.00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if mon.rechecks != 1 {
		t.Errorf("rechecks = %d, want 1", mon.rechecks)
	}

	var body loadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Check == nil || body.Check.MerchantID != "merchant-1" {
		t.Errorf("check = %+v, want recheck result for merchant-1", body.Check)
	}
}

func TestLoadSkipsRecheckWhenBudgetLookupFails(t *testing.T) {
	lg := &stubLedger{
		loadFn: func(ctx context.Context, req ledger.MutationRequest) (*domain.BudgetMovement, error) {
			return &domain.BudgetMovement{ID: "mv-1", BudgetID: req.BudgetID, Amount: req.Amount}, nil
		},
		getBudgetFn: func(ctx context.Context, budgetID string) (*domain.MerchantBudget, error) {
			return nil, domain.ErrNotFound
		},
	}
	mon := &stubMonitor{}
	router := newBudgetRouter(lg, mon)

	// The load itself committed, so the response is still 200 with the
	// movement; only the recheck is skipped.
	w := postLoad(t, router, "b-1", `{"amount":"50.00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if mon.rechecks != 0 {
		t.Errorf("rechecks = %d, want 0 when the budget lookup fails", mon.rechecks)
	}

	var body loadResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Movement == nil || body.Movement.ID != "mv-1" {
		t.Errorf("movement = %+v, want mv-1", body.Movement)
	}
	if body.Check != nil {
		t.Errorf("check = %+v, want null when the recheck is skipped", body.Check)
	}
}

func TestAtRiskPassesThresholdThrough(t *testing.T) {
	var gotThreshold decimal.Decimal
	lg := &stubLedger{
		atOrAboveFn: func(ctx context.Context, threshold decimal.Decimal) ([]*domain.MerchantBudget, error) {
			gotThreshold = threshold
			return []*domain.MerchantBudget{{ID: "b-1"}, {ID: "b-2"}}, nil
		},
	}
	router := newBudgetRouter(lg, &stubMonitor{})

	req := httptest.NewRequest(http.MethodGet, "/v1/internal/budgets/at-risk?threshold=75", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !gotThreshold.Equal(decimal.NewFromInt(75)) {
		t.Errorf("threshold = %s, want 75", gotThreshold)
	}

	var body struct {
		Budgets []*domain.MerchantBudget `json:"budgets"`
		Count   int                      `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Count != 2 || len(body.Budgets) != 2 {
		t.Errorf("body = %+v, want 2 budgets", body)
	}
}

func TestAtRiskRejectsBadThreshold(t *testing.T) {
	lg := &stubLedger{
		atOrAboveFn: func(ctx context.Context, threshold decimal.Decimal) ([]*domain.MerchantBudget, error) {
			t.Fatal("ledger should not be queried for a malformed threshold")
			return nil, nil
		},
	}
	router := newBudgetRouter(lg, &stubMonitor{})

	req := httptest.NewRequest(http.MethodGet, "/v1/internal/budgets/at-risk?threshold=lots", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
