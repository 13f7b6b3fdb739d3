package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sparynx/internal/middleware"
	"sparynx/internal/models"
	"sparynx/internal/services"
	"sparynx/internal/testutil"
	"sparynx/internal/validator"
)

func newBudgetTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *testutil.FakeMailer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Register()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	fake := &testutil.FakeMailer{}
	handler := NewBudgetHandler(services.NewBudgetService(db, fake, time.Second))

	router := gin.New()
	router.POST("/api/create-budget", handler.CreateBudget)
	router.GET("/api/budgets", handler.GetBudgets)
	router.GET("/api/budget/:id", handler.GetBudget)
	router.PUT("/api/edit-budget/:id", handler.UpdateBudget)
	router.DELETE("/api/delete-budget/:id", handler.DeleteBudget)
	return router, db, fake
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("failed to encode payload: %v", err)
		}
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func decodeBudget(t *testing.T, w *httptest.ResponseRecorder) *models.Budget {
	t.Helper()
	var resp struct {
		Budget models.Budget `json:"budget"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return &resp.Budget
}

func TestCreateBudgetHandler(t *testing.T) {
	t.Run("creates_budget_and_notifies_owner", func(t *testing.T) {
		router, _, fake := newBudgetTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/create-budget", gin.H{
			"name":      "Rent",
			"amount":    500,
			"category":  "Housing",
			"userId":    "user-1",
			"userEmail": "owner@test.com",
			"startDate": "2024-01-01",
			"endDate":   "2024-02-01",
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		budget := decodeBudget(t, w)
		if budget.ID == "" {
			t.Error("expected a generated budget ID")
		}
		if budget.Duration != 31 {
			t.Errorf("expected duration 31, got %d", budget.Duration)
		}
		if budget.Status != models.BudgetStatusActive {
			t.Errorf("expected status Active, got %s", budget.Status)
		}

		msgs := fake.WaitForSent(t, 1)
		if msgs[0].To != "owner@test.com" {
			t.Errorf("expected creation notice to owner@test.com, got %s", msgs[0].To)
		}
	})

	t.Run("start_date_defaults_to_now", func(t *testing.T) {
		router, _, _ := newBudgetTestRouter(t)

		end := time.Now().AddDate(0, 1, 0).Format(time.RFC3339)
		w := doJSON(t, router, http.MethodPost, "/api/create-budget", gin.H{
			"name":      "Groceries",
			"amount":    200,
			"category":  "Food",
			"userId":    "user-1",
			"userEmail": "owner@test.com",
			"endDate":   end,
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
		budget := decodeBudget(t, w)
		if budget.StartDate.IsZero() {
			t.Error("expected start date to default to the current time")
		}
	})

	t.Run("missing_fields_are_rejected", func(t *testing.T) {
		router, _, _ := newBudgetTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/create-budget", gin.H{
			"name": "Rent",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("end_date_not_after_start_is_rejected", func(t *testing.T) {
		router, _, _ := newBudgetTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/create-budget", gin.H{
			"name":      "Rent",
			"amount":    500,
			"category":  "Housing",
			"userId":    "user-1",
			"userEmail": "owner@test.com",
			"startDate": "2024-02-01",
			"endDate":   "2024-01-01",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unparseable_date_is_rejected", func(t *testing.T) {
		router, _, _ := newBudgetTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/create-budget", gin.H{
			"name":      "Rent",
			"amount":    500,
			"category":  "Housing",
			"userId":    "user-1",
			"userEmail": "owner@test.com",
			"endDate":   "next tuesday",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestGetBudgetsHandler(t *testing.T) {
	router, db, _ := newBudgetTestRouter(t)
	testutil.CreateTestBudget(t, db)
	testutil.CreateTestBudget(t, db)

	w := doJSON(t, router, http.MethodGet, "/api/budgets", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Budgets []models.Budget `json:"budgets"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if len(resp.Budgets) != 2 {
		t.Errorf("expected 2 budgets, got %d", len(resp.Budgets))
	}
}

func TestGetBudgetHandler(t *testing.T) {
	t.Run("returns_budget", func(t *testing.T) {
		router, db, _ := newBudgetTestRouter(t)
		created := testutil.CreateTestBudget(t, db)

		w := doJSON(t, router, http.MethodGet, "/api/budget/"+created.ID, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		budget := decodeBudget(t, w)
		if budget.ID != created.ID {
			t.Errorf("expected budget %s, got %s", created.ID, budget.ID)
		}
	})

	t.Run("malformed_id_is_rejected", func(t *testing.T) {
		router, _, _ := newBudgetTestRouter(t)

		w := doJSON(t, router, http.MethodGet, "/api/budget/not-a-uuid", nil)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown_id_is_not_found", func(t *testing.T) {
		router, _, _ := newBudgetTestRouter(t)

		w := doJSON(t, router, http.MethodGet, "/api/budget/0191d8a0-0000-7000-8000-000000000000", nil)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestUpdateBudgetHandler(t *testing.T) {
	t.Run("updates_subset_of_fields", func(t *testing.T) {
		router, db, _ := newBudgetTestRouter(t)
		created := testutil.CreateTestBudget(t, db)

		w := doJSON(t, router, http.MethodPut, "/api/edit-budget/"+created.ID, gin.H{
			"name":   "Updated Rent",
			"status": "Archived",
		})

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		budget := decodeBudget(t, w)
		if budget.Name != "Updated Rent" {
			t.Errorf("expected updated name, got %s", budget.Name)
		}
		if budget.Status != models.BudgetStatusArchived {
			t.Errorf("expected status Archived, got %s", budget.Status)
		}
		if budget.Category != created.Category {
			t.Errorf("expected category to be unchanged, got %s", budget.Category)
		}
	})

	t.Run("invalid_status_is_rejected", func(t *testing.T) {
		router, db, _ := newBudgetTestRouter(t)
		created := testutil.CreateTestBudget(t, db)

		w := doJSON(t, router, http.MethodPut, "/api/edit-budget/"+created.ID, gin.H{
			"status": "Paused",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("end_before_stored_start_is_rejected", func(t *testing.T) {
		router, db, _ := newBudgetTestRouter(t)
		start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
		created := testutil.CreateTestBudgetWithDates(t, db, start, start.AddDate(0, 1, 0))

		w := doJSON(t, router, http.MethodPut, "/api/edit-budget/"+created.ID, gin.H{
			"endDate": "2024-01-01",
		})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown_id_is_not_found", func(t *testing.T) {
		router, _, _ := newBudgetTestRouter(t)

		w := doJSON(t, router, http.MethodPut, "/api/edit-budget/0191d8a0-0000-7000-8000-000000000000", gin.H{
			"name": "Ghost",
		})

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestDeleteBudgetHandler(t *testing.T) {
	t.Run("deletes_and_returns_snapshot", func(t *testing.T) {
		router, db, fake := newBudgetTestRouter(t)
		created := testutil.CreateTestBudget(t, db)

		w := doJSON(t, router, http.MethodDelete, "/api/delete-budget/"+created.ID, nil)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Message string        `json:"message"`
			Budget  models.Budget `json:"budget"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}
		if resp.Budget.ID != created.ID {
			t.Errorf("expected deleted budget %s, got %s", created.ID, resp.Budget.ID)
		}

		var count int64
		db.Model(&models.Budget{}).Where("id = ?", created.ID).Count(&count)
		if count != 0 {
			t.Error("expected budget row to be gone")
		}

		msgs := fake.WaitForSent(t, 1)
		if msgs[0].To != created.UserEmail {
			t.Errorf("expected deletion notice to %s, got %s", created.UserEmail, msgs[0].To)
		}
	})

	t.Run("missing_owner_email_blocks_delete", func(t *testing.T) {
		router, db, _ := newBudgetTestRouter(t)
		created := testutil.CreateTestBudget(t, db)
		if err := db.Model(created).Update("user_email", "").Error; err != nil {
			t.Fatalf("failed to clear owner email: %v", err)
		}

		w := doJSON(t, router, http.MethodDelete, "/api/delete-budget/"+created.ID, nil)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("unknown_id_is_not_found", func(t *testing.T) {
		router, _, _ := newBudgetTestRouter(t)

		w := doJSON(t, router, http.MethodDelete, "/api/delete-budget/0191d8a0-0000-7000-8000-000000000000", nil)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestBudgetRoutesRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	handler := NewBudgetHandler(services.NewBudgetService(db, &testutil.FakeMailer{}, time.Second))

	router := gin.New()
	protected := router.Group("/api", middleware.AuthMiddleware())
	protected.GET("/budgets", handler.GetBudgets)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/budgets", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a bearer token, got %d", w.Code)
	}
}
