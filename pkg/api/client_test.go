package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/charmbracelet/log"

	"budgetctl/pkg/models"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func TestAccounts(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/accounts" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode([]models.Account{
			{ID: 1, Name: "ING", Balance: 1500, Currency: "PLN"},
			{ID: 2, Name: "Cash"},
		})
	}))
	defer ts.Close()

	c := New(ts.URL, 7, testLogger())
	accounts, err := c.Accounts(context.Background())
	if err != nil {
		t.Fatalf("Accounts failed: %v", err)
	}
	if len(accounts) != 2 || accounts[0].Name != "ING" {
		t.Errorf("unexpected accounts: %+v", accounts)
	}
}

func TestCreateOperation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/operations" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		var op models.Operation
		if err := json.NewDecoder(r.Body).Decode(&op); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if op.Amount != 42.5 || op.OperationType != models.TypeExpense {
			t.Errorf("unexpected payload: %+v", op)
		}
		op.ID = 99
		json.NewEncoder(w).Encode(op)
	}))
	defer ts.Close()

	c := New(ts.URL, 7, testLogger())
	created, err := c.CreateOperation(context.Background(), models.Operation{
		AssetID:       1,
		Amount:        42.5,
		OperationType: models.TypeExpense,
		OperationDate: "2025-01-02",
	})
	if err != nil {
		t.Fatalf("CreateOperation failed: %v", err)
	}
	if created.ID != 99 {
		t.Errorf("expected backend id, got %d", created.ID)
	}
}

func TestAPIErrorBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "amount must be positive"})
	}))
	defer ts.Close()

	c := New(ts.URL, 7, testLogger())
	_, err := c.CreateOperation(context.Background(), models.Operation{})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnprocessableEntity || apiErr.Message != "amount must be positive" {
		t.Errorf("unexpected error: %+v", apiErr)
	}
}

func TestClassifyUncategorized(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/operations/classify-uncategorized" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]int{"count": 3})
	}))
	defer ts.Close()

	c := New(ts.URL, 7, testLogger())
	count, err := c.ClassifyUncategorized(context.Background())
	if err != nil {
		t.Fatalf("ClassifyUncategorized failed: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
}

func TestImportTemplatesScopedToUser(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "7" {
			t.Errorf("expected user_id=7, got %q", got)
		}
		json.NewEncoder(w).Encode([]models.ImportTemplate{{ID: 1, Name: "my bank"}})
	}))
	defer ts.Close()

	c := New(ts.URL, 7, testLogger())
	templates, err := c.ImportTemplates(context.Background())
	if err != nil {
		t.Fatalf("ImportTemplates failed: %v", err)
	}
	if len(templates) != 1 || templates[0].Name != "my bank" {
		t.Errorf("unexpected templates: %+v", templates)
	}
}

func TestOperationFilterQuery(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("year") != "2025" || q.Get("month") != "3" {
			t.Errorf("unexpected query: %v", q)
		}
		if q.Has("asset_id") {
			t.Error("zero asset filter must be omitted")
		}
		json.NewEncoder(w).Encode([]models.Operation{})
	}))
	defer ts.Close()

	c := New(ts.URL, 7, testLogger())
	if _, err := c.Operations(context.Background(), OperationFilter{Year: 2025, Month: 3}); err != nil {
		t.Fatalf("Operations failed: %v", err)
	}
}

func TestDeleteOperation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/operations/5" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c := New(ts.URL, 7, testLogger())
	if err := c.DeleteOperation(context.Background(), 5); err != nil {
		t.Fatalf("DeleteOperation failed: %v", err)
	}
}
