package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nemopss/pennywise/backend/models"
)

// setupTestDB opens a fresh sqlite database in a temporary directory.
func setupTestDB(t *testing.T) *Storage {
	t.Helper()
	store, err := NewStorage(DriverSQLite, filepath.Join(t.TempDir(), "pennywise.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(store.Close)
	return store
}

func TestNewStorageIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pennywise.db")

	first, err := NewStorage(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := first.CreateUser(context.Background(), "a@example.com", "hash"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	first.Close()

	second, err := NewStorage(DriverSQLite, path)
	if err != nil {
		t.Fatalf("Failed to reopen database: %v", err)
	}
	defer second.Close()

	user, err := second.GetUserByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if user == nil {
		t.Error("Expected user to survive reopening, got nil")
	}
}

func TestNewStorageUnsupportedDriver(t *testing.T) {
	if _, err := NewStorage("mysql", "whatever"); err == nil {
		t.Error("Expected error for unsupported driver, got nil")
	}
}

func TestCreateAndGetUser(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if err := store.CreateUser(ctx, "jane@example.com", "first-hash"); err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	// registering the same email again must not touch the stored hash
	err := store.CreateUser(ctx, "jane@example.com", "second-hash")
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("Expected ErrDuplicateEmail, got %v", err)
	}

	user, err := store.GetUserByEmail(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if user == nil {
		t.Fatal("Expected user, got nil")
	}
	if user.PasswordHash != "first-hash" {
		t.Errorf("Expected hash 'first-hash', got %s", user.PasswordHash)
	}

	user, err = store.GetUserByEmail(ctx, "nobody@example.com")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if user != nil {
		t.Errorf("Expected nil user, got %+v", user)
	}
}

func TestCreateAndGetExpenses(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	inputs := []models.Expense{
		{Description: "Dinner", Amount: 30, Category: "Food", Date: "2024-03-02"},
		{Description: "Rent", Amount: 900, Category: "Housing", Date: "2024-01-15"},
		{Description: "Coffee", Amount: 3.5, Category: "Food", Date: "2024-03-02"},
		{Description: "Refund", Amount: -20, Category: "Other", Date: "2024-02-10"},
	}
	for i := range inputs {
		e := models.ExpenseInDB{Expense: inputs[i]}
		if err := store.CreateExpense(ctx, &e); err != nil {
			t.Fatalf("Failed to create expense: %v", err)
		}
		if e.ID == 0 {
			t.Error("Expected expense ID to be set, got 0")
		}
	}

	expenses, err := store.GetExpenses(ctx)
	if err != nil {
		t.Fatalf("Failed to get expenses: %v", err)
	}
	if len(expenses) != 4 {
		t.Fatalf("Expected 4 expenses, got %d", len(expenses))
	}

	wantOrder := []string{"Rent", "Refund", "Dinner", "Coffee"}
	for i, want := range wantOrder {
		if expenses[i].Description != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, expenses[i].Description)
		}
	}
	if expenses[1].Amount != -20 {
		t.Errorf("Expected amount -20, got %v", expenses[1].Amount)
	}
}

func TestGetExpensesEmpty(t *testing.T) {
	store := setupTestDB(t)

	expenses, err := store.GetExpenses(context.Background())
	if err != nil {
		t.Fatalf("Failed to get expenses: %v", err)
	}
	if expenses == nil || len(expenses) != 0 {
		t.Errorf("Expected empty slice, got %#v", expenses)
	}
}

func TestDeleteExpense(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	e := models.ExpenseInDB{Expense: models.Expense{Description: "Taxi", Amount: 12, Category: "Transport", Date: "2024-05-01"}}
	if err := store.CreateExpense(ctx, &e); err != nil {
		t.Fatalf("Failed to create expense: %v", err)
	}

	if err := store.DeleteExpense(ctx, e.ID); err != nil {
		t.Fatalf("Failed to delete expense: %v", err)
	}
	// a missing id is not an error
	if err := store.DeleteExpense(ctx, e.ID); err != nil {
		t.Errorf("Expected no error deleting a missing expense, got %v", err)
	}

	expenses, err := store.GetExpenses(ctx)
	if err != nil {
		t.Fatalf("Failed to get expenses: %v", err)
	}
	if len(expenses) != 0 {
		t.Errorf("Expected no expenses, got %d", len(expenses))
	}
}

func TestGoals(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	g := models.GoalInDB{Goal: models.Goal{Description: "Save", Amount: 100, Progress: 50}}
	if err := store.CreateGoal(ctx, &g); err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}
	if g.ID == 0 {
		t.Fatal("Expected goal ID to be set, got 0")
	}

	fetched, err := store.GetGoal(ctx, g.ID)
	if err != nil {
		t.Fatalf("Failed to get goal: %v", err)
	}
	if *fetched != g {
		t.Errorf("Expected %+v, got %+v", g, *fetched)
	}

	fetched.Progress = 75
	if err := store.UpdateGoal(ctx, fetched); err != nil {
		t.Fatalf("Failed to update goal: %v", err)
	}

	goals, err := store.GetGoals(ctx)
	if err != nil {
		t.Fatalf("Failed to get goals: %v", err)
	}
	if len(goals) != 1 || goals[0].Progress != 75 {
		t.Errorf("Expected one goal with progress 75, got %+v", goals)
	}

	if err := store.DeleteGoal(ctx, g.ID); err != nil {
		t.Fatalf("Failed to delete goal: %v", err)
	}
	if err := store.DeleteGoal(ctx, g.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestGoalNotFound(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	if _, err := store.GetGoal(ctx, 42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from GetGoal, got %v", err)
	}

	missing := models.GoalInDB{ID: 42, Goal: models.Goal{Description: "x"}}
	if err := store.UpdateGoal(ctx, &missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from UpdateGoal, got %v", err)
	}
}
