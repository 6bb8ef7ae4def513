package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/lib/pq"
	"github.com/nemopss/pennywise/backend/models"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

type Storage struct {
	DB *sql.DB
}

// NewStorage opens the database and creates the schema if it is missing.
// For sqlite connStr is a file path; for postgres it is a DSN understood
// by lib/pq.
func NewStorage(driver, connStr string) (*Storage, error) {
	if driver == DriverSQLite {
		if dir := filepath.Dir(connStr); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create db directory: %w", err)
			}
		}
	}

	db, err := sql.Open(driver, connStr)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migrate(db, driver); err != nil {
		db.Close()
		return nil, err
	}

	if driver == DriverSQLite {
		// a single writer avoids SQLITE_BUSY under concurrent requests
		db.SetMaxOpenConns(1)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() {
	s.DB.Close()
}

// CreateUser stores a new user. It returns ErrDuplicateEmail and leaves the
// existing row untouched when the email is taken.
func (s *Storage) CreateUser(ctx context.Context, email, passwordHash string) error {
	res, err := s.DB.ExecContext(ctx,
		"INSERT INTO users (email, password) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING",
		email, passwordHash)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	if n == 0 {
		return ErrDuplicateEmail
	}
	return nil
}

// GetUserByEmail returns nil without an error when no user has that email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	var hash sql.NullString
	err := s.DB.QueryRowContext(ctx, "SELECT email, password FROM users WHERE email = $1", email).
		Scan(&u.Email, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.PasswordHash = hash.String
	return &u, nil
}

func (s *Storage) CreateExpense(ctx context.Context, e *models.ExpenseInDB) error {
	err := s.DB.QueryRowContext(ctx,
		"INSERT INTO expenses (description, amount, category, date) VALUES ($1, $2, $3, $4) RETURNING id",
		e.Description, e.Amount, e.Category, e.Date).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetExpenses returns every expense ordered by date, oldest first.
func (s *Storage) GetExpenses(ctx context.Context) ([]models.ExpenseInDB, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, description, amount, category, date FROM expenses ORDER BY date ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	var expenses = []models.ExpenseInDB{}
	for rows.Next() {
		var e models.ExpenseInDB
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &e.Category, &e.Date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return expenses, nil
}

// DeleteExpense does not report a missing id.
func (s *Storage) DeleteExpense(ctx context.Context, id int64) error {
	if _, err := s.DB.ExecContext(ctx, "DELETE FROM expenses WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete expense %d: %w", id, err)
	}
	return nil
}

func (s *Storage) CreateGoal(ctx context.Context, g *models.GoalInDB) error {
	err := s.DB.QueryRowContext(ctx,
		"INSERT INTO goals (description, amount, progress) VALUES ($1, $2, $3) RETURNING id",
		g.Description, g.Amount, g.Progress).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (s *Storage) GetGoals(ctx context.Context) ([]models.GoalInDB, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT id, description, amount, progress FROM goals ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var goals = []models.GoalInDB{}
	for rows.Next() {
		var g models.GoalInDB
		if err := rows.Scan(&g.ID, &g.Description, &g.Amount, &g.Progress); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate goals: %w", err)
	}
	return goals, nil
}

func (s *Storage) GetGoal(ctx context.Context, id int64) (*models.GoalInDB, error) {
	var g models.GoalInDB
	err := s.DB.QueryRowContext(ctx, "SELECT id, description, amount, progress FROM goals WHERE id = $1", id).
		Scan(&g.ID, &g.Description, &g.Amount, &g.Progress)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get goal %d: %w", id, err)
	}
	return &g, nil
}

func (s *Storage) UpdateGoal(ctx context.Context, g *models.GoalInDB) error {
	res, err := s.DB.ExecContext(ctx,
		"UPDATE goals SET description = $1, amount = $2, progress = $3 WHERE id = $4",
		g.Description, g.Amount, g.Progress, g.ID)
	if err != nil {
		return fmt.Errorf("update goal %d: %w", g.ID, err)
	}
	return expectAffected(res)
}

// DeleteGoal returns ErrNotFound when no row matched, unlike DeleteExpense.
func (s *Storage) DeleteGoal(ctx context.Context, id int64) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM goals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete goal %d: %w", id, err)
	}
	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
