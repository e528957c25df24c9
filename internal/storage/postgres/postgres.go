package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"finance-tracker/internal/domain/models"
	"finance-tracker/internal/storage"

	"github.com/lib/pq"
)

// uniqueViolation is the postgres error code for a unique constraint
// violation, raised here only by the users.email index.
const uniqueViolation = "23505"

type Storage struct {
	db *sql.DB
}

func New(dbUrl string) (*Storage, error) {
	db, err := sql.Open("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("database connection error: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Stop() error {
	return s.db.Close()
}

func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	const op = "storage.postgres.SaveUser"

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, name, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5)",
		user.ID, user.Name, user.Email, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return storage.ErrEmailTaken
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.postgres.GetUserByEmail"

	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1",
		email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgres.GetUserByID"

	var user models.User
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1",
		id,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &user, nil
}

func (s *Storage) SaveTransaction(ctx context.Context, t *models.Transaction) error {
	const op = "storage.postgres.SaveTransaction"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, amount, type, category, description, date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.UserID, int64(t.Amount), t.Type, t.Category, t.Description, t.Date, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetTransaction is scoped by owner: a transaction belonging to another
// user comes back as ErrNotFound, same as a missing one.
func (s *Storage) GetTransaction(ctx context.Context, id, userID string) (*models.Transaction, error) {
	const op = "storage.postgres.GetTransaction"

	var t models.Transaction
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, amount, type, category, description, date, created_at
		 FROM transactions WHERE id = $1 AND user_id = $2`,
		id, userID,
	).Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Category, &t.Description, &t.Date, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

// ListTransactions returns every transaction owned by userID, newest
// first by date.
func (s *Storage) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	const op = "storage.postgres.ListTransactions"

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, amount, type, category, description, date, created_at
		 FROM transactions WHERE user_id = $1 ORDER BY date DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Type, &t.Category, &t.Description, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return transactions, nil
}

// UpdateTransaction rewrites the mutable fields of an owned
// transaction. The owner itself is part of the WHERE clause and can
// never change.
func (s *Storage) UpdateTransaction(ctx context.Context, t *models.Transaction) error {
	const op = "storage.postgres.UpdateTransaction"

	res, err := s.db.ExecContext(ctx,
		`UPDATE transactions SET amount = $1, type = $2, category = $3, description = $4, date = $5
		 WHERE id = $6 AND user_id = $7`,
		int64(t.Amount), t.Type, t.Category, t.Description, t.Date, t.ID, t.UserID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Storage) DeleteTransaction(ctx context.Context, id, userID string) error {
	const op = "storage.postgres.DeleteTransaction"

	res, err := s.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	return nil
}
