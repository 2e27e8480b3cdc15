package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mattn/go-sqlite3"

	"github.com/camden-git/contactsbackend/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// GetUser looks up a user by exact username. It returns ErrUserNotFound
// when no row matches.
func (s *Store) GetUser(ctx context.Context, username string) (*models.User, error) {
	queryBuilder := psql.Select("username", "password_hash").
		From("user").
		Where(sq.Eq{"username": username}).
		Limit(1)
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for GetUser: %w", err)
	}

	db, err := s.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var user models.User
	err = db.GetContext(ctx, &user, sqlStr, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to query user %s: %w", username, err)
	}
	return &user, nil
}

// UpdatePassword sets the password hash for username and returns the number
// of rows changed. An unknown username changes nothing and is not an error.
func (s *Store) UpdatePassword(ctx context.Context, username, passwordHash string) (int64, error) {
	queryBuilder := psql.Update("user").
		Set("password_hash", passwordHash).
		Where(sq.Eq{"username": username})
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for UpdatePassword: %w", err)
	}

	db, err := s.Connect(ctx)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	result, err := db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		s.log.Error().Err(err).Str("username", username).Msg("failed to update password")
		return 0, fmt.Errorf("failed to execute UpdatePassword for %s: %w", username, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected for UpdatePassword: %w", err)
	}
	if rowsAffected == 0 {
		s.log.Warn().Str("username", username).Msg("password update matched no user")
	}
	return rowsAffected, nil
}

// CreateUser inserts a new user row. A duplicate username returns ErrUserExists.
func (s *Store) CreateUser(ctx context.Context, username, passwordHash string) error {
	queryBuilder := psql.Insert("user").
		Columns("username", "password_hash").
		Values(username, passwordHash)
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for CreateUser: %w", err)
	}

	db, err := s.Connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqlStr, args...); err != nil {
		if isConstraintViolation(err) {
			return fmt.Errorf("%w: %s", ErrUserExists, username)
		}
		return fmt.Errorf("failed to execute CreateUser for %s: %w", username, err)
	}
	return nil
}

func isConstraintViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
