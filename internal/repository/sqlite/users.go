// filepath: internal/repository/sqlite/users.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mediacatalog/internal/logging"
	"mediacatalog/internal/models"
	"mediacatalog/internal/repository"
	"strings"

	"github.com/Masterminds/squirrel"
)

func userCacheKey(email string) string {
	return fmt.Sprintf("user_by_email_%s", email)
}

// GetUserByEmail retrieves a user by email, using a cache for performance.
func (s *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	cacheKey := userCacheKey(email)
	if cached, found := s.Cache.Get(cacheKey); found {
		user := *cached.(*models.User)
		return &user, nil
	}

	logging.Log.Debugf("GetUserByEmail: CACHE MISS for '%s'. Querying DB.", email)
	sqlQuery, args, err := s.Builder.Select("id", "name", "email", "password_hash").
		From("users").
		Where(squirrel.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var user models.User
	err = s.DB.QueryRowContext(ctx, sqlQuery, args...).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	cached := user
	s.Cache.Set(cacheKey, &cached, UserCacheTTL)
	return &user, nil
}

// CreateUser inserts a user whose PasswordHash is already hashed.
func (s *SQLiteRepository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	sqlInsert, args, err := s.Builder.Insert("users").
		Columns("name", "email", "password_hash").
		Values(user.Name, user.Email, user.PasswordHash).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	result, err := s.DB.ExecContext(ctx, sqlInsert, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrUserExists
		}
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	s.Cache.Delete(userCacheKey(user.Email))

	logging.Log.Debugf("CreateUser: user '%s' created with ID %d", user.Email, id)
	created := *user
	created.ID = id
	return &created, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
